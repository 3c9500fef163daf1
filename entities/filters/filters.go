//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package filters

import (
	"strings"

	"github.com/weaviate/weaviate-client-core/entities/errors"
)

type Operator int

const (
	OperatorEqual Operator = iota + 1
	OperatorNotEqual
	OperatorGreaterThan
	OperatorGreaterThanEqual
	OperatorLessThan
	OperatorLessThanEqual
	OperatorAnd
	OperatorOr
	OperatorWithinGeoRange
	OperatorLike
	OperatorIsNull
	ContainsAny
	ContainsAll
)

func (o Operator) OnValue() bool {
	switch o {
	case OperatorEqual,
		OperatorNotEqual,
		OperatorGreaterThan,
		OperatorGreaterThanEqual,
		OperatorLessThan,
		OperatorLessThanEqual,
		OperatorWithinGeoRange,
		OperatorLike,
		OperatorIsNull,
		ContainsAny,
		ContainsAll:
		return true
	default:
		return false
	}
}

// Name is the operator as it is spelled in GraphQL queries.
func (o Operator) Name() string {
	switch o {
	case OperatorEqual:
		return "Equal"
	case OperatorNotEqual:
		return "NotEqual"
	case OperatorGreaterThan:
		return "GreaterThan"
	case OperatorGreaterThanEqual:
		return "GreaterThanEqual"
	case OperatorLessThan:
		return "LessThan"
	case OperatorLessThanEqual:
		return "LessThanEqual"
	case OperatorAnd:
		return "And"
	case OperatorOr:
		return "Or"
	case OperatorWithinGeoRange:
		return "WithinGeoRange"
	case OperatorLike:
		return "Like"
	case OperatorIsNull:
		return "IsNull"
	case ContainsAny:
		return "ContainsAny"
	case ContainsAll:
		return "ContainsAll"
	default:
		return "Unknown"
	}
}

// Filter is a node of a filter tree. A leaf carries On and Value, a
// combinator (And, Or) carries Operands. Filters are built with ByProperty,
// ByRef, And, Or and friends and are not modified afterwards.
type Filter struct {
	Operator Operator
	On       *Path
	Value    *Value
	Operands []*Filter
}

func (f *Filter) IsCombinator() bool {
	return f.Operator == OperatorAnd || f.Operator == OperatorOr
}

// And combines operands with a logical and. Nil operands are skipped.
func And(operands ...*Filter) *Filter {
	return combine(OperatorAnd, operands)
}

// Or combines operands with a logical or. Nil operands are skipped.
func Or(operands ...*Filter) *Filter {
	return combine(OperatorOr, operands)
}

func combine(op Operator, operands []*Filter) *Filter {
	out := make([]*Filter, 0, len(operands))
	for _, operand := range operands {
		if operand != nil {
			out = append(out, operand)
		}
	}
	return &Filter{Operator: op, Operands: out}
}

// Validate checks the whole tree: combinators need at least one operand and
// every leaf operator has to accept the kind of its value.
func (f *Filter) Validate() error {
	if f == nil {
		return errors.NewInvalidFilter("Unknown", "", "filter is nil")
	}

	if f.IsCombinator() {
		if len(f.Operands) == 0 {
			return errors.NewInvalidFilter(f.Operator.Name(), "", "needs at least one operand")
		}
		if f.On != nil || f.Value != nil {
			return errors.NewInvalidFilter(f.Operator.Name(), f.On.String(),
				"a combinator cannot have a target or a value")
		}
		for _, operand := range f.Operands {
			if err := operand.Validate(); err != nil {
				return err
			}
		}
		return nil
	}

	if !f.Operator.OnValue() {
		return errors.NewInvalidFilter(f.Operator.Name(), f.On.String(), "unknown operator %d", f.Operator)
	}
	if f.On == nil {
		return errors.NewInvalidFilter(f.Operator.Name(), "", "no target given")
	}
	if f.Value == nil {
		return errors.NewInvalidFilter(f.Operator.Name(), f.On.String(), "no value given")
	}
	if f.Value.Type == ValueTypeUnknown {
		return errors.NewInvalidFilter(f.Operator.Name(), f.On.String(),
			"unsupported value type %T", f.Value.Raw)
	}

	return validateArity(f.Operator, f.On.String(), f.Value)
}

func validateArity(op Operator, target string, v *Value) error {
	switch op {
	case OperatorEqual, OperatorNotEqual:
		if v.Type == ValueTypeGeoRange {
			return errors.NewInvalidFilter(op.Name(), target, "geo ranges can only be used with WithinGeoRange")
		}
	case OperatorGreaterThan, OperatorGreaterThanEqual, OperatorLessThan, OperatorLessThanEqual:
		switch v.Type {
		case ValueTypeInt, ValueTypeNumber, ValueTypeText, ValueTypeDate:
		default:
			return errors.NewInvalidFilter(op.Name(), target,
				"expected a single int, number, text or date value, got %s", v.Type)
		}
	case OperatorLike:
		if v.Type != ValueTypeText {
			return errors.NewInvalidFilter(op.Name(), target, "expected a single text value, got %s", v.Type)
		}
	case OperatorIsNull:
		if v.Type != ValueTypeBoolean {
			return errors.NewInvalidFilter(op.Name(), target, "expected a single boolean value, got %s", v.Type)
		}
	case OperatorWithinGeoRange:
		if v.Type != ValueTypeGeoRange {
			return errors.NewInvalidFilter(op.Name(), target, "expected a geo range, got %s", v.Type)
		}
		if geo := v.Raw.(GeoRange); geo.GeoCoordinates == nil ||
			geo.Latitude == nil || geo.Longitude == nil {
			return errors.NewInvalidFilter(op.Name(), target, "geo range is missing coordinates")
		}
	case ContainsAny, ContainsAll:
		if !v.Type.IsArray() {
			return errors.NewInvalidFilter(op.Name(), target, "expected an array value, got %s", v.Type)
		}
	}
	return nil
}

// String renders the tree for log lines and error messages.
func (f *Filter) String() string {
	if f == nil {
		return "<nil>"
	}
	if f.IsCombinator() {
		parts := make([]string, len(f.Operands))
		for i, operand := range f.Operands {
			parts[i] = operand.String()
		}
		return f.Operator.Name() + "(" + strings.Join(parts, ", ") + ")"
	}
	return f.On.String() + " " + f.Operator.Name() + " " + f.Value.Type.String()
}
