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

package v1

import (
	"time"

	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/schema"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
)

// CompileFilter lowers a filter tree into the wire filter. The tree is
// validated first, a nil filter compiles to nil.
func CompileFilter(filter *filters.Filter) (*pb.Filters, error) {
	if filter == nil {
		return nil, nil
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return compileFilter(filter)
}

func compileFilter(filter *filters.Filter) (*pb.Filters, error) {
	op, err := operatorToProto(filter.Operator)
	if err != nil {
		return nil, err
	}

	if filter.IsCombinator() {
		out := &pb.Filters{Operator: op, Filters: make([]*pb.Filters, len(filter.Operands))}
		for i, operand := range filter.Operands {
			out.Filters[i], err = compileFilter(operand)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	out := &pb.Filters{Operator: op, Target: compileFilterTarget(filter.On)}
	if err := setTestValue(out, filter); err != nil {
		return nil, err
	}
	return out, nil
}

func operatorToProto(op filters.Operator) (pb.Filters_Operator, error) {
	switch op {
	case filters.OperatorEqual:
		return pb.Filters_OPERATOR_EQUAL, nil
	case filters.OperatorNotEqual:
		return pb.Filters_OPERATOR_NOT_EQUAL, nil
	case filters.OperatorGreaterThan:
		return pb.Filters_OPERATOR_GREATER_THAN, nil
	case filters.OperatorGreaterThanEqual:
		return pb.Filters_OPERATOR_GREATER_THAN_EQUAL, nil
	case filters.OperatorLessThan:
		return pb.Filters_OPERATOR_LESS_THAN, nil
	case filters.OperatorLessThanEqual:
		return pb.Filters_OPERATOR_LESS_THAN_EQUAL, nil
	case filters.OperatorAnd:
		return pb.Filters_OPERATOR_AND, nil
	case filters.OperatorOr:
		return pb.Filters_OPERATOR_OR, nil
	case filters.OperatorWithinGeoRange:
		return pb.Filters_OPERATOR_WITHIN_GEO_RANGE, nil
	case filters.OperatorLike:
		return pb.Filters_OPERATOR_LIKE, nil
	case filters.OperatorIsNull:
		return pb.Filters_OPERATOR_IS_NULL, nil
	case filters.ContainsAny:
		return pb.Filters_OPERATOR_CONTAINS_ANY, nil
	case filters.ContainsAll:
		return pb.Filters_OPERATOR_CONTAINS_ALL, nil
	default:
		return pb.Filters_OPERATOR_UNSPECIFIED, errors.NewInvalidFilter(op.Name(), "", "unknown operator %d", op)
	}
}

func compileFilterTarget(path *filters.Path) *pb.FilterTarget {
	if path.Child == nil {
		if path.Count {
			return &pb.FilterTarget{Target: &pb.FilterTarget_Count{
				Count: &pb.FilterReferenceCount{On: path.Property},
			}}
		}
		return &pb.FilterTarget{Target: &pb.FilterTarget_Property{Property: path.Property}}
	}

	inner := compileFilterTarget(path.Child)
	if path.Child.Class != "" {
		return &pb.FilterTarget{Target: &pb.FilterTarget_MultiTarget{
			MultiTarget: &pb.FilterReferenceMultiTarget{
				On:               path.Property,
				Target:           inner,
				TargetCollection: path.Child.Class,
			},
		}}
	}
	return &pb.FilterTarget{Target: &pb.FilterTarget_SingleTarget{
		SingleTarget: &pb.FilterReferenceSingleTarget{On: path.Property, Target: inner},
	}}
}

func setTestValue(out *pb.Filters, filter *filters.Filter) error {
	v := filter.Value
	switch v.Type {
	case filters.ValueTypeText:
		out.TestValue = &pb.Filters_ValueText{ValueText: v.Raw.(string)}
	case filters.ValueTypeInt:
		out.TestValue = &pb.Filters_ValueInt{ValueInt: v.Raw.(int64)}
	case filters.ValueTypeNumber:
		out.TestValue = &pb.Filters_ValueNumber{ValueNumber: v.Raw.(float64)}
	case filters.ValueTypeBoolean:
		out.TestValue = &pb.Filters_ValueBoolean{ValueBoolean: v.Raw.(bool)}
	case filters.ValueTypeDate:
		out.TestValue = &pb.Filters_ValueText{ValueText: schema.FormatDate(v.Raw.(time.Time))}
	case filters.ValueTypeGeoRange:
		geo := v.Raw.(filters.GeoRange)
		out.TestValue = &pb.Filters_ValueGeo{ValueGeo: &pb.GeoCoordinatesFilter{
			Latitude:  *geo.Latitude,
			Longitude: *geo.Longitude,
			Distance:  geo.Distance,
		}}
	case filters.ValueTypeTextArray:
		out.TestValue = &pb.Filters_ValueTextArray{ValueTextArray: &pb.TextArray{Values: v.Raw.([]string)}}
	case filters.ValueTypeIntArray:
		out.TestValue = &pb.Filters_ValueIntArray{ValueIntArray: &pb.IntArray{Values: v.Raw.([]int64)}}
	case filters.ValueTypeNumberArray:
		out.TestValue = &pb.Filters_ValueNumberArray{ValueNumberArray: &pb.NumberArray{Values: v.Raw.([]float64)}}
	case filters.ValueTypeBooleanArray:
		out.TestValue = &pb.Filters_ValueBooleanArray{ValueBooleanArray: &pb.BooleanArray{Values: v.Raw.([]bool)}}
	case filters.ValueTypeDateArray:
		dates := v.Raw.([]time.Time)
		values := make([]string, len(dates))
		for i := range dates {
			values[i] = schema.FormatDate(dates[i])
		}
		out.TestValue = &pb.Filters_ValueTextArray{ValueTextArray: &pb.TextArray{Values: values}}
	default:
		return errors.NewInvalidFilter(filter.Operator.Name(), filter.On.String(),
			"unsupported value type %T", v.Raw)
	}
	return nil
}

// WireTargets is the compiled target-vector expression. Older servers only
// take the plain TargetVectors list, newer ones the Targets message; exactly
// one of the two is set.
type WireTargets struct {
	TargetVectors []string
	Targets       *pb.Targets
}

// CompileTargets renders a target-vector expression for the connected
// server. A nil expression compiles to nil.
func CompileTargets(tv *filters.TargetVectors, caps *capabilities.Server) (*WireTargets, error) {
	if tv == nil {
		return nil, nil
	}
	if len(tv.Targets) == 0 {
		return nil, errors.NewInvalidInput("targetVector", "needs at least one target")
	}

	if !caps.Targets() {
		if !tv.IsNamesOnly() {
			return nil, errors.NewUnsupportedFeature("target vector combinations",
				"the server only accepts a list of target vector names")
		}
		return &WireTargets{TargetVectors: tv.Names()}, nil
	}

	combination, err := combinationToProto(tv.Combination)
	if err != nil {
		return nil, err
	}

	if tv.HasMultiWeights() {
		if !caps.WeightsForTargets() {
			return nil, errors.NewUnsupportedFeature("multiple weights per target vector",
				"the server accepts a single weight per target")
		}
		names, weights := tv.Flatten()
		out := &pb.Targets{
			TargetVectors:     names,
			Combination:       combination,
			WeightsForTargets: make([]*pb.WeightsForTarget, len(weights)),
		}
		for i, w := range weights {
			out.WeightsForTargets[i] = &pb.WeightsForTarget{Target: w.Target, Weight: w.Weight}
		}
		return &WireTargets{Targets: out}, nil
	}

	out := &pb.Targets{TargetVectors: tv.Names(), Combination: combination}
	for _, target := range tv.Targets {
		if len(target.Weights) == 1 {
			if out.Weights == nil {
				out.Weights = map[string]float32{}
			}
			out.Weights[target.Name] = target.Weights[0]
		}
	}
	return &WireTargets{Targets: out}, nil
}

func combinationToProto(c filters.Combination) (pb.CombinationMethod, error) {
	switch c {
	case filters.CombinationUnspecified:
		return pb.CombinationMethod_COMBINATION_METHOD_UNSPECIFIED, nil
	case filters.CombinationSum:
		return pb.CombinationMethod_COMBINATION_METHOD_TYPE_SUM, nil
	case filters.CombinationAverage:
		return pb.CombinationMethod_COMBINATION_METHOD_TYPE_AVERAGE, nil
	case filters.CombinationMinimum:
		return pb.CombinationMethod_COMBINATION_METHOD_TYPE_MIN, nil
	case filters.CombinationRelativeScore:
		return pb.CombinationMethod_COMBINATION_METHOD_TYPE_RELATIVE_SCORE, nil
	case filters.CombinationManual:
		return pb.CombinationMethod_COMBINATION_METHOD_TYPE_MANUAL, nil
	default:
		return pb.CombinationMethod_COMBINATION_METHOD_UNSPECIFIED,
			errors.NewUnsupportedFeature("target vector combination "+c.String(),
				"the protocol has no representation for it")
	}
}
