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

package errors

import (
	"fmt"
)

// InvalidFilterError is returned when a filter tree cannot be compiled, for
// example because an operator does not accept the arity of its value.
type InvalidFilterError struct {
	Operator string
	Target   string
	msg      string
}

func (e *InvalidFilterError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("invalid filter: operator %s: %s", e.Operator, e.msg)
	}
	return fmt.Sprintf("invalid filter on %q: operator %s: %s", e.Target, e.Operator, e.msg)
}

func NewInvalidFilter(operator, target, format string, args ...interface{}) *InvalidFilterError {
	return &InvalidFilterError{Operator: operator, Target: target, msg: fmt.Sprintf(format, args...)}
}

// InvalidInputError is returned when a caller supplied value matches none of
// the shapes the client knows how to send.
type InvalidInputError struct {
	Field string
	msg   string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.msg
	}
	return fmt.Sprintf("invalid input for %q: %s", e.Field, e.msg)
}

func NewInvalidInput(field, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Field: field, msg: fmt.Sprintf(format, args...)}
}

// UnsupportedFeatureError is returned when a request needs a feature the
// connected server does not support.
type UnsupportedFeatureError struct {
	Feature string
	msg     string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s is not supported by the connected server: %s", e.Feature, e.msg)
}

func NewUnsupportedFeature(feature, format string, args ...interface{}) *UnsupportedFeatureError {
	return &UnsupportedFeatureError{Feature: feature, msg: fmt.Sprintf(format, args...)}
}

// EncodingError is returned when a value cannot be encoded for the wire, e.g.
// a vector with non-numeric entries.
type EncodingError struct {
	Field string
	msg   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s: %s", e.Field, e.msg)
}

func NewEncoding(field, format string, args ...interface{}) *EncodingError {
	return &EncodingError{Field: field, msg: fmt.Sprintf(format, args...)}
}
