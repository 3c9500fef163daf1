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

// GraphQLValidationError is returned by the GraphQL argument builders when
// their state cannot be rendered. Argument names the builder ("nearText",
// "ask", ...).
type GraphQLValidationError struct {
	argument string
	msg      string
}

func (e *GraphQLValidationError) Error() string {
	return e.msg
}

func (e *GraphQLValidationError) Argument() string {
	return e.argument
}

func NewGraphQLValidation(argument, format string, args ...interface{}) *GraphQLValidationError {
	return &GraphQLValidationError{argument: argument, msg: fmt.Sprintf(format, args...)}
}

// GraphQLResponseError carries the errors array of a GraphQL reply.
type GraphQLResponseError struct {
	Messages  []string
	className string
}

func (e *GraphQLResponseError) Error() string {
	if len(e.Messages) == 1 {
		return fmt.Sprintf("graphql query on %s: %s", e.className, e.Messages[0])
	}
	return fmt.Sprintf("graphql query on %s: %d errors, first: %s", e.className, len(e.Messages), e.Messages[0])
}

func (e *GraphQLResponseError) ClassName() string {
	return e.className
}

func NewGraphQLResponse(className string, messages []string) *GraphQLResponseError {
	return &GraphQLResponseError{Messages: messages, className: className}
}
