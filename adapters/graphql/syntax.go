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

package graphql

import (
	"github.com/pkg/errors"
	"github.com/tailor-inc/graphql/language/ast"
	"github.com/tailor-inc/graphql/language/parser"
)

// CheckSyntax parses a rendered query and reports the first syntax error.
// It does not know the server schema, unknown fields pass.
func CheckSyntax(query string) error {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return errors.Wrap(err, "invalid graphql query")
	}
	if len(doc.Definitions) != 1 {
		return errors.Errorf("invalid graphql query: expected one operation, got %d", len(doc.Definitions))
	}
	if _, ok := doc.Definitions[0].(*ast.OperationDefinition); !ok {
		return errors.Errorf("invalid graphql query: expected an operation, got %s", doc.Definitions[0].GetKind())
	}
	return nil
}
