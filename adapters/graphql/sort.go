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
	"strings"

	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/schema"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// Sort orders results by a property path.
type Sort struct {
	path      []string
	ascending bool
}

func NewSort(ascending bool, path ...string) Sort {
	return Sort{path: append([]string{}, path...), ascending: ascending}
}

// SortFrom renders a search parameter sort on a single property.
func SortFrom(s searchparams.Sort) Sort {
	return NewSort(s.Ascending, s.Property)
}

func (s Sort) Validate() error {
	if len(s.path) == 0 {
		return errors.NewGraphQLValidation("sort", "sort: path cannot be empty")
	}
	for _, segment := range s.path {
		if strings.TrimSpace(segment) == "" {
			return errors.NewGraphQLValidation("sort", "sort: path segments cannot be empty")
		}
		if err := schema.ValidatePropertyName(segment); err != nil {
			return errors.NewGraphQLValidation("sort", "sort: %v", err)
		}
	}
	return nil
}

func (s Sort) String() string {
	args := arguments{}
	args.add("path", quoteList(s.path))
	if s.ascending {
		args.add("order", "asc")
	} else {
		args.add("order", "desc")
	}
	return args.object()
}

func (s Sort) Build() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s.String(), nil
}
