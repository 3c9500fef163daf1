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
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorGroupWrapper(t *testing.T) {
	logger, hook := test.NewNullLogger()

	t.Run("first error", func(t *testing.T) {
		eg := NewErrorGroupWrapper(logger)
		eg.Go(func() error { return nil })
		eg.Go(func() error { return errors.New("boom") })
		assert.EqualError(t, eg.Wait(), "boom")
	})

	t.Run("panics become errors", func(t *testing.T) {
		eg := NewErrorGroupWrapper(logger)
		eg.Go(func() error { panic("oops") }, "local")

		assert.EqualError(t, eg.Wait(), "panic occurred: oops")
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "error_group_panic", hook.LastEntry().Data["action"])
	})

	t.Run("context is cancelled by the first error", func(t *testing.T) {
		eg, ctx := NewErrorGroupWithContextWrapper(logger, context.Background())
		eg.Go(func() error { return errors.New("boom") })
		eg.Go(func() error {
			<-ctx.Done()
			return ctx.Err()
		})
		assert.EqualError(t, eg.Wait(), "boom")
	})

	t.Run("nil logger still recovers panics", func(t *testing.T) {
		eg, _ := NewErrorGroupWithContextWrapper(nil, context.Background())
		eg.Go(func() error { panic("oops") })
		assert.EqualError(t, eg.Wait(), "panic occurred: oops")

		plain := NewErrorGroupWrapper(nil)
		plain.Go(func() error { panic("oops") })
		assert.EqualError(t, plain.Wait(), "panic occurred: oops")
	})
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "invalid filter with target",
			err:      NewInvalidFilter("Like", "name", "expected a text value, got int"),
			expected: `invalid filter on "name": operator Like: expected a text value, got int`,
		},
		{
			name:     "invalid input without field",
			err:      NewInvalidInput("", "nothing to do"),
			expected: "invalid input: nothing to do",
		},
		{
			name:     "unsupported feature",
			err:      NewUnsupportedFeature("multiple vectors per target", "the server accepts one vector per target"),
			expected: "multiple vectors per target is not supported by the connected server: the server accepts one vector per target",
		},
		{
			name:     "encoding",
			err:      NewEncoding("vector", "the vector is empty"),
			expected: "cannot encode vector: the vector is empty",
		},
		{
			name:     "graphql validation",
			err:      NewGraphQLValidation("nearText", "concepts must be set"),
			expected: "concepts must be set",
		},
		{
			name:     "graphql response with several errors",
			err:      NewGraphQLResponse("Article", []string{"first", "second"}),
			expected: "graphql query on Article: 2 errors, first: first",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.EqualError(t, test.err, test.expected)
		})
	}
}
