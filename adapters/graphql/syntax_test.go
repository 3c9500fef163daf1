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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

func TestCheckSyntax(t *testing.T) {
	t.Run("rendered queries parse", func(t *testing.T) {
		near, err := NewGetter("Article").
			WithFields("title", "writesFor{... on Publication{name}}").
			WithAdditional("id", "distance").
			WithWhere(NewWhere(filters.And(
				filters.ByProperty("wordCount").GreaterThan(100),
				filters.ByProperty("tags").ContainsAny([]string{"a", `b "c"`}),
			))).
			WithLimit(5).
			WithSort(NewSort(false, "wordCount")).
			WithNearText(NewNearText("ships").
				WithMoveTo(searchparams.Move{Force: 0.5, Objects: []string{"abc"}}).
				WithTargetVectors(filters.ManualWeights(filters.Target("title", 0.5, 0.5))))
		require.NoError(t, err)

		queries := []Getter{
			near,
			NewGetter("Article").WithFields("title").
				WithHybrid(NewHybrid("q").WithAlpha(0.3).WithFusionType(searchparams.FusionRanked)).
				WithGroupBy(NewGroupBy("title").WithGroups(1).WithObjectsPerGroup(2)).
				WithTenant("t"),
			NewGetter("Article").WithFields("title").WithLimit(10).WithAfter("abc"),
		}
		for _, g := range queries {
			out, err := g.Build()
			require.NoError(t, err)
			assert.NoError(t, CheckSyntax(out), out)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		err := CheckSyntax(`{Get{Article(limit:1{title}}}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid graphql query")
	})

	t.Run("more than one operation", func(t *testing.T) {
		err := CheckSyntax(`{a} {b}`)
		require.Error(t, err)
		assert.Equal(t, "invalid graphql query: expected one operation, got 2", err.Error())
	})

	t.Run("fragment only", func(t *testing.T) {
		err := CheckSyntax(`fragment f on Article {title}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid graphql query: expected an operation")
	})
}
