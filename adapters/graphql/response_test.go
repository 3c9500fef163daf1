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
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entErrors "github.com/weaviate/weaviate-client-core/entities/errors"
)

func TestParseGetResponse(t *testing.T) {
	body := []byte(`{"data":{"Get":{"Article":[
		{
			"title": "a \"quoted\" title",
			"wordCount": 120,
			"rating": 4.5,
			"tags": ["x", "y"],
			"published": true,
			"author": null,
			"location": {"latitude": 51.5, "longitude": -0.1},
			"_additional": {
				"id": "00000000-0000-0000-0000-000000000001",
				"distance": 0.25,
				"certainty": "0.875",
				"score": "0.5",
				"explainScore": "(bm25) title",
				"creationTimeUnix": "1700000000000",
				"lastUpdateTimeUnix": "1700000001000",
				"isConsistent": true,
				"vector": [1, 2.5],
				"vectors": {"title": [3]},
				"generate": {"singleResult": "gen a", "groupedResult": "all", "error": null}
			}
		},
		{
			"title": "b",
			"_additional": {
				"id": "00000000-0000-0000-0000-000000000002",
				"generate": {"singleResult": "gen b", "groupedResult": null, "error": null}
			}
		}
	]}}}`)

	res, err := ParseGetResponse(body, "Article")
	require.NoError(t, err)
	require.Len(t, res.Objects, 2)
	require.NotNil(t, res.GenerativeGrouped)
	assert.Equal(t, "all", *res.GenerativeGrouped)

	first := res.Objects[0]
	assert.Equal(t, "Article", first.Collection)
	assert.Equal(t, map[string]interface{}{
		"title":     `a "quoted" title`,
		"wordCount": json.Number("120"),
		"rating":    json.Number("4.5"),
		"tags":      []interface{}{"x", "y"},
		"published": true,
		"author":    nil,
		"location": map[string]interface{}{
			"latitude":  json.Number("51.5"),
			"longitude": json.Number("-0.1"),
		},
	}, first.Properties)

	meta := first.Metadata
	assert.Equal(t, strfmt.UUID("00000000-0000-0000-0000-000000000001"), meta.UUID)
	require.NotNil(t, meta.Distance)
	assert.Equal(t, float32(0.25), *meta.Distance)
	require.NotNil(t, meta.Certainty)
	assert.Equal(t, float32(0.875), *meta.Certainty)
	require.NotNil(t, meta.Score)
	assert.Equal(t, float32(0.5), *meta.Score)
	require.NotNil(t, meta.ExplainScore)
	assert.Equal(t, "(bm25) title", *meta.ExplainScore)
	require.NotNil(t, meta.CreationTime)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), *meta.CreationTime)
	require.NotNil(t, meta.UpdateTime)
	assert.Equal(t, time.UnixMilli(1700000001000).UTC(), *meta.UpdateTime)
	require.NotNil(t, meta.IsConsistent)
	assert.True(t, *meta.IsConsistent)
	assert.Equal(t, []float32{1, 2.5}, first.Vector)
	assert.Equal(t, map[string][]float32{"title": {3}}, first.Vectors)
	require.NotNil(t, first.Generated)
	assert.Equal(t, "gen a", *first.Generated)

	second := res.Objects[1]
	assert.Equal(t, map[string]interface{}{"title": "b"}, second.Properties)
	assert.Nil(t, second.Metadata.Distance)
	assert.Nil(t, second.Metadata.CreationTime)
	require.NotNil(t, second.Generated)
	assert.Equal(t, "gen b", *second.Generated)
}

func TestParseGetResponseEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `{"data":{"Get":{"Article":[]}}}`},
		{name: "null class", body: `{"data":{"Get":{"Article":null}}}`},
		{name: "other class only", body: `{"data":{"Get":{"Other":[{"a":1}]}}}`},
		{name: "no data", body: `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, err := ParseGetResponse([]byte(test.body), "Article")
			require.NoError(t, err)
			assert.Empty(t, res.Objects)
			assert.Nil(t, res.GenerativeGrouped)
		})
	}
}

func TestParseGetResponseErrors(t *testing.T) {
	t.Run("graphql errors", func(t *testing.T) {
		tests := []struct {
			name     string
			body     string
			expected string
		}{
			{
				name:     "single",
				body:     `{"errors":[{"message":"class Article not found"}],"data":{"Get":{"Article":null}}}`,
				expected: "graphql query on Article: class Article not found",
			},
			{
				name:     "several",
				body:     `{"errors":[{"message":"first"},{"message":"second"}]}`,
				expected: "graphql query on Article: 2 errors, first: first",
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := ParseGetResponse([]byte(test.body), "Article")
				require.Error(t, err)
				assert.Equal(t, test.expected, err.Error())

				var responseErr *entErrors.GraphQLResponseError
				require.True(t, errors.As(err, &responseErr))
				assert.Equal(t, "Article", responseErr.ClassName())
			})
		}
	})

	t.Run("malformed replies", func(t *testing.T) {
		tests := []struct {
			name     string
			body     string
			contains string
		}{
			{
				name:     "class is not a list",
				body:     `{"data":{"Get":{"Article":{"title":"a"}}}}`,
				contains: "not an array",
			},
			{
				name:     "result is not an object",
				body:     `{"data":{"Get":{"Article":[1]}}}`,
				contains: "result 0: expected an object",
			},
			{
				name:     "broken vector",
				body:     `{"data":{"Get":{"Article":[{"_additional":{"vector":["x"]}}]}}}`,
				contains: "result 0: _additional: vector",
			},
			{
				name:     "broken creation time",
				body:     `{"data":{"Get":{"Article":[{"_additional":{"creationTimeUnix":"yesterday"}}]}}}`,
				contains: "result 0: _additional: creationTimeUnix",
			},
			{
				name:     "generation error",
				body:     `{"data":{"Get":{"Article":[{"_additional":{"generate":{"error":"quota exceeded"}}}]}}}`,
				contains: "result 0: _additional: generate: generation failed: quota exceeded",
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := ParseGetResponse([]byte(test.body), "Article")
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.contains)
			})
		}
	})
}
