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

package moduleconfig

import (
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected Config
	}{
		{
			name:     "vectorizer without parameters",
			config:   NoVectorizer(),
			expected: Config{Kind: KindVectorizer, Name: "none"},
		},
		{
			name:     "unset fields are left out",
			config:   Text2VecOpenAI(Text2VecOpenAIOptions{Model: "text-embedding-3-small"}),
			expected: Config{Kind: KindVectorizer, Name: "text2vec-openai", Config: map[string]interface{}{"model": "text-embedding-3-small"}},
		},
		{
			name:   "generative",
			config: GenerativeOpenAI(GenerativeOpenAIOptions{Model: "gpt-4", MaxTokens: swag.Int(100), Temperature: swag.Float64(0)}),
			expected: Config{Kind: KindGenerative, Name: "generative-openai", Config: map[string]interface{}{
				"model": "gpt-4", "maxTokens": 100, "temperature": float64(0),
			}},
		},
		{
			name:     "reranker",
			config:   RerankerCohere("rerank-english-v2.0"),
			expected: Config{Kind: KindReranker, Name: "reranker-cohere", Config: map[string]interface{}{"model": "rerank-english-v2.0"}},
		},
		{
			name: "hnsw with pq",
			config: func() Config {
				pq := PQ(PQOptions{Segments: swag.Int(96), EncoderType: "kmeans"})
				return HNSW(HNSWOptions{EF: swag.Int(64), Quantizer: &pq})
			}(),
			expected: Config{Kind: KindVectorIndex, Name: "hnsw", Config: map[string]interface{}{
				"ef": 64,
				"pq": map[string]interface{}{
					"enabled": true, "segments": 96, "encoder": map[string]interface{}{"type": "kmeans"},
				},
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.config)
		})
	}
}

func TestValidate(t *testing.T) {
	pq := PQ(PQOptions{})
	bq := BQ(BQOptions{})

	assert.Nil(t, HNSW(HNSWOptions{Quantizer: &pq}).Validate())
	assert.Nil(t, Flat(FlatOptions{Quantizer: &bq}).Validate())
	assert.EqualError(t, Flat(FlatOptions{Quantizer: &pq}).Validate(), "pq is not supported for flat indices")

	both := HNSW(HNSWOptions{Quantizer: &pq})
	both.Config["bq"] = map[string]interface{}{"enabled": true}
	assert.EqualError(t, both.Validate(), "cannot enable multiple quantization methods at the same time")
}

func TestParseVectorIndex(t *testing.T) {
	t.Run("with server output", func(t *testing.T) {
		settings, err := ParseVectorIndex("hnsw", map[string]interface{}{
			"distance":       "dot",
			"ef":             float64(-1),
			"efConstruction": float64(128),
			"pq":             map[string]interface{}{"enabled": true, "segments": float64(0)},
			"bq":             map[string]interface{}{"enabled": false},
		})

		require.Nil(t, err)
		assert.Equal(t, VectorIndexSettings{
			Type: "hnsw", Distance: "dot", EF: -1, EFConstruction: 128, Quantizer: "pq",
		}, settings)
	})

	t.Run("defaults", func(t *testing.T) {
		settings, err := ParseVectorIndex("flat", nil)

		require.Nil(t, err)
		assert.Equal(t, DefaultDistanceMetric, settings.Distance)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseVectorIndex("annoy", nil)
		assert.NotNil(t, err)

		_, err = ParseVectorIndex("hnsw", map[string]interface{}{"ef": "64"})
		assert.EqualError(t, err, "ef must be an integer, got string")

		_, err = ParseVectorIndex("hnsw", map[string]interface{}{"ef": 1.5})
		assert.EqualError(t, err, "ef must be an integer, got 1.5")
	})
}
