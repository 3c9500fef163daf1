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
	"errors"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	entErrors "github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
	"google.golang.org/protobuf/proto"
)

func newTestSerializer() *Serializer {
	logger, _ := test.NewNullLogger()
	return NewSerializer(logger)
}

func TestSerializerCommon(t *testing.T) {
	s := newTestSerializer()

	t.Run("defaults", func(t *testing.T) {
		req, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{Limit: 10})
		require.Nil(t, err)

		requireProtoEqual(t, &pb.SearchRequest{
			Collection:  "Article",
			Limit:       10,
			Uses_123Api: true,
			Uses_125Api: true,
			Uses_127Api: true,
			Metadata:    &pb.MetadataRequest{Uuid: true},
			Properties:  &pb.PropertiesRequest{ReturnAllNonrefProperties: true},
		}, req)
	})

	t.Run("collection is required", func(t *testing.T) {
		_, err := s.FetchObjects("", capabilities.All(), searchparams.Common{})
		var invalid *entErrors.InvalidInputError
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("all metadata", func(t *testing.T) {
		req, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{
			ReturnMetadata: []searchparams.MetadataField{searchparams.MetadataAll},
			IncludeVector:  searchparams.IncludeVector{Names: []string{"title"}},
		})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.MetadataRequest{
			Uuid:               true,
			Vectors:            []string{"title"},
			CreationTimeUnix:   true,
			LastUpdateTimeUnix: true,
			Distance:           true,
			Certainty:          true,
			Score:              true,
			ExplainScore:       true,
			IsConsistent:       true,
		}, req.Metadata)
	})

	t.Run("unknown metadata field", func(t *testing.T) {
		_, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{
			ReturnMetadata: []searchparams.MetadataField{"nope"},
		})
		assert.EqualError(t, err, `invalid input for "returnMetadata": unknown metadata field "nope"`)
	})

	t.Run("properties and references", func(t *testing.T) {
		req, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{
			ReturnProperties: []string{"title"},
			ReturnObjects: []searchparams.ObjectProperty{{
				Name: "address", Properties: []string{"city"},
				Objects: []searchparams.ObjectProperty{{Name: "geo", Properties: []string{"lat"}}},
			}},
			ReturnReferences: []searchparams.QueryReference{{
				LinkOn:           "writtenBy",
				TargetCollection: "Person",
				ReturnProperties: []string{"name"},
				ReturnMetadata:   []searchparams.MetadataField{searchparams.MetadataCreationTime},
			}},
		})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.PropertiesRequest{
			NonRefProperties: []string{"title"},
			ObjectProperties: []*pb.ObjectPropertiesRequest{{
				PropName:            "address",
				PrimitiveProperties: []string{"city"},
				ObjectProperties: []*pb.ObjectPropertiesRequest{{
					PropName: "geo", PrimitiveProperties: []string{"lat"},
				}},
			}},
			RefProperties: []*pb.RefPropertiesRequest{{
				ReferenceProperty: "writtenBy",
				TargetCollection:  "Person",
				Metadata:          &pb.MetadataRequest{Uuid: true, CreationTimeUnix: true},
				Properties:        &pb.PropertiesRequest{NonRefProperties: []string{"name"}},
			}},
		}, req.Properties)
	})

	t.Run("an empty property selection returns no properties", func(t *testing.T) {
		req, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{
			ReturnProperties: []string{},
		})
		require.Nil(t, err)
		assert.False(t, req.Properties.ReturnAllNonrefProperties)
	})

	t.Run("sort, group by, rerank and consistency", func(t *testing.T) {
		req, err := s.FetchObjects("Article", capabilities.All(), searchparams.Common{
			Sort:             []searchparams.Sort{searchparams.SortDescending("title")},
			GroupBy:          &searchparams.GroupBy{Property: "category", NumberOfGroups: 2, ObjectsPerGroup: 3},
			Rerank:           &searchparams.Rerank{Property: "body", Query: "rain"},
			ConsistencyLevel: searchparams.ConsistencyQuorum,
			Tenant:           "tenantA",
		})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.SortBy{Ascending: false, Path: []string{"title"}}, req.SortBy[0])
		requireProtoEqual(t, &pb.GroupBy{Path: []string{"category"}, NumberOfGroups: 2, ObjectsPerGroup: 3}, req.GroupBy)
		requireProtoEqual(t, &pb.Rerank{Property: "body", Query: swag.String("rain")}, req.Rerank)
		assert.Equal(t, pb.ConsistencyLevel_CONSISTENCY_LEVEL_QUORUM, req.GetConsistencyLevel())
		assert.Equal(t, "tenantA", req.Tenant)
	})

	t.Run("requests are deterministic", func(t *testing.T) {
		opts := func() searchparams.Common {
			return searchparams.Common{
				Filters: filters.And(filters.ByProperty("a").Equal(1), filters.ByProperty("b").Equal("x")),
				Limit:   5,
			}
		}
		args := func() searchparams.NearVector {
			return searchparams.NearVector{
				Vector:        searchparams.NamedVectors(map[string][]float32{"b": {2}, "a": {1}, "c": {3}}),
				TargetVectors: filters.ManualWeights(filters.Target("a", 0.2), filters.Target("b", 0.3), filters.Target("c", 0.5)),
			}
		}
		marshal := proto.MarshalOptions{Deterministic: true}

		first, err := s.NearVector("Article", capabilities.All(), args(), opts())
		require.Nil(t, err)
		second, err := s.NearVector("Article", capabilities.All(), args(), opts())
		require.Nil(t, err)

		firstBytes, err := marshal.Marshal(first)
		require.Nil(t, err)
		secondBytes, err := marshal.Marshal(second)
		require.Nil(t, err)
		assert.Equal(t, firstBytes, secondBytes)
	})
}

func TestSerializerFetchObjectByID(t *testing.T) {
	s := newTestSerializer()
	id := "00000000-0000-0000-0000-000000000001"

	req, err := s.FetchObjectByID("Article", capabilities.All(), id, searchparams.Common{
		Limit:   20,
		Offset:  3,
		Filters: filters.ByProperty("ignored").Equal(true),
	})
	require.Nil(t, err)

	assert.Equal(t, uint32(1), req.Limit)
	assert.Equal(t, uint32(0), req.Offset)
	requireProtoEqual(t, &pb.Filters{
		Operator:  pb.Filters_OPERATOR_EQUAL,
		Target:    propTarget("_id"),
		TestValue: &pb.Filters_ValueText{ValueText: id},
	}, req.Filters)

	t.Run("invalid id", func(t *testing.T) {
		_, err := s.FetchObjectByID("Article", capabilities.All(), "not-a-uuid", searchparams.Common{})
		assert.EqualError(t, err, `invalid input for "id": "not-a-uuid" is not a valid uuid`)
	})
}

func TestSerializerKeywordAndHybrid(t *testing.T) {
	s := newTestSerializer()

	t.Run("bm25", func(t *testing.T) {
		req, err := s.BM25("Article", capabilities.All(), searchparams.KeywordRanking{
			Query:      "rain",
			Properties: []searchparams.QueryProperty{searchparams.Prop("title"), searchparams.WeightedProp("description", 2)},
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.BM25{Query: "rain", Properties: []string{"title", "description^2"}}, req.Bm25Search)
	})

	t.Run("hybrid with a dense vector", func(t *testing.T) {
		vector := searchparams.DenseVector([]float32{1, 2, 3})
		req, err := s.Hybrid("Article", capabilities.All(), searchparams.Hybrid{
			Query:  "rain",
			Fusion: searchparams.FusionRelativeScore,
			Vector: &vector,
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.Hybrid{
			Query:       "rain",
			Alpha:       0.5,
			FusionType:  pb.Hybrid_FUSION_TYPE_RELATIVE_SCORE,
			VectorBytes: EncodeVector([]float32{1, 2, 3}),
		}, req.HybridSearch)
	})

	t.Run("hybrid with named vectors nests a near vector", func(t *testing.T) {
		vector := searchparams.NamedVectors(map[string][]float32{"title": {1}})
		alpha := float32(0.75)
		req, err := s.Hybrid("Article", capabilities.All(), searchparams.Hybrid{
			Query:         "rain",
			Alpha:         &alpha,
			Vector:        &vector,
			TargetVectors: filters.TargetVectorNames("title"),
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.Hybrid{
			Query:   "rain",
			Alpha:   0.75,
			Targets: &pb.Targets{TargetVectors: []string{"title"}},
			NearVector: &pb.NearVector{
				VectorForTargets: []*pb.VectorForTarget{{Name: "title", VectorBytes: EncodeVector([]float32{1})}},
			},
		}, req.HybridSearch)
	})
}

func TestSerializerNearVector(t *testing.T) {
	s := newTestSerializer()

	t.Run("dense", func(t *testing.T) {
		distance := 0.3
		req, err := s.NearVector("Article", capabilities.All(), searchparams.NearVector{
			Vector:   searchparams.DenseVector([]float32{1, 2, 3}),
			Distance: &distance,
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.NearVector{
			VectorBytes: []byte{0, 0, 128, 63, 0, 0, 0, 64, 0, 0, 64, 64},
			Distance:    &distance,
		}, req.NearVector)
	})

	t.Run("multiple vectors per target fan out", func(t *testing.T) {
		req, err := s.NearVector("Article", capabilities.All(), searchparams.NearVector{
			Vector: searchparams.NamedVectorLists(map[string][][]float32{
				"b": {{3}},
				"a": {{1}, {2}},
			}),
			TargetVectors: filters.Sum("a", "b"),
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.NearVector{
			VectorForTargets: []*pb.VectorForTarget{
				{Name: "a", VectorBytes: EncodeVector([]float32{1})},
				{Name: "a", VectorBytes: EncodeVector([]float32{2})},
				{Name: "b", VectorBytes: EncodeVector([]float32{3})},
			},
			Targets: &pb.Targets{
				TargetVectors: []string{"a", "a", "b"},
				Combination:   pb.CombinationMethod_COMBINATION_METHOD_TYPE_SUM,
			},
		}, req.NearVector)
	})

	t.Run("vector per target on older servers", func(t *testing.T) {
		caps := &capabilities.Server{SupportsTargets: true}
		req, err := s.NearVector("Article", caps, searchparams.NearVector{
			Vector: searchparams.NamedVectors(map[string][]float32{"b": {2}, "a": {1}}),
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.NearVector{
			VectorPerTarget: map[string][]byte{
				"a": EncodeVector([]float32{1}),
				"b": EncodeVector([]float32{2}),
			},
			Targets: &pb.Targets{TargetVectors: []string{"a", "b"}},
		}, req.NearVector)
	})

	t.Run("unsupported shapes", func(t *testing.T) {
		tests := []struct {
			name   string
			vector searchparams.Vector
			caps   *capabilities.Server
		}{
			{
				name:   "lists without vectors for targets",
				vector: searchparams.NamedVectorLists(map[string][][]float32{"a": {{1}, {2}}}),
				caps:   &capabilities.Server{SupportsTargets: true},
			},
			{
				name:   "named vectors without targets",
				vector: searchparams.NamedVectors(map[string][]float32{"a": {1}}),
				caps:   capabilities.None(),
			},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := s.NearVector("Article", test.caps, searchparams.NearVector{Vector: test.vector}, searchparams.Common{})
				var unsupported *entErrors.UnsupportedFeatureError
				assert.True(t, errors.As(err, &unsupported), "got %v", err)
			})
		}
	})

	t.Run("empty vector", func(t *testing.T) {
		_, err := s.NearVector("Article", capabilities.All(), searchparams.NearVector{}, searchparams.Common{})
		var encoding *entErrors.EncodingError
		assert.True(t, errors.As(err, &encoding))
	})
}

func TestSerializerNearTextObjectAndMedia(t *testing.T) {
	s := newTestSerializer()

	t.Run("near text with moves", func(t *testing.T) {
		req, err := s.NearText("Article", capabilities.All(), searchparams.NearText{
			Query:         []string{"rain"},
			MoveTo:        &searchparams.Move{Force: 0.5, Concepts: []string{"umbrella"}},
			TargetVectors: filters.TargetVectorNames("title"),
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.NearTextSearch{
			Query:   []string{"rain"},
			MoveTo:  &pb.NearTextSearch_Move{Force: 0.5, Concepts: []string{"umbrella"}},
			Targets: &pb.Targets{TargetVectors: []string{"title"}},
		}, req.NearText)
	})

	t.Run("near object from a beacon", func(t *testing.T) {
		req, err := s.NearObject("Article", capabilities.All(), searchparams.NearObject{
			Beacon: "weaviate://localhost/Article/00000000-0000-0000-0000-000000000002",
		}, searchparams.Common{})
		require.Nil(t, err)
		assert.Equal(t, "00000000-0000-0000-0000-000000000002", req.NearObject.Id)
	})

	t.Run("near object needs an id", func(t *testing.T) {
		_, err := s.NearObject("Article", capabilities.All(), searchparams.NearObject{}, searchparams.Common{})
		assert.EqualError(t, err, `invalid input for "nearObject": id or beacon needs to be set`)
	})

	t.Run("near image", func(t *testing.T) {
		req, err := s.NearImage("Article", capabilities.None(), searchparams.NearMedia{
			Data:          "aW1hZ2U=",
			TargetVectors: filters.TargetVectorNames("image"),
		}, searchparams.Common{})
		require.Nil(t, err)
		requireProtoEqual(t, &pb.NearImageSearch{Image: "aW1hZ2U=", TargetVectors: []string{"image"}}, req.NearImage)
	})

	t.Run("media data is required", func(t *testing.T) {
		_, err := s.NearAudio("Article", capabilities.All(), searchparams.NearMedia{}, searchparams.Common{})
		assert.EqualError(t, err, `invalid input for "nearaudio": audio field must be present`)
	})

	t.Run("media kind mismatch", func(t *testing.T) {
		_, err := s.NearIMU("Article", capabilities.All(), searchparams.NearMedia{
			Media: searchparams.MediaVideo, Data: "x",
		}, searchparams.Common{})
		require.NotNil(t, err)
	})
}

func TestSerializerGenerative(t *testing.T) {
	s := newTestSerializer()
	generative := &searchparams.Generative{
		SinglePrompt:      "translate {title}",
		GroupedTask:       "summarize",
		GroupedProperties: []string{"title"},
	}

	t.Run("legacy fields on older servers", func(t *testing.T) {
		out, err := s.Generative(generative, capabilities.None())
		require.Nil(t, err)
		requireProtoEqual(t, &pb.GenerativeSearch{
			SingleResponsePrompt: "translate {title}",
			GroupedResponseTask:  "summarize",
			GroupedProperties:    []string{"title"},
		}, out)
	})

	t.Run("single and grouped on newer servers", func(t *testing.T) {
		out, err := s.Generative(generative, capabilities.All())
		require.Nil(t, err)
		requireProtoEqual(t, &pb.GenerativeSearch{
			Single:  &pb.GenerativeSearch_Single{Prompt: "translate {title}"},
			Grouped: &pb.GenerativeSearch_Grouped{Task: "summarize", Properties: &pb.TextArray{Values: []string{"title"}}},
		}, out)
	})

	t.Run("debug is set on the single prompt only", func(t *testing.T) {
		out, err := s.Generative(&searchparams.Generative{
			SinglePrompt: "translate {title}",
			SingleDebug:  true,
			GroupedTask:  "summarize",
		}, capabilities.All())
		require.Nil(t, err)
		requireProtoEqual(t, &pb.GenerativeSearch{
			Single:  &pb.GenerativeSearch_Single{Prompt: "translate {title}", Debug: true},
			Grouped: &pb.GenerativeSearch_Grouped{Task: "summarize"},
		}, out)
	})

	t.Run("provider overrides", func(t *testing.T) {
		withProvider := &searchparams.Generative{
			SinglePrompt: "translate {title}",
			Provider: &searchparams.GenerativeProvider{
				Kind: searchparams.GenerativeOllama, Model: "llama3", APIEndpoint: "http://ollama:11434",
			},
		}

		out, err := s.Generative(withProvider, capabilities.All())
		require.Nil(t, err)
		requireProtoEqual(t, &pb.GenerativeSearch_Single{
			Prompt: "translate {title}",
			Queries: []*pb.GenerativeProvider{{
				Kind: &pb.GenerativeProvider_Ollama{Ollama: &pb.GenerativeOllama{
					ApiEndpoint: swag.String("http://ollama:11434"),
					Model:       swag.String("llama3"),
				}},
			}},
		}, out.Single)

		_, err = s.Generative(withProvider, capabilities.None())
		var unsupported *entErrors.UnsupportedFeatureError
		assert.True(t, errors.As(err, &unsupported))
	})

	t.Run("needs a prompt or a task", func(t *testing.T) {
		_, err := s.Generative(&searchparams.Generative{}, capabilities.All())
		assert.EqualError(t, err, `invalid input for "generative": needs a single prompt or a grouped task`)
	})
}
