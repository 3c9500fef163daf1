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
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

type BM25 struct {
	query      string
	properties []searchparams.QueryProperty
}

func NewBM25(query string) BM25 {
	return BM25{query: query}
}

// WithProperties limits the search to the given properties, a weight boosts
// a property as "name^weight".
func (b BM25) WithProperties(properties ...searchparams.QueryProperty) BM25 {
	b.properties = append([]searchparams.QueryProperty{}, properties...)
	return b
}

func (b BM25) Validate() error {
	if b.query == "" {
		return errors.NewGraphQLValidation("bm25", "bm25 filter: query needs to be set")
	}
	return nil
}

func (b BM25) String() string {
	args := arguments{}
	args.add("query", quote(b.query))
	if len(b.properties) > 0 {
		args.add("properties", quoteList(searchparams.QueryPropertyNames(b.properties)))
	}
	return args.object()
}

func (b BM25) Build() (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.String(), nil
}

type Hybrid struct {
	query         string
	alpha         *float32
	vector        []float32
	properties    []searchparams.QueryProperty
	fusion        searchparams.FusionType
	targetVectors *filters.TargetVectors
}

func NewHybrid(query string) Hybrid {
	return Hybrid{query: query}
}

// WithAlpha weighs the vector search against the keyword search, 0 is pure
// keyword and 1 pure vector search.
func (h Hybrid) WithAlpha(alpha float32) Hybrid {
	h.alpha = &alpha
	return h
}

func (h Hybrid) WithVector(vector []float32) Hybrid {
	h.vector = append([]float32{}, vector...)
	return h
}

func (h Hybrid) WithProperties(properties ...searchparams.QueryProperty) Hybrid {
	h.properties = append([]searchparams.QueryProperty{}, properties...)
	return h
}

func (h Hybrid) WithFusionType(fusion searchparams.FusionType) Hybrid {
	h.fusion = fusion
	return h
}

func (h Hybrid) WithTargetVectors(tv *filters.TargetVectors) Hybrid {
	h.targetVectors = tv
	return h
}

func (h Hybrid) Validate() error {
	if h.query == "" && len(h.vector) == 0 {
		return errors.NewGraphQLValidation("hybrid", "hybrid filter: query or vector needs to be set")
	}
	if h.alpha != nil && (*h.alpha < 0 || *h.alpha > 1) {
		return errors.NewGraphQLValidation("hybrid",
			"hybrid filter: alpha must be between 0 and 1, got %v", *h.alpha)
	}
	switch h.fusion {
	case searchparams.FusionUnspecified, searchparams.FusionRanked, searchparams.FusionRelativeScore:
	default:
		return errors.NewGraphQLValidation("hybrid", "hybrid filter: unknown fusion type %d", h.fusion)
	}
	return validateTargetVectors("hybrid", h.targetVectors)
}

func (h Hybrid) String() string {
	args := arguments{}
	args.add("query", quote(h.query))
	if h.alpha != nil {
		args.add("alpha", formatFloat32(*h.alpha))
	}
	if len(h.vector) > 0 {
		args.add("vector", formatVector(h.vector))
	}
	if len(h.properties) > 0 {
		args.add("properties", quoteList(searchparams.QueryPropertyNames(h.properties)))
	}
	switch h.fusion {
	case searchparams.FusionRanked:
		args.add("fusionType", "rankedFusion")
	case searchparams.FusionRelativeScore:
		args.add("fusionType", "relativeScoreFusion")
	}
	addTargetVectors(&args, h.targetVectors)
	return args.object()
}

func (h Hybrid) Build() (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	return h.String(), nil
}
