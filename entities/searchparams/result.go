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

package searchparams

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Result is a parsed search reply. Objects is set for plain searches, Groups
// for group-by searches.
type Result struct {
	Took              float32
	Objects           []Object
	Groups            []Group
	GenerativeGrouped *string
}

type Object struct {
	Collection string
	Properties map[string]interface{}
	References map[string][]Object
	Metadata   Metadata
	// Vector is the default vector, Vectors the named ones. Named
	// multi-vectors are kept apart in MultiVectors.
	Vector       []float32
	Vectors      map[string][]float32
	MultiVectors map[string][][]float32
	Generated *string
}

// Metadata holds the metadata the server returned. Fields the server did not
// send are nil.
type Metadata struct {
	UUID         strfmt.UUID
	CreationTime *time.Time
	UpdateTime   *time.Time
	Distance     *float32
	Certainty    *float32
	Score        *float32
	ExplainScore *string
	IsConsistent *bool
	RerankScore  *float64
}

type Group struct {
	Name            string
	MinDistance     float32
	MaxDistance     float32
	NumberOfObjects int64
	Objects         []Object
}
