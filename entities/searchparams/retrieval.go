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
	"strconv"

	"github.com/weaviate/weaviate-client-core/entities/filters"
)

// DefaultHybridAlpha is sent when a hybrid search does not set an alpha.
const DefaultHybridAlpha float32 = 0.5

type NearVector struct {
	Vector        Vector
	Certainty     *float64
	Distance      *float64
	TargetVectors *filters.TargetVectors
}

type NearObject struct {
	ID            string
	Beacon        string
	Certainty     *float64
	Distance      *float64
	TargetVectors *filters.TargetVectors
}

// Move shifts a nearText query towards or away from concepts and objects.
type Move struct {
	Force    float32
	Concepts []string
	Objects  []string
}

type NearText struct {
	Query         []string
	Certainty     *float64
	Distance      *float64
	MoveTo        *Move
	MoveAway      *Move
	TargetVectors *filters.TargetVectors
}

type MediaType string

const (
	MediaImage   MediaType = "image"
	MediaAudio   MediaType = "audio"
	MediaVideo   MediaType = "video"
	MediaDepth   MediaType = "depth"
	MediaThermal MediaType = "thermal"
	MediaIMU     MediaType = "imu"
)

// NearMedia searches by a base64 encoded media file.
type NearMedia struct {
	Media         MediaType
	Data          string
	Certainty     *float64
	Distance      *float64
	TargetVectors *filters.TargetVectors
}

// QueryProperty is a property searched by bm25 or hybrid. A zero Weight means
// the property is not boosted.
type QueryProperty struct {
	Name   string
	Weight float64
}

func Prop(name string) QueryProperty {
	return QueryProperty{Name: name}
}

func WeightedProp(name string, weight float64) QueryProperty {
	return QueryProperty{Name: name, Weight: weight}
}

// String renders the property as the server expects it, "name^weight" for
// boosted properties.
func (p QueryProperty) String() string {
	if p.Weight == 0 {
		return p.Name
	}
	return p.Name + "^" + strconv.FormatFloat(p.Weight, 'f', -1, 64)
}

func QueryPropertyNames(props []QueryProperty) []string {
	if props == nil {
		return nil
	}
	out := make([]string, len(props))
	for i := range props {
		out[i] = props[i].String()
	}
	return out
}

type KeywordRanking struct {
	Query      string
	Properties []QueryProperty
}

type FusionType int

const (
	FusionUnspecified FusionType = iota
	FusionRanked
	FusionRelativeScore
)

// Hybrid combines a keyword and a vector search. Vector, NearText and
// NearVector are alternative ways to give the vector part; the server
// vectorizes Query when none is set.
type Hybrid struct {
	Query         string
	Alpha         *float32
	Properties    []QueryProperty
	Fusion        FusionType
	Vector        *Vector
	NearText      *NearText
	NearVector    *NearVector
	TargetVectors *filters.TargetVectors
}

func (h Hybrid) AlphaOrDefault() float32 {
	if h.Alpha == nil {
		return DefaultHybridAlpha
	}
	return *h.Alpha
}
