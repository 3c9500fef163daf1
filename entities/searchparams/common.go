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
	"github.com/weaviate/weaviate-client-core/entities/filters"
)

// Common holds the arguments every search modality accepts.
type Common struct {
	Filters          *filters.Filter
	Limit            uint32
	Offset           uint32
	Autocut          uint32
	After            string
	Sort             []Sort
	Tenant           string
	ConsistencyLevel ConsistencyLevel

	IncludeVector  IncludeVector
	ReturnMetadata []MetadataField
	// ReturnProperties nil (and no ReturnObjects) selects every non-reference
	// property, an empty non-nil slice selects none.
	ReturnProperties []string
	ReturnObjects    []ObjectProperty
	ReturnReferences []QueryReference

	GroupBy    *GroupBy
	Generative *Generative
	Rerank     *Rerank
}

func (c Common) IsGroupBy() bool {
	return c.GroupBy != nil
}

// IsGroupByRequest decides from untyped options whether a call is a group-by
// query. Only the presence of the "groupBy" key counts.
func IsGroupByRequest(opts map[string]interface{}) bool {
	if opts == nil {
		return false
	}
	_, ok := opts["groupBy"]
	return ok
}

type MetadataField string

const (
	MetadataAll          MetadataField = "all"
	MetadataCreationTime MetadataField = "creationTime"
	MetadataUpdateTime   MetadataField = "updateTime"
	MetadataDistance     MetadataField = "distance"
	MetadataCertainty    MetadataField = "certainty"
	MetadataScore        MetadataField = "score"
	MetadataExplainScore MetadataField = "explainScore"
	MetadataIsConsistent MetadataField = "isConsistent"
)

// AllMetadataFields lists every field "all" expands to.
func AllMetadataFields() []MetadataField {
	return []MetadataField{
		MetadataCreationTime, MetadataUpdateTime, MetadataDistance, MetadataCertainty,
		MetadataScore, MetadataExplainScore, MetadataIsConsistent,
	}
}

// IncludeVector selects the vectors returned with each object. All returns
// the default vector, Names the listed named vectors.
type IncludeVector struct {
	All   bool
	Names []string
}

// ObjectProperty selects fields of an object or object[] property.
type ObjectProperty struct {
	Name       string
	Properties []string
	Objects    []ObjectProperty
}

// QueryReference selects what to return from the objects behind a reference
// property. TargetCollection is required for multi-target references.
type QueryReference struct {
	LinkOn           string
	TargetCollection string
	IncludeVector    IncludeVector
	ReturnMetadata   []MetadataField
	ReturnProperties []string
	ReturnObjects    []ObjectProperty
	ReturnReferences []QueryReference
}

type Sort struct {
	Property  string
	Ascending bool
}

func SortAscending(property string) Sort {
	return Sort{Property: property, Ascending: true}
}

func SortDescending(property string) Sort {
	return Sort{Property: property}
}

type ConsistencyLevel string

const (
	ConsistencyUnset  ConsistencyLevel = ""
	ConsistencyOne    ConsistencyLevel = "ONE"
	ConsistencyQuorum ConsistencyLevel = "QUORUM"
	ConsistencyAll    ConsistencyLevel = "ALL"
)

type GroupBy struct {
	Property        string
	NumberOfGroups  int32
	ObjectsPerGroup int32
}

type Rerank struct {
	Property string
	Query    string
}

// Generative asks the server to generate text from the results. The single
// prompt runs per object, the grouped task once over all results; either may
// be left empty. Debug output exists for the single prompt only.
type Generative struct {
	SinglePrompt      string
	SingleDebug       bool
	GroupedTask       string
	GroupedProperties []string
	// Provider overrides the collection's generative module for this query.
	Provider *GenerativeProvider
}

func (g *Generative) HasSingle() bool {
	return g != nil && g.SinglePrompt != ""
}

func (g *Generative) HasGrouped() bool {
	return g != nil && g.GroupedTask != ""
}

type GenerativeProviderKind string

const (
	GenerativeOpenAI    GenerativeProviderKind = "openai"
	GenerativeAnthropic GenerativeProviderKind = "anthropic"
	GenerativeGoogle    GenerativeProviderKind = "google"
	GenerativeOllama    GenerativeProviderKind = "ollama"
)

type GenerativeProvider struct {
	Kind           GenerativeProviderKind
	Model          string
	Temperature    *float64
	MaxTokens      *int64
	APIEndpoint    string
	ReturnMetadata bool
}
