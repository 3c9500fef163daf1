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

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// queryDocument is the yaml form of one search. At most one of the search
// sections may be set, none lists objects.
type queryDocument struct {
	Collection       string            `yaml:"collection"`
	Tenant           string            `yaml:"tenant"`
	ConsistencyLevel string            `yaml:"consistency_level"`
	Limit            uint32            `yaml:"limit"`
	Offset           uint32            `yaml:"offset"`
	Autocut          uint32            `yaml:"autocut"`
	After            string            `yaml:"after"`
	Where            *filterDocument   `yaml:"where"`
	Sort             []sortDocument    `yaml:"sort"`
	GroupBy          *groupByDocument  `yaml:"group_by"`
	Properties       []string          `yaml:"properties"`
	Metadata         []string          `yaml:"metadata"`
	IncludeVector    bool              `yaml:"include_vector"`
	Generate         *generateDocument `yaml:"generate"`

	NearText   *nearTextDocument   `yaml:"near_text"`
	NearVector *nearVectorDocument `yaml:"near_vector"`
	NearObject *nearObjectDocument `yaml:"near_object"`
	NearMedia  *nearMediaDocument  `yaml:"near_media"`
	BM25       *bm25Document       `yaml:"bm25"`
	Hybrid     *hybridDocument     `yaml:"hybrid"`
}

type filterDocument struct {
	Operator      string            `yaml:"operator"`
	Operands      []*filterDocument `yaml:"operands"`
	// Path is a property, or reference hops followed by a property:
	// [hasAuthor, Author, name]. An empty collection hops through a
	// single-target reference.
	Path          []string          `yaml:"path"`
	Length        bool              `yaml:"length"`
	Count         bool              `yaml:"count"`
	Value         interface{}       `yaml:"value"`
	ValueDate     interface{}       `yaml:"value_date"`
	ValueGeoRange *geoRangeDocument `yaml:"value_geo_range"`
}

type geoRangeDocument struct {
	Latitude  float32 `yaml:"latitude"`
	Longitude float32 `yaml:"longitude"`
	Distance  float32 `yaml:"distance"`
}

type sortDocument struct {
	Property  string `yaml:"property"`
	Ascending bool   `yaml:"ascending"`
}

type groupByDocument struct {
	Property        string `yaml:"property"`
	Groups          int32  `yaml:"groups"`
	ObjectsPerGroup int32  `yaml:"objects_per_group"`
}

type generateDocument struct {
	SinglePrompt      string   `yaml:"single_prompt"`
	GroupedTask       string   `yaml:"grouped_task"`
	GroupedProperties []string `yaml:"grouped_properties"`
}

// targetVectorsDocument is either a list of names or a combination with
// weighted targets.
type targetVectorsDocument struct {
	Combination string           `yaml:"combination"`
	Targets     []targetDocument `yaml:"targets"`
}

type targetDocument struct {
	Name    string    `yaml:"name"`
	Weights []float32 `yaml:"weights"`
}

func (t *targetVectorsDocument) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var names []string
	if err := unmarshal(&names); err == nil {
		t.Targets = make([]targetDocument, len(names))
		for i, name := range names {
			t.Targets[i] = targetDocument{Name: name}
		}
		return nil
	}
	type plain targetVectorsDocument
	return unmarshal((*plain)(t))
}

type moveDocument struct {
	Force    float32  `yaml:"force"`
	Concepts []string `yaml:"concepts"`
	Objects  []string `yaml:"objects"`
}

type nearTextDocument struct {
	Concepts      []string               `yaml:"concepts"`
	Certainty     *float64               `yaml:"certainty"`
	Distance      *float64               `yaml:"distance"`
	MoveTo        *moveDocument          `yaml:"move_to"`
	MoveAwayFrom  *moveDocument          `yaml:"move_away_from"`
	TargetVectors *targetVectorsDocument `yaml:"target_vectors"`
}

type nearVectorDocument struct {
	Vector        []float32              `yaml:"vector"`
	Vectors       map[string][]float32   `yaml:"vectors"`
	VectorLists   map[string][][]float32 `yaml:"vector_lists"`
	Certainty     *float64               `yaml:"certainty"`
	Distance      *float64               `yaml:"distance"`
	TargetVectors *targetVectorsDocument `yaml:"target_vectors"`
}

type nearObjectDocument struct {
	ID            string                 `yaml:"id"`
	Beacon        string                 `yaml:"beacon"`
	// Collection turns ID into a beacon on the configured beacon host.
	Collection    string                 `yaml:"collection"`
	Certainty     *float64               `yaml:"certainty"`
	Distance      *float64               `yaml:"distance"`
	TargetVectors *targetVectorsDocument `yaml:"target_vectors"`
}

type nearMediaDocument struct {
	Media         string                 `yaml:"media"`
	// Data is base64 encoded media. The root command fills it from DataFile.
	Data          string                 `yaml:"data"`
	DataFile      string                 `yaml:"data_file"`
	Certainty     *float64               `yaml:"certainty"`
	Distance      *float64               `yaml:"distance"`
	TargetVectors *targetVectorsDocument `yaml:"target_vectors"`
}

type bm25Document struct {
	Query      string   `yaml:"query"`
	// Properties may be boosted, "title^2".
	Properties []string `yaml:"properties"`
}

type hybridDocument struct {
	Query         string                 `yaml:"query"`
	Alpha         *float32               `yaml:"alpha"`
	Vector        []float32              `yaml:"vector"`
	Properties    []string               `yaml:"properties"`
	Fusion        string                 `yaml:"fusion"`
	TargetVectors *targetVectorsDocument `yaml:"target_vectors"`
}

func (d *queryDocument) validate() error {
	if d.Collection == "" {
		return errors.New("collection must be set")
	}
	var searches []string
	for name, set := range map[string]bool{
		"near_text":   d.NearText != nil,
		"near_vector": d.NearVector != nil,
		"near_object": d.NearObject != nil,
		"near_media":  d.NearMedia != nil,
		"bm25":        d.BM25 != nil,
		"hybrid":      d.Hybrid != nil,
	} {
		if set {
			searches = append(searches, name)
		}
	}
	if len(searches) > 1 {
		sort.Strings(searches)
		return errors.Errorf("a query document holds one search, got %s", strings.Join(searches, " and "))
	}
	return nil
}

func (d *queryDocument) common() (searchparams.Common, error) {
	opts := searchparams.Common{
		Limit:            d.Limit,
		Offset:           d.Offset,
		Autocut:          d.Autocut,
		After:            d.After,
		Tenant:           d.Tenant,
		ConsistencyLevel: searchparams.ConsistencyLevel(strings.ToUpper(d.ConsistencyLevel)),
		ReturnProperties: d.Properties,
		IncludeVector:    searchparams.IncludeVector{All: d.IncludeVector},
	}
	for _, field := range d.Metadata {
		opts.ReturnMetadata = append(opts.ReturnMetadata, searchparams.MetadataField(field))
	}
	for _, by := range d.Sort {
		opts.Sort = append(opts.Sort, searchparams.Sort{Property: by.Property, Ascending: by.Ascending})
	}
	if d.GroupBy != nil {
		opts.GroupBy = &searchparams.GroupBy{
			Property:        d.GroupBy.Property,
			NumberOfGroups:  d.GroupBy.Groups,
			ObjectsPerGroup: d.GroupBy.ObjectsPerGroup,
		}
	}
	if d.Generate != nil {
		opts.Generative = &searchparams.Generative{
			SinglePrompt:      d.Generate.SinglePrompt,
			GroupedTask:       d.Generate.GroupedTask,
			GroupedProperties: d.Generate.GroupedProperties,
		}
	}
	if d.Where != nil {
		filter, err := d.Where.filter()
		if err != nil {
			return opts, errors.Wrap(err, "where")
		}
		opts.Filters = filter
	}
	return opts, nil
}

func (f *filterDocument) filter() (*filters.Filter, error) {
	switch f.Operator {
	case "And", "Or":
		operands := make([]*filters.Filter, len(f.Operands))
		for i, operand := range f.Operands {
			filter, err := operand.filter()
			if err != nil {
				return nil, errors.Wrapf(err, "operand %d", i)
			}
			operands[i] = filter
		}
		if f.Operator == "And" {
			return filters.And(operands...), nil
		}
		return filters.Or(operands...), nil
	}

	target, err := f.target()
	if err != nil {
		return nil, err
	}
	if f.Operator == "WithinGeoRange" {
		if f.ValueGeoRange == nil {
			return nil, errors.New("WithinGeoRange needs value_geo_range")
		}
		geo := f.ValueGeoRange
		return target.WithinGeoRange(filters.NewGeoRange(geo.Latitude, geo.Longitude, geo.Distance)), nil
	}

	value, err := f.value()
	if err != nil {
		return nil, err
	}
	switch f.Operator {
	case "Equal":
		return target.Equal(value), nil
	case "NotEqual":
		return target.NotEqual(value), nil
	case "GreaterThan":
		return target.GreaterThan(value), nil
	case "GreaterThanEqual":
		return target.GreaterOrEqual(value), nil
	case "LessThan":
		return target.LessThan(value), nil
	case "LessThanEqual":
		return target.LessOrEqual(value), nil
	case "ContainsAny":
		return target.ContainsAny(value), nil
	case "ContainsAll":
		return target.ContainsAll(value), nil
	case "Like":
		pattern, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("Like needs a text value, got %T", value)
		}
		return target.Like(pattern), nil
	case "IsNull":
		isNull, ok := value.(bool)
		if !ok {
			return nil, errors.Errorf("IsNull needs a boolean value, got %T", value)
		}
		return target.IsNull(isNull), nil
	default:
		return nil, errors.Errorf("unknown operator %q", f.Operator)
	}
}

func (f *filterDocument) target() (*filters.PropertyFilter, error) {
	path := f.Path
	if len(path) == 0 || len(path)%2 == 0 {
		return nil, errors.Errorf("path must be a property or reference hops and a property, got %v", path)
	}

	last := path[len(path)-1]
	if len(path) == 1 {
		switch {
		case f.Count:
			return filters.ByRefCount(last), nil
		case f.Length:
			return filters.ByPropertyLength(last), nil
		default:
			return filters.ByProperty(last), nil
		}
	}

	var ref *filters.RefFilter
	for i := 0; i+1 < len(path); i += 2 {
		on, collection := path[i], path[i+1]
		switch {
		case ref == nil && collection == "":
			ref = filters.ByRef(on)
		case ref == nil:
			ref = filters.ByRefMultiTarget(on, collection)
		case collection == "":
			ref = ref.ByRef(on)
		default:
			ref = ref.ByRefMultiTarget(on, collection)
		}
	}
	switch {
	case f.Count:
		return ref.ByRefCount(last), nil
	case f.Length:
		return ref.ByPropertyLength(last), nil
	default:
		return ref.ByProperty(last), nil
	}
}

func (f *filterDocument) value() (interface{}, error) {
	if f.ValueDate != nil {
		return dateValue(f.ValueDate)
	}
	if f.Value == nil {
		return nil, errors.Errorf("operator %s needs a value", f.Operator)
	}
	return normalizeValue(f.Value)
}

// normalizeValue turns decoded yaml into the value types filters accept.
// Lists take the type of their elements, ints mixed with floats become
// floats.
func normalizeValue(v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case string, bool, int, int64, float64:
		return typed, nil
	case uint64:
		return int64(typed), nil
	case []interface{}:
		return normalizeList(typed)
	default:
		return nil, errors.Errorf("unsupported value of type %T", v)
	}
}

func normalizeList(list []interface{}) (interface{}, error) {
	if len(list) == 0 {
		return nil, errors.New("value list cannot be empty")
	}
	switch list[0].(type) {
	case string:
		out := make([]string, len(list))
		for i, element := range list {
			s, ok := element.(string)
			if !ok {
				return nil, errors.Errorf("value %d: expected text, got %T", i, element)
			}
			out[i] = s
		}
		return out, nil
	case bool:
		out := make([]bool, len(list))
		for i, element := range list {
			b, ok := element.(bool)
			if !ok {
				return nil, errors.Errorf("value %d: expected a boolean, got %T", i, element)
			}
			out[i] = b
		}
		return out, nil
	case int, int64, uint64, float64:
		ints := make([]int64, len(list))
		floats := make([]float64, len(list))
		isFloat := false
		for i, element := range list {
			switch n := element.(type) {
			case int:
				ints[i], floats[i] = int64(n), float64(n)
			case int64:
				ints[i], floats[i] = n, float64(n)
			case uint64:
				ints[i], floats[i] = int64(n), float64(n)
			case float64:
				floats[i] = n
				isFloat = true
			default:
				return nil, errors.Errorf("value %d: expected a number, got %T", i, element)
			}
		}
		if isFloat {
			return floats, nil
		}
		return ints, nil
	default:
		return nil, errors.Errorf("unsupported list of %T", list[0])
	}
}

func dateValue(v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case string:
		return parseDate(typed)
	case []interface{}:
		out := make([]time.Time, len(typed))
		for i, element := range typed {
			s, ok := element.(string)
			if !ok {
				return nil, errors.Errorf("value_date %d: expected a string, got %T", i, element)
			}
			date, err := parseDate(s)
			if err != nil {
				return nil, errors.Wrapf(err, "value_date %d", i)
			}
			out[i] = date
		}
		return out, nil
	default:
		return nil, errors.Errorf("value_date must be a string or a list, got %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", s)
	}
	return date, nil
}

func (t *targetVectorsDocument) targetVectors() (*filters.TargetVectors, error) {
	if t == nil {
		return nil, nil
	}
	out := &filters.TargetVectors{}
	switch t.Combination {
	case "":
	case "sum":
		out.Combination = filters.CombinationSum
	case "average":
		out.Combination = filters.CombinationAverage
	case "minimum":
		out.Combination = filters.CombinationMinimum
	case "maximum":
		out.Combination = filters.CombinationMaximum
	case "relative_score":
		out.Combination = filters.CombinationRelativeScore
	case "manual":
		out.Combination = filters.CombinationManual
	default:
		return nil, errors.Errorf("unknown combination %q", t.Combination)
	}
	for _, target := range t.Targets {
		out.Targets = append(out.Targets, filters.Target(target.Name, target.Weights...))
	}
	return out, nil
}

func (m *moveDocument) move() *searchparams.Move {
	if m == nil {
		return nil
	}
	return &searchparams.Move{Force: m.Force, Concepts: m.Concepts, Objects: m.Objects}
}

func (d *nearVectorDocument) vector() (searchparams.Vector, error) {
	set := 0
	for _, present := range []bool{d.Vector != nil, d.Vectors != nil, d.VectorLists != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return searchparams.Vector{}, errors.New("near_vector needs exactly one of vector, vectors or vector_lists")
	}
	switch {
	case d.Vectors != nil:
		return searchparams.NamedVectors(d.Vectors), nil
	case d.VectorLists != nil:
		return searchparams.NamedVectorLists(d.VectorLists), nil
	default:
		return searchparams.DenseVector(d.Vector), nil
	}
}

// queryProperties parses "name^weight" boosts.
func queryProperties(names []string) ([]searchparams.QueryProperty, error) {
	if names == nil {
		return nil, nil
	}
	out := make([]searchparams.QueryProperty, len(names))
	for i, name := range names {
		base, boost, found := strings.Cut(name, "^")
		if !found {
			out[i] = searchparams.Prop(name)
			continue
		}
		weight, err := strconv.ParseFloat(boost, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", name)
		}
		out[i] = searchparams.WeightedProp(base, weight)
	}
	return out, nil
}

func fusionType(name string) (searchparams.FusionType, error) {
	switch name {
	case "":
		return searchparams.FusionUnspecified, nil
	case "ranked":
		return searchparams.FusionRanked, nil
	case "relative_score":
		return searchparams.FusionRelativeScore, nil
	default:
		return 0, fmt.Errorf("unknown fusion %q", name)
	}
}
