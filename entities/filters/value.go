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

package filters

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/weaviate/weaviate/entities/models"
)

type ValueType int

const (
	ValueTypeUnknown ValueType = iota
	ValueTypeText
	ValueTypeInt
	ValueTypeNumber
	ValueTypeBoolean
	ValueTypeDate
	ValueTypeGeoRange
	ValueTypeTextArray
	ValueTypeIntArray
	ValueTypeNumberArray
	ValueTypeBooleanArray
	ValueTypeDateArray
)

func (t ValueType) IsArray() bool {
	switch t {
	case ValueTypeTextArray, ValueTypeIntArray, ValueTypeNumberArray,
		ValueTypeBooleanArray, ValueTypeDateArray:
		return true
	default:
		return false
	}
}

func (t ValueType) String() string {
	switch t {
	case ValueTypeText:
		return "text"
	case ValueTypeInt:
		return "int"
	case ValueTypeNumber:
		return "number"
	case ValueTypeBoolean:
		return "boolean"
	case ValueTypeDate:
		return "date"
	case ValueTypeGeoRange:
		return "geoRange"
	case ValueTypeTextArray:
		return "text[]"
	case ValueTypeIntArray:
		return "int[]"
	case ValueTypeNumberArray:
		return "number[]"
	case ValueTypeBooleanArray:
		return "boolean[]"
	case ValueTypeDateArray:
		return "date[]"
	default:
		return "unknown"
	}
}

// Value is a normalized filter value. Raw holds one of string, int64,
// float64, bool, time.Time, GeoRange or a slice of the scalar types.
type Value struct {
	Raw  interface{}
	Type ValueType
}

// GeoRange to be used with fields of type GeoCoordinates. Identifies a point
// and a maximum distance from that point.
type GeoRange struct {
	*models.GeoCoordinates
	Distance float32 `json:"distance"`
}

func NewGeoRange(latitude, longitude, distance float32) GeoRange {
	return GeoRange{
		GeoCoordinates: &models.GeoCoordinates{
			Latitude:  swag.Float32(latitude),
			Longitude: swag.Float32(longitude),
		},
		Distance: distance,
	}
}

// NewValue classifies v by its Go type. Integers and floats stay distinct:
// an int becomes ValueTypeInt and a float64 ValueTypeNumber. Slices are
// copied so the filter never aliases caller memory.
func NewValue(v interface{}) *Value {
	switch typed := v.(type) {
	case string:
		return &Value{Raw: typed, Type: ValueTypeText}
	case strfmt.UUID:
		return &Value{Raw: typed.String(), Type: ValueTypeText}
	case int:
		return &Value{Raw: int64(typed), Type: ValueTypeInt}
	case int32:
		return &Value{Raw: int64(typed), Type: ValueTypeInt}
	case int64:
		return &Value{Raw: typed, Type: ValueTypeInt}
	case uint32:
		return &Value{Raw: int64(typed), Type: ValueTypeInt}
	case float32:
		return &Value{Raw: float64(typed), Type: ValueTypeNumber}
	case float64:
		return &Value{Raw: typed, Type: ValueTypeNumber}
	case bool:
		return &Value{Raw: typed, Type: ValueTypeBoolean}
	case time.Time:
		return &Value{Raw: typed, Type: ValueTypeDate}
	case *time.Time:
		if typed == nil {
			break
		}
		return &Value{Raw: *typed, Type: ValueTypeDate}
	case GeoRange:
		return &Value{Raw: typed, Type: ValueTypeGeoRange}
	case *GeoRange:
		if typed == nil {
			break
		}
		return &Value{Raw: *typed, Type: ValueTypeGeoRange}
	case []string:
		return &Value{Raw: append([]string{}, typed...), Type: ValueTypeTextArray}
	case []strfmt.UUID:
		out := make([]string, len(typed))
		for i := range typed {
			out[i] = typed[i].String()
		}
		return &Value{Raw: out, Type: ValueTypeTextArray}
	case []int:
		out := make([]int64, len(typed))
		for i := range typed {
			out[i] = int64(typed[i])
		}
		return &Value{Raw: out, Type: ValueTypeIntArray}
	case []int32:
		out := make([]int64, len(typed))
		for i := range typed {
			out[i] = int64(typed[i])
		}
		return &Value{Raw: out, Type: ValueTypeIntArray}
	case []int64:
		return &Value{Raw: append([]int64{}, typed...), Type: ValueTypeIntArray}
	case []float32:
		out := make([]float64, len(typed))
		for i := range typed {
			out[i] = float64(typed[i])
		}
		return &Value{Raw: out, Type: ValueTypeNumberArray}
	case []float64:
		return &Value{Raw: append([]float64{}, typed...), Type: ValueTypeNumberArray}
	case []bool:
		return &Value{Raw: append([]bool{}, typed...), Type: ValueTypeBooleanArray}
	case []time.Time:
		return &Value{Raw: append([]time.Time{}, typed...), Type: ValueTypeDateArray}
	}
	return &Value{Raw: v, Type: ValueTypeUnknown}
}
