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
	"strconv"
	"strings"
	"time"

	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/schema"
)

// Where renders a filter tree as the where argument.
type Where struct {
	filter *filters.Filter
}

func NewWhere(filter *filters.Filter) Where {
	return Where{filter: filter}
}

func (w Where) WithFilter(filter *filters.Filter) Where {
	w.filter = filter
	return w
}

func (w Where) Validate() error {
	if w.filter == nil {
		return errors.NewGraphQLValidation("where", "where filter: a filter must be set")
	}
	if err := w.filter.Validate(); err != nil {
		return errors.NewGraphQLValidation("where", "where filter: %v", err)
	}
	if _, err := renderFilter(w.filter); err != nil {
		return errors.NewGraphQLValidation("where", "where filter: %v", err)
	}
	return nil
}

func (w Where) String() string {
	out, _ := renderFilter(w.filter)
	return out
}

func (w Where) Build() (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	return w.String(), nil
}

func renderFilter(f *filters.Filter) (string, error) {
	if f == nil {
		return "", nil
	}
	args := arguments{}
	args.add("operator", f.Operator.Name())

	if f.IsCombinator() {
		operands := make([]string, len(f.Operands))
		for i, operand := range f.Operands {
			rendered, err := renderFilter(operand)
			if err != nil {
				return "", err
			}
			operands[i] = rendered
		}
		args.add("operands", "["+strings.Join(operands, ",")+"]")
		return args.object(), nil
	}

	if f.On != nil {
		path, err := f.On.Slice()
		if err != nil {
			return "", err
		}
		args.add("path", quoteList(path))
	}
	if f.Value != nil {
		name, value := renderValue(f.Value)
		args.add(name, value)
	}
	return args.object(), nil
}

// renderValue returns the value field of a leaf and its rendered value.
func renderValue(v *filters.Value) (string, string) {
	switch v.Type {
	case filters.ValueTypeText:
		return "valueText", quote(v.Raw.(string))
	case filters.ValueTypeInt:
		return "valueInt", strconv.FormatInt(v.Raw.(int64), 10)
	case filters.ValueTypeNumber:
		return "valueNumber", formatFloat(v.Raw.(float64))
	case filters.ValueTypeBoolean:
		return "valueBoolean", strconv.FormatBool(v.Raw.(bool))
	case filters.ValueTypeDate:
		return "valueDate", quote(schema.FormatDate(v.Raw.(time.Time)))
	case filters.ValueTypeGeoRange:
		geo := v.Raw.(filters.GeoRange)
		coordinates := arguments{}
		if geo.GeoCoordinates != nil {
			if geo.Latitude != nil {
				coordinates.add("latitude", formatFloat32(*geo.Latitude))
			}
			if geo.Longitude != nil {
				coordinates.add("longitude", formatFloat32(*geo.Longitude))
			}
		}
		distance := arguments{}
		distance.add("max", formatFloat32(geo.Distance))
		value := arguments{}
		value.add("geoCoordinates", coordinates.object())
		value.add("distance", distance.object())
		return "valueGeoRange", value.object()
	case filters.ValueTypeTextArray:
		return "valueText", quoteList(v.Raw.([]string))
	case filters.ValueTypeIntArray:
		ints := v.Raw.([]int64)
		values := make([]string, len(ints))
		for i := range ints {
			values[i] = strconv.FormatInt(ints[i], 10)
		}
		return "valueInt", "[" + strings.Join(values, ",") + "]"
	case filters.ValueTypeNumberArray:
		numbers := v.Raw.([]float64)
		values := make([]string, len(numbers))
		for i := range numbers {
			values[i] = formatFloat(numbers[i])
		}
		return "valueNumber", "[" + strings.Join(values, ",") + "]"
	case filters.ValueTypeBooleanArray:
		bools := v.Raw.([]bool)
		values := make([]string, len(bools))
		for i := range bools {
			values[i] = strconv.FormatBool(bools[i])
		}
		return "valueBoolean", "[" + strings.Join(values, ",") + "]"
	case filters.ValueTypeDateArray:
		dates := v.Raw.([]time.Time)
		values := make([]string, len(dates))
		for i := range dates {
			values[i] = schema.FormatDate(dates[i])
		}
		return "valueDate", quoteList(values)
	}
	return "value", quote("")
}
