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

package objects

import (
	"encoding/json"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate/entities/models"
)

// Dematerialized is an object's REST properties split into plain
// properties and references.
type Dematerialized struct {
	Properties map[string]interface{}
	References map[string][]*crossref.Ref
}

// Dematerialize is the inverse of Materialize. Beacon lists become
// references, phone numbers are expanded and geo coordinates typed. Dates
// stay ISO strings since the REST representation carries no type.
func Dematerialize(in map[string]interface{}) (*Dematerialized, error) {
	out := &Dematerialized{
		Properties: map[string]interface{}{},
		References: map[string][]*crossref.Ref{},
	}
	for name, value := range in {
		refs, ok, err := wireReferences(name, value)
		if err != nil {
			return nil, err
		}
		if ok {
			out.References[name] = refs
			continue
		}

		property, err := dematerializeValue(name, value)
		if err != nil {
			return nil, err
		}
		out.Properties[name] = property
	}
	return out, nil
}

// wireReferences reads a beacon list. Empty untyped lists are properties.
func wireReferences(path string, v interface{}) ([]*crossref.Ref, bool, error) {
	var singleRefs []*models.SingleRef
	switch typed := v.(type) {
	case models.MultipleRef:
		singleRefs = typed
	case []*models.SingleRef:
		singleRefs = typed
	case []interface{}:
		if len(typed) == 0 {
			return nil, false, nil
		}
		for _, entry := range typed {
			switch ref := entry.(type) {
			case *models.SingleRef:
				singleRefs = append(singleRefs, ref)
			case map[string]interface{}:
				beacon, ok := ref["beacon"].(string)
				if !ok {
					return nil, false, nil
				}
				singleRefs = append(singleRefs, &models.SingleRef{Beacon: strfmt.URI(beacon)})
			default:
				return nil, false, nil
			}
		}
	default:
		return nil, false, nil
	}

	out := make([]*crossref.Ref, len(singleRefs))
	for i, singleRef := range singleRefs {
		ref, err := crossref.ParseSingleRef(singleRef)
		if err != nil {
			return nil, true, errors.NewInvalidInput(elementPath(path, i), "%v", err)
		}
		out[i] = ref
	}
	return out, true, nil
}

func dematerializeValue(path string, v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case *models.PhoneNumber:
		return expandPhoneNumber(path, typed)
	case *models.GeoCoordinates:
		return &models.GeoCoordinates{Latitude: copyFloat32(typed.Latitude), Longitude: copyFloat32(typed.Longitude)}, nil
	case map[string]interface{}:
		if isPhoneNumber(typed) {
			return phoneNumberFromMap(path, typed)
		}
		if isGeoCoordinates(typed) {
			return geoCoordinatesFromMap(path, typed)
		}
		out := make(map[string]interface{}, len(typed))
		for name, value := range typed {
			nested, err := dematerializeValue(join(path, name), value)
			if err != nil {
				return nil, err
			}
			out[name] = nested
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, element := range typed {
			decoded, err := dematerializeValue(elementPath(path, i), element)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	case []string:
		return append([]string{}, typed...), nil
	case []bool:
		return append([]bool{}, typed...), nil
	case []int:
		return append([]int{}, typed...), nil
	case []int32:
		return append([]int32{}, typed...), nil
	case []int64:
		return append([]int64{}, typed...), nil
	case []float32:
		return append([]float32{}, typed...), nil
	case []float64:
		return append([]float64{}, typed...), nil
	case time.Time:
		return typed, nil
	}
	if isPrimitive(v) {
		return v, nil
	}
	return nil, errors.NewInvalidInput(path, "unsupported property value of type %T", v)
}

// expandPhoneNumber parses phone numbers that only carry their input.
func expandPhoneNumber(path string, p *models.PhoneNumber) (*models.PhoneNumber, error) {
	if p.InternationalFormatted != "" || p.Input == "" {
		copied := *p
		return &copied, nil
	}
	parsed, err := ParsePhoneNumber(p.Input, p.DefaultCountry)
	if err != nil {
		return nil, errors.NewInvalidInput(path, "%v", err)
	}
	return parsed, nil
}

func phoneNumberFromMap(path string, raw map[string]interface{}) (*models.PhoneNumber, error) {
	out := &models.PhoneNumber{}
	input, ok := raw["input"]
	if !ok {
		input = raw["number"]
	}
	var err error
	if out.Input, err = stringField(path, "input", input); err != nil {
		return nil, err
	}
	if out.DefaultCountry, err = stringField(path, "defaultCountry", raw["defaultCountry"]); err != nil {
		return nil, err
	}
	if out.InternationalFormatted, err = stringField(path, "internationalFormatted", raw["internationalFormatted"]); err != nil {
		return nil, err
	}
	if out.NationalFormatted, err = stringField(path, "nationalFormatted", raw["nationalFormatted"]); err != nil {
		return nil, err
	}
	if out.CountryCode, err = uintField(path, "countryCode", raw["countryCode"]); err != nil {
		return nil, err
	}
	if out.National, err = uintField(path, "national", raw["national"]); err != nil {
		return nil, err
	}
	if valid, ok := raw["valid"].(bool); ok {
		out.Valid = valid
	}
	return expandPhoneNumber(path, out)
}

func stringField(path, name string, v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewInvalidInput(join(path, name), "must be a string, got %T", v)
	}
	return s, nil
}

func uintField(path, name string, v interface{}) (uint64, error) {
	switch typed := v.(type) {
	case nil:
		return 0, nil
	case uint64:
		return typed, nil
	case int:
		return uint64(typed), nil
	case int64:
		return uint64(typed), nil
	case float64:
		return uint64(typed), nil
	case json.Number:
		asInt, err := typed.Int64()
		if err != nil {
			return 0, errors.NewInvalidInput(join(path, name), "%v", err)
		}
		return uint64(asInt), nil
	}
	return 0, errors.NewInvalidInput(join(path, name), "must be a number, got %T", v)
}
