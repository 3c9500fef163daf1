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
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/schema"
	"github.com/weaviate/weaviate/entities/models"
)

// GeoCoordinates is the plain input form of a geoCoordinates property.
type GeoCoordinates struct {
	Latitude  float32
	Longitude float32
}

// PhoneNumberInput is the plain input form of a phoneNumber property. The
// server parses Number, DefaultCountry is needed for numbers without a
// country prefix.
type PhoneNumberInput struct {
	Number         string
	DefaultCountry string
}

// Materializer turns user supplied property values into the REST
// properties of an object. References are rendered as beacons using the
// host and default collection of Beacons.
type Materializer struct {
	Beacons crossref.Builder
}

func NewMaterializer(beacons crossref.Builder) *Materializer {
	return &Materializer{Beacons: beacons}
}

// Materialize renders properties and references into one property map.
// References may be given as ids, lists of ids, *crossref.Reference values
// or maps with targetCollection and uuids.
func (m *Materializer) Materialize(properties, references map[string]interface{}) (map[string]interface{}, error) {
	out, err := m.properties("", properties)
	if err != nil {
		return nil, err
	}

	for name, designator := range references {
		if _, ok := out[name]; ok {
			return nil, errors.NewInvalidInput(name, "is given both as a property and as a reference")
		}
		refs, ok, err := referenceDesignator(name, designator)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewInvalidInput(name,
				"unsupported reference of type %T", designator)
		}
		out[name] = m.Beacons.Beacons(refs...)
	}
	return out, nil
}

func (m *Materializer) properties(parent string, in map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(in))
	for name, value := range in {
		rendered, err := m.value(join(parent, name), value)
		if err != nil {
			return nil, err
		}
		out[name] = rendered
	}
	return out, nil
}

type valueShape struct {
	name   string
	match  func(interface{}) bool
	render func(m *Materializer, path string, v interface{}) (interface{}, error)
}

// valueShapes is the classification chain, the first match wins. Arrays are
// checked before objects, phone numbers before geo coordinates and both
// before nested objects since all three can be plain maps.
var valueShapes []valueShape

func init() {
	// renderArray classifies elements, a var initializer would be a cycle
	valueShapes = []valueShape{
		{name: "null", match: isNull, render: renderNull},
		{name: "reference", match: isReference, render: (*Materializer).renderReference},
		{name: "date", match: isDate, render: renderDate},
		{name: "primitive", match: isPrimitive, render: renderPrimitive},
		{name: "array", match: isArray, render: (*Materializer).renderArray},
		{name: "phoneNumber", match: isPhoneNumber, render: renderPhoneNumber},
		{name: "geoCoordinates", match: isGeoCoordinates, render: renderGeoCoordinates},
		{name: "object", match: isNested, render: (*Materializer).renderNested},
	}
}

func classify(v interface{}) (valueShape, bool) {
	for _, shape := range valueShapes {
		if shape.match(v) {
			return shape, true
		}
	}
	return valueShape{}, false
}

func (m *Materializer) value(path string, v interface{}) (interface{}, error) {
	shape, ok := classify(v)
	if !ok {
		return nil, errors.NewInvalidInput(path, "unsupported property value of type %T", v)
	}
	return shape.render(m, path, v)
}

func isNull(v interface{}) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case *time.Time:
		return typed == nil
	case *models.GeoCoordinates:
		return typed == nil
	case *models.PhoneNumber:
		return typed == nil
	case *GeoCoordinates:
		return typed == nil
	case *PhoneNumberInput:
		return typed == nil
	case *crossref.Reference:
		return typed == nil
	}
	return false
}

func renderNull(*Materializer, string, interface{}) (interface{}, error) {
	return nil, nil
}

func isReference(v interface{}) bool {
	switch v.(type) {
	case *crossref.Reference, crossref.Reference, []*crossref.Reference:
		return true
	}
	return false
}

func (m *Materializer) renderReference(path string, v interface{}) (interface{}, error) {
	refs, _, err := referenceDesignator(path, v)
	if err != nil {
		return nil, err
	}
	return m.Beacons.Beacons(refs...), nil
}

func isDate(v interface{}) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

func renderDate(_ *Materializer, _ string, v interface{}) (interface{}, error) {
	if ptr, ok := v.(*time.Time); ok {
		return schema.FormatDate(*ptr), nil
	}
	return schema.FormatDate(v.(time.Time)), nil
}

func isPrimitive(v interface{}) bool {
	switch v.(type) {
	case string, strfmt.UUID, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func renderPrimitive(_ *Materializer, _ string, v interface{}) (interface{}, error) {
	if id, ok := v.(strfmt.UUID); ok {
		return id.String(), nil
	}
	return v, nil
}

func isArray(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []map[string]interface{},
		[]string, []strfmt.UUID, []bool, []int, []int32, []int64, []float32, []float64,
		[]time.Time:
		return true
	}
	return false
}

// renderArray classifies an array by its first element. Empty arrays are
// rendered as empty arrays without inferring a type.
func (m *Materializer) renderArray(path string, v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case []string:
		return copyOrEmpty(typed), nil
	case []bool:
		return copyOrEmpty(typed), nil
	case []int:
		return copyOrEmpty(typed), nil
	case []int32:
		return copyOrEmpty(typed), nil
	case []int64:
		return copyOrEmpty(typed), nil
	case []float32:
		return copyOrEmpty(typed), nil
	case []float64:
		return copyOrEmpty(typed), nil
	case []strfmt.UUID:
		if len(typed) == 0 {
			return []interface{}{}, nil
		}
		out := make([]string, len(typed))
		for i := range typed {
			out[i] = typed[i].String()
		}
		return out, nil
	case []time.Time:
		if len(typed) == 0 {
			return []interface{}{}, nil
		}
		out := make([]string, len(typed))
		for i := range typed {
			out[i] = schema.FormatDate(typed[i])
		}
		return out, nil
	case []map[string]interface{}:
		elements := make([]interface{}, len(typed))
		for i := range typed {
			elements[i] = typed[i]
		}
		return m.renderElements(path, elements)
	case []interface{}:
		return m.renderElements(path, typed)
	}
	return nil, errors.NewInvalidInput(path, "unsupported array of type %T", v)
}

func (m *Materializer) renderElements(path string, elements []interface{}) (interface{}, error) {
	out := make([]interface{}, len(elements))
	if len(elements) == 0 {
		return out, nil
	}

	first, ok := classify(elements[0])
	if !ok {
		return nil, errors.NewInvalidInput(elementPath(path, 0),
			"unsupported array element of type %T", elements[0])
	}
	switch first.name {
	case "null", "array", "reference":
		return nil, errors.NewInvalidInput(elementPath(path, 0),
			"arrays of %s values are not supported", first.name)
	}

	for i, element := range elements {
		if !first.match(element) {
			return nil, errors.NewInvalidInput(elementPath(path, i),
				"expected a %s value like the first element, got %T", first.name, element)
		}
		rendered, err := first.render(m, elementPath(path, i), element)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

func isPhoneNumber(v interface{}) bool {
	switch typed := v.(type) {
	case *models.PhoneNumber, models.PhoneNumber, *PhoneNumberInput, PhoneNumberInput:
		return true
	case map[string]interface{}:
		_, hasNumber := typed["number"]
		_, hasInput := typed["input"]
		return hasNumber || hasInput
	}
	return false
}

// renderPhoneNumber renders the input form the server parses.
func renderPhoneNumber(_ *Materializer, path string, v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case *models.PhoneNumber:
		return &models.PhoneNumber{Input: typed.Input, DefaultCountry: typed.DefaultCountry}, nil
	case models.PhoneNumber:
		return &models.PhoneNumber{Input: typed.Input, DefaultCountry: typed.DefaultCountry}, nil
	case *PhoneNumberInput:
		return &models.PhoneNumber{Input: typed.Number, DefaultCountry: typed.DefaultCountry}, nil
	case PhoneNumberInput:
		return &models.PhoneNumber{Input: typed.Number, DefaultCountry: typed.DefaultCountry}, nil
	}

	raw := v.(map[string]interface{})
	number, ok := raw["number"]
	if !ok {
		number = raw["input"]
	}
	input, ok := number.(string)
	if !ok {
		return nil, errors.NewInvalidInput(path, "phone number must be a string, got %T", number)
	}
	out := &models.PhoneNumber{Input: input}
	if country, ok := raw["defaultCountry"]; ok {
		if out.DefaultCountry, ok = country.(string); !ok {
			return nil, errors.NewInvalidInput(path, "defaultCountry must be a string, got %T", country)
		}
	}
	return out, nil
}

func isGeoCoordinates(v interface{}) bool {
	switch typed := v.(type) {
	case *models.GeoCoordinates, models.GeoCoordinates, *GeoCoordinates, GeoCoordinates:
		return true
	case map[string]interface{}:
		_, hasLatitude := typed["latitude"]
		_, hasLongitude := typed["longitude"]
		return hasLatitude && hasLongitude
	}
	return false
}

func renderGeoCoordinates(_ *Materializer, path string, v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case *models.GeoCoordinates:
		return &models.GeoCoordinates{Latitude: copyFloat32(typed.Latitude), Longitude: copyFloat32(typed.Longitude)}, nil
	case models.GeoCoordinates:
		return &models.GeoCoordinates{Latitude: copyFloat32(typed.Latitude), Longitude: copyFloat32(typed.Longitude)}, nil
	case *GeoCoordinates:
		return &models.GeoCoordinates{Latitude: swag.Float32(typed.Latitude), Longitude: swag.Float32(typed.Longitude)}, nil
	case GeoCoordinates:
		return &models.GeoCoordinates{Latitude: swag.Float32(typed.Latitude), Longitude: swag.Float32(typed.Longitude)}, nil
	}
	return geoCoordinatesFromMap(path, v.(map[string]interface{}))
}

func geoCoordinatesFromMap(path string, raw map[string]interface{}) (*models.GeoCoordinates, error) {
	lat, err := parseCoordinate(raw["latitude"])
	if err != nil {
		return nil, errors.NewInvalidInput(path, "invalid latitude: %v", err)
	}
	lon, err := parseCoordinate(raw["longitude"])
	if err != nil {
		return nil, errors.NewInvalidInput(path, "invalid longitude: %v", err)
	}
	return &models.GeoCoordinates{Latitude: swag.Float32(lat), Longitude: swag.Float32(lon)}, nil
}

func parseCoordinate(raw interface{}) (float32, error) {
	switch v := raw.(type) {
	case json.Number:
		asFloat, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("cannot interpret as float: %s", err)
		}
		return float32(asFloat), nil
	case float64:
		return float32(v), nil
	case float32:
		return v, nil
	case int:
		return float32(v), nil
	case *float32:
		if v != nil {
			return *v, nil
		}
	}
	return 0, fmt.Errorf("must be json.Number or float, but got %T", raw)
}

func isNested(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

func (m *Materializer) renderNested(path string, v interface{}) (interface{}, error) {
	return m.properties(path, v.(map[string]interface{}))
}

// referenceDesignator expands the accepted reference forms. ok is false if
// v is none of them.
func referenceDesignator(path string, v interface{}) ([]*crossref.Reference, bool, error) {
	switch typed := v.(type) {
	case string:
		return []*crossref.Reference{crossref.ReferenceTo(typed)}, true, nil
	case strfmt.UUID:
		return []*crossref.Reference{crossref.ReferenceTo(typed.String())}, true, nil
	case []string:
		return []*crossref.Reference{crossref.ReferenceTo(typed...)}, true, nil
	case []strfmt.UUID:
		return []*crossref.Reference{{UUIDs: append([]strfmt.UUID{}, typed...)}}, true, nil
	case *crossref.Reference:
		if typed == nil {
			return nil, true, nil
		}
		return []*crossref.Reference{typed}, true, nil
	case crossref.Reference:
		return []*crossref.Reference{&typed}, true, nil
	case []*crossref.Reference:
		return append([]*crossref.Reference{}, typed...), true, nil
	case map[string]interface{}:
		ref, err := referenceFromMap(path, typed)
		if err != nil {
			return nil, true, err
		}
		return []*crossref.Reference{ref}, true, nil
	case []interface{}:
		var out []*crossref.Reference
		for i, entry := range typed {
			refs, ok, err := referenceDesignator(elementPath(path, i), entry)
			if err != nil {
				return nil, true, err
			}
			if !ok {
				return nil, true, errors.NewInvalidInput(elementPath(path, i),
					"unsupported reference of type %T", entry)
			}
			out = append(out, refs...)
		}
		return out, true, nil
	}
	return nil, false, nil
}

func referenceFromMap(path string, raw map[string]interface{}) (*crossref.Reference, error) {
	targetCollection, _ := raw["targetCollection"].(string)
	if targetCollection == "" {
		return nil, errors.NewInvalidInput(path, "reference needs a targetCollection")
	}

	var ids []string
	switch typed := raw["uuids"].(type) {
	case string:
		ids = []string{typed}
	case []string:
		ids = typed
	case []interface{}:
		for i, id := range typed {
			asString, ok := id.(string)
			if !ok {
				return nil, errors.NewInvalidInput(elementPath(path+".uuids", i),
					"uuid must be a string, got %T", id)
			}
			ids = append(ids, asString)
		}
	default:
		return nil, errors.NewInvalidInput(path, "reference needs uuids")
	}
	return crossref.ReferenceToMultiTarget(targetCollection, ids...), nil
}

func copyOrEmpty[T any](in []T) interface{} {
	if len(in) == 0 {
		return []interface{}{}
	}
	return append([]T{}, in...)
}

func copyFloat32(in *float32) *float32 {
	if in == nil {
		return nil
	}
	return swag.Float32(*in)
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func elementPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
