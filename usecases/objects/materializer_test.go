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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
	entErrors "github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate/entities/models"
)

func TestMaterialize(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	geo := &models.GeoCoordinates{Latitude: swag.Float32(52.5), Longitude: swag.Float32(4.25)}

	tests := []struct {
		name       string
		builder    crossref.Builder
		properties map[string]interface{}
		references map[string]interface{}
		expected   map[string]interface{}
	}{
		{
			name: "primitives",
			properties: map[string]interface{}{
				"title": "rain", "count": 3, "price": 1.5, "ok": true,
				"id":      strfmt.UUID("00000000-0000-0000-0000-000000000001"),
				"nothing": nil,
			},
			expected: map[string]interface{}{
				"title": "rain", "count": 3, "price": 1.5, "ok": true,
				"id":      "00000000-0000-0000-0000-000000000001",
				"nothing": nil,
			},
		},
		{
			name: "dates are iso strings everywhere",
			properties: map[string]interface{}{
				"published": date,
				"pointer":   &date,
				"dates":     []time.Time{date},
				"untyped":   []interface{}{date, date},
			},
			expected: map[string]interface{}{
				"published": "2024-01-02T03:04:05.000Z",
				"pointer":   "2024-01-02T03:04:05.000Z",
				"dates":     []string{"2024-01-02T03:04:05.000Z"},
				"untyped":   []interface{}{"2024-01-02T03:04:05.000Z", "2024-01-02T03:04:05.000Z"},
			},
		},
		{
			name: "arrays",
			properties: map[string]interface{}{
				"tags":   []string{"a", "b"},
				"scores": []float64{0.5},
				"empty":  []string{},
				"none":   []interface{}{},
				"mixed":  []interface{}{1, 2.5},
			},
			expected: map[string]interface{}{
				"tags":   []string{"a", "b"},
				"scores": []float64{0.5},
				"empty":  []interface{}{},
				"none":   []interface{}{},
				"mixed":  []interface{}{1, 2.5},
			},
		},
		{
			name: "phone numbers, geo coordinates and nested objects",
			properties: map[string]interface{}{
				"phone":    map[string]interface{}{"number": "+311234567", "defaultCountry": "NL"},
				"mobile":   PhoneNumberInput{Number: "0171 1234567", DefaultCountry: "DE"},
				"location": map[string]interface{}{"latitude": 52.5, "longitude": 4.25},
				"office":   GeoCoordinates{Latitude: 52.5, Longitude: 4.25},
				"address": map[string]interface{}{
					"city":  "Amsterdam",
					"since": date,
					"geo":   geo,
				},
				"stops": []map[string]interface{}{{"name": "a"}, {"name": "b"}},
			},
			expected: map[string]interface{}{
				"phone":    &models.PhoneNumber{Input: "+311234567", DefaultCountry: "NL"},
				"mobile":   &models.PhoneNumber{Input: "0171 1234567", DefaultCountry: "DE"},
				"location": geo,
				"office":   geo,
				"address": map[string]interface{}{
					"city":  "Amsterdam",
					"since": "2024-01-02T03:04:05.000Z",
					"geo":   geo,
				},
				"stops": []interface{}{
					map[string]interface{}{"name": "a"},
					map[string]interface{}{"name": "b"},
				},
			},
		},
		{
			name: "reference beacons",
			references: map[string]interface{}{
				"writtenBy": crossref.ReferenceTo("13"),
				"cites":     crossref.ReferenceToMultiTarget("G", "16"),
			},
			expected: map[string]interface{}{
				"writtenBy": models.MultipleRef{{Beacon: "weaviate://localhost/13"}},
				"cites":     models.MultipleRef{{Beacon: "weaviate://localhost/G/16"}},
			},
		},
		{
			name: "designators expand in declaration then id order",
			references: map[string]interface{}{
				"refs": []*crossref.Reference{
					crossref.ReferenceTo("1", "2"),
					crossref.ReferenceToMultiTarget("G", "3"),
				},
				"ids":  []string{"4", "5"},
				"id":   "6",
				"maps": []interface{}{"7", map[string]interface{}{"targetCollection": "G", "uuids": []interface{}{"8"}}},
			},
			expected: map[string]interface{}{
				"refs": models.MultipleRef{
					{Beacon: "weaviate://localhost/1"},
					{Beacon: "weaviate://localhost/2"},
					{Beacon: "weaviate://localhost/G/3"},
				},
				"ids":  models.MultipleRef{{Beacon: "weaviate://localhost/4"}, {Beacon: "weaviate://localhost/5"}},
				"id":   models.MultipleRef{{Beacon: "weaviate://localhost/6"}},
				"maps": models.MultipleRef{{Beacon: "weaviate://localhost/7"}, {Beacon: "weaviate://localhost/G/8"}},
			},
		},
		{
			name:    "explicit host and default collection",
			builder: crossref.NewBuilder("remote-peer", "Article"),
			properties: map[string]interface{}{
				"related": &crossref.Reference{TargetCollection: "Article", UUIDs: []strfmt.UUID{"1"}},
			},
			references: map[string]interface{}{
				"other": &crossref.Reference{TargetCollection: "Person", UUIDs: []strfmt.UUID{"2"}},
			},
			expected: map[string]interface{}{
				"related": models.MultipleRef{{Beacon: "weaviate://remote-peer/1"}},
				"other":   models.MultipleRef{{Beacon: "weaviate://remote-peer/Person/2"}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := NewMaterializer(test.builder).Materialize(test.properties, test.references)
			require.Nil(t, err)
			assert.Equal(t, test.expected, out)
		})
	}
}

func TestMaterializeErrors(t *testing.T) {
	tests := []struct {
		name        string
		properties  map[string]interface{}
		references  map[string]interface{}
		expectedErr string
	}{
		{
			name:        "unknown shape",
			properties:  map[string]interface{}{"bad": struct{}{}},
			expectedErr: `invalid input for "bad": unsupported property value of type struct {}`,
		},
		{
			name:        "unknown shape in a nested object",
			properties:  map[string]interface{}{"address": map[string]interface{}{"x": struct{}{}}},
			expectedErr: `invalid input for "address.x": unsupported property value of type struct {}`,
		},
		{
			name:        "array elements differ from the first",
			properties:  map[string]interface{}{"tags": []interface{}{"a", map[string]interface{}{"x": 1}}},
			expectedErr: `invalid input for "tags[1]": expected a primitive value like the first element, got map[string]interface {}`,
		},
		{
			name:        "nested arrays",
			properties:  map[string]interface{}{"matrix": []interface{}{[]string{"a"}}},
			expectedErr: `invalid input for "matrix[0]": arrays of array values are not supported`,
		},
		{
			name:        "phone number is not a string",
			properties:  map[string]interface{}{"phone": map[string]interface{}{"number": 123}},
			expectedErr: `invalid input for "phone": phone number must be a string, got int`,
		},
		{
			name:        "geo coordinate is not a number",
			properties:  map[string]interface{}{"location": map[string]interface{}{"latitude": "north", "longitude": 1.0}},
			expectedErr: `invalid input for "location": invalid latitude: must be json.Number or float, but got string`,
		},
		{
			name:        "unknown reference",
			references:  map[string]interface{}{"writtenBy": 5},
			expectedErr: `invalid input for "writtenBy": unsupported reference of type int`,
		},
		{
			name:        "reference map without target collection",
			references:  map[string]interface{}{"writtenBy": map[string]interface{}{"uuids": "1"}},
			expectedErr: `invalid input for "writtenBy": reference needs a targetCollection`,
		},
		{
			name:        "property and reference share a name",
			properties:  map[string]interface{}{"writtenBy": "Ada"},
			references:  map[string]interface{}{"writtenBy": "1"},
			expectedErr: `invalid input for "writtenBy": is given both as a property and as a reference`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewMaterializer(crossref.Builder{}).Materialize(test.properties, test.references)
			require.NotNil(t, err)
			assert.EqualError(t, err, test.expectedErr)

			var invalid *entErrors.InvalidInputError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestMaterializeDoesNotAliasInput(t *testing.T) {
	tags := []string{"a", "b"}
	out, err := NewMaterializer(crossref.Builder{}).Materialize(map[string]interface{}{"tags": tags}, nil)
	require.Nil(t, err)

	tags[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, out["tags"])
}

func TestDematerialize(t *testing.T) {
	body := `{
		"title": "rain",
		"wordCount": 42,
		"tags": [],
		"writtenBy": [{"beacon": "weaviate://localhost/Person/00000000-0000-0000-0000-000000000001"}],
		"phone": {
			"input": "+311234567",
			"internationalFormatted": "+31 1234567",
			"countryCode": 31,
			"national": 1234567,
			"nationalFormatted": "1234567",
			"valid": false
		},
		"location": {"latitude": 52.5, "longitude": 4.25},
		"address": {"city": "Amsterdam", "stops": [{"name": "a"}]}
	}`
	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()
	var wire map[string]interface{}
	require.Nil(t, decoder.Decode(&wire))

	out, err := Dematerialize(wire)
	require.Nil(t, err)

	assert.Equal(t, map[string]interface{}{
		"title":     "rain",
		"wordCount": json.Number("42"),
		"tags":      []interface{}{},
		"phone": &models.PhoneNumber{
			Input:                  "+311234567",
			InternationalFormatted: "+31 1234567",
			CountryCode:            31,
			National:               1234567,
			NationalFormatted:      "1234567",
		},
		"location": &models.GeoCoordinates{Latitude: swag.Float32(52.5), Longitude: swag.Float32(4.25)},
		"address": map[string]interface{}{
			"city":  "Amsterdam",
			"stops": []interface{}{map[string]interface{}{"name": "a"}},
		},
	}, out.Properties)
	assert.Equal(t, map[string][]*crossref.Ref{
		"writtenBy": {{PeerName: "localhost", Class: "Person", TargetID: "00000000-0000-0000-0000-000000000001"}},
	}, out.References)

	t.Run("invalid beacon", func(t *testing.T) {
		_, err := Dematerialize(map[string]interface{}{
			"writtenBy": models.MultipleRef{{Beacon: "http://localhost/1"}},
		})
		assert.EqualError(t, err,
			`invalid input for "writtenBy[0]": invalid cref URI: scheme must be "weaviate", got "http"`)
	})
}

func TestMaterializeRoundTrip(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	geo := &models.GeoCoordinates{Latitude: swag.Float32(52.5), Longitude: swag.Float32(4.25)}
	properties := map[string]interface{}{
		"title":    "rain",
		"count":    3,
		"tags":     []string{"a"},
		"location": geo,
		"address":  map[string]interface{}{"city": "Amsterdam"},
		"created":  date,
	}

	wire, err := NewMaterializer(crossref.Builder{}).Materialize(properties,
		map[string]interface{}{"writtenBy": crossref.ReferenceToMultiTarget("Person", "1")})
	require.Nil(t, err)

	out, err := Dematerialize(wire)
	require.Nil(t, err)

	expected := map[string]interface{}{}
	for k, v := range properties {
		expected[k] = v
	}
	expected["created"] = "2024-01-02T03:04:05.000Z"
	assert.Equal(t, expected, out.Properties)
	assert.Equal(t, []*crossref.Ref{{PeerName: "localhost", Class: "Person", TargetID: "1"}},
		out.References["writtenBy"])

	t.Run("phone numbers come back expanded", func(t *testing.T) {
		wire, err := NewMaterializer(crossref.Builder{}).Materialize(map[string]interface{}{
			"phone": PhoneNumberInput{Number: "+311234567"},
		}, nil)
		require.Nil(t, err)

		out, err := Dematerialize(wire)
		require.Nil(t, err)

		phone := out.Properties["phone"].(*models.PhoneNumber)
		assert.Equal(t, "+311234567", phone.Input)
		assert.Equal(t, uint64(31), phone.CountryCode)
		assert.Equal(t, uint64(1234567), phone.National)
		assert.Equal(t, "+31 1234567", phone.InternationalFormatted)
	})
}

func TestParsePhoneNumber(t *testing.T) {
	t.Run("national number with default country", func(t *testing.T) {
		phone, err := ParsePhoneNumber("0171 1234567", "DE")
		require.Nil(t, err)

		assert.Equal(t, uint64(49), phone.CountryCode)
		assert.Equal(t, uint64(1711234567), phone.National)
		assert.Equal(t, "+49 171 1234567", phone.InternationalFormatted)
		assert.True(t, phone.Valid)
		assert.Equal(t, "0171 1234567", phone.Input)
		assert.Equal(t, "DE", phone.DefaultCountry)
	})

	t.Run("no country", func(t *testing.T) {
		_, err := ParsePhoneNumber("12345", "")
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), `invalid phone number "12345"`)
	})
}

func TestGenerateUUID5(t *testing.T) {
	assert.Equal(t, strfmt.UUID("886313e1-3b8a-5372-9b90-0c9aee199e5d"), GenerateUUID5("python.org", ""))
	assert.Equal(t, GenerateUUID5("python.org", ""), GenerateUUID5("org", "python."))
	assert.NotEqual(t, GenerateUUID5("a", ""), GenerateUUID5("b", ""))
}
