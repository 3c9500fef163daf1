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
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"

	entErrors "github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// ParseGetResponse reads the reply of a Get query on className. The errors
// array of the reply is returned as a GraphQLResponseError, even when data
// is present as well.
func ParseGetResponse(body []byte, className string) (*searchparams.Result, error) {
	messages, err := responseErrors(body)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return nil, entErrors.NewGraphQLResponse(className, messages)
	}

	objects, dataType, _, err := jsonparser.Get(body, "data", "Get", className)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return &searchparams.Result{}, nil
		}
		return nil, errors.Wrap(err, "parse graphql reply")
	}
	switch dataType {
	case jsonparser.Null:
		return &searchparams.Result{}, nil
	case jsonparser.Array:
	default:
		return nil, errors.Errorf("parse graphql reply: Get.%s is a %s, not an array", className, dataType)
	}

	result := &searchparams.Result{}
	var parseErr error
	i := 0
	_, err = jsonparser.ArrayEach(objects, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		defer func() { i++ }()
		if parseErr != nil {
			return
		}
		if dataType != jsonparser.Object {
			parseErr = errors.Errorf("result %d: expected an object, got %s", i, dataType)
			return
		}
		object, grouped, err := parseObject(value, className)
		if err != nil {
			parseErr = errors.Wrapf(err, "result %d", i)
			return
		}
		if grouped != nil && result.GenerativeGrouped == nil {
			result.GenerativeGrouped = grouped
		}
		result.Objects = append(result.Objects, object)
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse graphql reply")
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return result, nil
}

func responseErrors(body []byte) ([]string, error) {
	list, dataType, _, err := jsonparser.Get(body, "errors")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "parse graphql errors")
	}
	if dataType != jsonparser.Array {
		return nil, nil
	}

	var messages []string
	_, err = jsonparser.ArrayEach(list, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		msg, err := jsonparser.GetString(value, "message")
		if err != nil {
			msg = string(value)
		}
		messages = append(messages, msg)
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse graphql errors")
	}
	return messages, nil
}

func parseObject(body []byte, className string) (searchparams.Object, *string, error) {
	object := searchparams.Object{
		Collection: className,
		Properties: map[string]interface{}{},
	}
	var grouped *string
	err := jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name := string(key)
		if name == "_additional" {
			if dataType == jsonparser.Null {
				return nil
			}
			var err error
			grouped, err = parseAdditional(value, &object)
			return errors.Wrap(err, "_additional")
		}
		decoded, err := decodeValue(value, dataType)
		if err != nil {
			return errors.Wrapf(err, "property %q", name)
		}
		object.Properties[name] = decoded
		return nil
	})
	return object, grouped, err
}

// decodeValue keeps numbers as json.Number so ints and floats stay apart.
func decodeValue(value []byte, dataType jsonparser.ValueType) (interface{}, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		return json.Number(value), nil
	}
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseAdditional(body []byte, object *searchparams.Object) (*string, error) {
	var grouped *string
	err := jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType == jsonparser.Null {
			return nil
		}
		meta := &object.Metadata
		switch name := string(key); name {
		case "id":
			id, err := jsonparser.ParseString(value)
			if err != nil {
				return errors.Wrap(err, "id")
			}
			meta.UUID = strfmt.UUID(id)
		case "distance", "certainty", "score":
			f, err := parseFloat32(value, dataType)
			if err != nil {
				return errors.Wrap(err, name)
			}
			switch name {
			case "distance":
				meta.Distance = &f
			case "certainty":
				meta.Certainty = &f
			default:
				meta.Score = &f
			}
		case "explainScore":
			explain := string(value)
			if dataType == jsonparser.String {
				explain, _ = jsonparser.ParseString(value)
			}
			meta.ExplainScore = &explain
		case "creationTimeUnix", "lastUpdateTimeUnix":
			t, err := parseUnixMilli(value, dataType)
			if err != nil {
				return errors.Wrap(err, name)
			}
			if name == "creationTimeUnix" {
				meta.CreationTime = &t
			} else {
				meta.UpdateTime = &t
			}
		case "isConsistent":
			consistent, err := jsonparser.ParseBoolean(value)
			if err != nil {
				return errors.Wrap(err, name)
			}
			meta.IsConsistent = &consistent
		case "vector":
			vector, err := parseVector(value)
			if err != nil {
				return errors.Wrap(err, name)
			}
			object.Vector = vector
		case "vectors":
			vectors := map[string][]float32{}
			err := jsonparser.ObjectEach(value, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
				vector, err := parseVector(value)
				if err != nil {
					return errors.Wrapf(err, "%s", key)
				}
				vectors[string(key)] = vector
				return nil
			})
			if err != nil {
				return errors.Wrap(err, name)
			}
			object.Vectors = vectors
		case "generate":
			var err error
			grouped, err = parseGenerate(value, object)
			return errors.Wrap(err, name)
		}
		return nil
	})
	return grouped, err
}

func parseGenerate(body []byte, object *searchparams.Object) (*string, error) {
	if msg, err := jsonparser.GetString(body, "error"); err == nil && msg != "" {
		return nil, errors.Errorf("generation failed: %s", msg)
	}
	if single, err := jsonparser.GetString(body, "singleResult"); err == nil {
		object.Generated = &single
	}
	if grouped, err := jsonparser.GetString(body, "groupedResult"); err == nil {
		return &grouped, nil
	}
	return nil, nil
}

// parseFloat32 accepts numbers and numeric strings, score comes as a string.
func parseFloat32(value []byte, dataType jsonparser.ValueType) (float32, error) {
	raw := string(value)
	if dataType == jsonparser.String {
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return 0, err
		}
		raw = s
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseUnixMilli(value []byte, dataType jsonparser.ValueType) (time.Time, error) {
	raw := string(value)
	if dataType == jsonparser.String {
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return time.Time{}, err
		}
		raw = s
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}

func parseVector(value []byte) ([]float32, error) {
	vector := []float32{}
	var parseErr error
	_, err := jsonparser.ArrayEach(value, func(entry []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if parseErr != nil {
			return
		}
		f, err := parseFloat32(entry, dataType)
		if err != nil {
			parseErr = err
			return
		}
		vector = append(vector, f)
	})
	if err != nil {
		return nil, err
	}
	return vector, parseErr
}
