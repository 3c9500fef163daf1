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

package v1

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/weaviate/weaviate-client-core/entities/errors"
)

// EncodeVector writes v as little endian float32 values without padding.
func EncodeVector(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// DecodeVector is the inverse of EncodeVector.
func DecodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errors.NewEncoding("vector", "byte length %d is not a multiple of 4", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

// EncodeMultiVector writes the inner dimension as a little endian uint16
// followed by every vector as EncodeVector does. All vectors must share the
// dimension of the first.
func EncodeMultiVector(vs [][]float32) []byte {
	if len(vs) == 0 || len(vs[0]) == 0 {
		return []byte{}
	}
	out := make([]byte, 2, 2+len(vs)*len(vs[0])*4)
	binary.LittleEndian.PutUint16(out, uint16(len(vs[0])))
	for _, v := range vs {
		out = append(out, EncodeVector(v)...)
	}
	return out
}

// DecodeMultiVector is the inverse of EncodeMultiVector.
func DecodeMultiVector(b []byte) ([][]float32, error) {
	if len(b) == 0 {
		return [][]float32{}, nil
	}
	if len(b) < 2 {
		return nil, errors.NewEncoding("multi vector", "byte length %d is too short for a dimension header", len(b))
	}
	dim := int(binary.LittleEndian.Uint16(b[:2]))
	if dim == 0 {
		return nil, errors.NewEncoding("multi vector", "dimension cannot be 0")
	}
	b = b[2:]
	if len(b)%(dim*4) != 0 {
		return nil, errors.NewEncoding("multi vector",
			"byte length %d is not a multiple of %d dimensions", len(b), dim)
	}
	out := make([][]float32, len(b)/(dim*4))
	for i := range out {
		v, err := DecodeVector(b[i*dim*4 : (i+1)*dim*4])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeFloat64s(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, errors.NewEncoding("number list", "byte length %d is not a multiple of 8", len(b))
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

func decodeInt64s(b []byte) ([]int64, error) {
	if len(b)%8 != 0 {
		return nil, errors.NewEncoding("int list", "byte length %d is not a multiple of 8", len(b))
	}
	out := make([]int64, len(b)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

// VectorFromInterface converts an untyped vector, as decoded from JSON or
// YAML, into a float32 vector.
func VectorFromInterface(in interface{}) ([]float32, error) {
	switch typed := in.(type) {
	case []float32:
		return append([]float32{}, typed...), nil
	case []float64:
		out := make([]float32, len(typed))
		for i := range typed {
			out[i] = float32(typed[i])
		}
		return out, nil
	case []interface{}:
		out := make([]float32, len(typed))
		for i, entry := range typed {
			f, ok := toFloat32(entry)
			if !ok {
				return nil, errors.NewEncoding("vector",
					"entry %d is not numeric: %v (%T)", i, entry, entry)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, errors.NewEncoding("vector", "expected a list of numbers, got %T", in)
	}
}

func toFloat32(in interface{}) (float32, bool) {
	switch typed := in.(type) {
	case float32:
		return typed, true
	case float64:
		return float32(typed), true
	case int:
		return float32(typed), true
	case int64:
		return float32(typed), true
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return float32(f), true
	default:
		return 0, false
	}
}
