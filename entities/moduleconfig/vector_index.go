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

package moduleconfig

import (
	"errors"
	"fmt"
)

const (
	VectorIndexHNSW    = "hnsw"
	VectorIndexFlat    = "flat"
	VectorIndexDynamic = "dynamic"

	DefaultDistanceMetric = "cosine"
)

type PQOptions struct {
	Centroids     *int
	Segments      *int
	TrainingLimit *int
	EncoderType   string
}

func PQ(opts PQOptions) Config {
	p := params{"enabled": true}.
		intPtr("centroids", opts.Centroids).
		intPtr("segments", opts.Segments).
		intPtr("trainingLimit", opts.TrainingLimit)
	if opts.EncoderType != "" {
		p["encoder"] = map[string]interface{}{"type": opts.EncoderType}
	}
	return Config{Kind: KindQuantizer, Name: "pq", Config: p.build()}
}

type BQOptions struct {
	Cache        *bool
	RescoreLimit *int
}

func BQ(opts BQOptions) Config {
	return Config{Kind: KindQuantizer, Name: "bq", Config: params{"enabled": true}.
		boolPtr("cache", opts.Cache).
		intPtr("rescoreLimit", opts.RescoreLimit).
		build()}
}

type SQOptions struct {
	TrainingLimit *int
	RescoreLimit  *int
}

func SQ(opts SQOptions) Config {
	return Config{Kind: KindQuantizer, Name: "sq", Config: params{"enabled": true}.
		intPtr("trainingLimit", opts.TrainingLimit).
		intPtr("rescoreLimit", opts.RescoreLimit).
		build()}
}

type HNSWOptions struct {
	Distance       string
	EF             *int
	EFConstruction *int
	MaxConnections *int
	Quantizer      *Config
}

func HNSW(opts HNSWOptions) Config {
	p := params{}.
		str("distance", opts.Distance).
		intPtr("ef", opts.EF).
		intPtr("efConstruction", opts.EFConstruction).
		intPtr("maxConnections", opts.MaxConnections)
	if opts.Quantizer != nil {
		p.nested(opts.Quantizer.Name, opts.Quantizer)
	}
	return Config{Kind: KindVectorIndex, Name: VectorIndexHNSW, Config: p.build()}
}

type FlatOptions struct {
	Distance              string
	VectorCacheMaxObjects *int
	Quantizer             *Config
}

func Flat(opts FlatOptions) Config {
	p := params{}.
		str("distance", opts.Distance).
		intPtr("vectorCacheMaxObjects", opts.VectorCacheMaxObjects)
	if opts.Quantizer != nil {
		p.nested(opts.Quantizer.Name, opts.Quantizer)
	}
	return Config{Kind: KindVectorIndex, Name: VectorIndexFlat, Config: p.build()}
}

// Validate checks the combinations the server rejects: flat indexes only
// support bq and an index can not enable more than one quantizer.
func (c Config) Validate() error {
	if c.Kind != KindVectorIndex {
		return nil
	}
	enabled := []string{}
	for _, name := range []string{"pq", "bq", "sq"} {
		raw, ok := c.Config[name]
		if !ok {
			continue
		}
		asMap, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s must be a map, got %T", name, raw)
		}
		if on, _ := asMap["enabled"].(bool); on {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) > 1 {
		return errors.New("cannot enable multiple quantization methods at the same time")
	}
	if c.Name == VectorIndexFlat && len(enabled) == 1 && enabled[0] != "bq" {
		return fmt.Errorf("%s is not supported for flat indices", enabled[0])
	}
	return nil
}

// VectorIndexSettings is the read back form of a vector index descriptor.
// Quantizer names the enabled quantizer, if any.
type VectorIndexSettings struct {
	Type                  string
	Distance              string
	EF                    int
	EFConstruction        int
	MaxConnections        int
	VectorCacheMaxObjects int
	Quantizer             string
}

// ParseVectorIndex reads a vector index config as the server returns it.
// The server does not echo the pq encoder type, so it is not read back.
func ParseVectorIndex(indexType string, input interface{}) (VectorIndexSettings, error) {
	settings := VectorIndexSettings{Type: indexType, Distance: DefaultDistanceMetric}
	switch indexType {
	case VectorIndexHNSW, VectorIndexFlat, VectorIndexDynamic:
	default:
		return settings, fmt.Errorf("invalid vectorIndexType (%s). Supported types are hnsw, flat and dynamic", indexType)
	}

	if input == nil {
		return settings, nil
	}
	asMap, ok := input.(map[string]interface{})
	if !ok || asMap == nil {
		return settings, fmt.Errorf("input must be a non-nil map")
	}

	if err := optionalStringFromMap(asMap, "distance", func(v string) {
		settings.Distance = v
	}); err != nil {
		return settings, err
	}
	for name, target := range map[string]*int{
		"ef":                    &settings.EF,
		"efConstruction":        &settings.EFConstruction,
		"maxConnections":        &settings.MaxConnections,
		"vectorCacheMaxObjects": &settings.VectorCacheMaxObjects,
	} {
		target := target
		if err := optionalIntFromMap(asMap, name, func(v int) {
			*target = v
		}); err != nil {
			return settings, err
		}
	}

	for _, name := range []string{"pq", "bq", "sq"} {
		nested, ok := asMap[name].(map[string]interface{})
		if !ok {
			continue
		}
		if err := optionalBoolFromMap(nested, "enabled", func(v bool) {
			if v {
				settings.Quantizer = name
			}
		}); err != nil {
			return settings, fmt.Errorf("%s: %w", name, err)
		}
	}

	return settings, nil
}
