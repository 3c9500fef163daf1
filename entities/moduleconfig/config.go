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

// Package moduleconfig describes which server side module or algorithm
// variant a collection or a query uses. Descriptors are produced by the
// factories in this package and are not modified afterwards.
package moduleconfig

import (
	"fmt"
	"sort"
)

type Kind string

const (
	KindVectorizer  Kind = "vectorizer"
	KindGenerative  Kind = "generative"
	KindReranker    Kind = "reranker"
	KindVectorIndex Kind = "vectorIndex"
	KindQuantizer   Kind = "quantizer"
)

// Config is a tagged module configuration. Config is nil when the variant
// takes no parameters.
type Config struct {
	Kind   Kind
	Name   string
	Config map[string]interface{}
}

func (c Config) String() string {
	if len(c.Config) == 0 {
		return fmt.Sprintf("%s(%s)", c.Kind, c.Name)
	}
	keys := make([]string, 0, len(c.Config))
	for k := range c.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s(%s %v)", c.Kind, c.Name, keys)
}

// params collects the set fields of a factory's options.
type params map[string]interface{}

func (p params) str(key, v string) params {
	if v != "" {
		p[key] = v
	}
	return p
}

func (p params) strs(key string, v []string) params {
	if v != nil {
		p[key] = append([]string{}, v...)
	}
	return p
}

func (p params) boolPtr(key string, v *bool) params {
	if v != nil {
		p[key] = *v
	}
	return p
}

func (p params) intPtr(key string, v *int) params {
	if v != nil {
		p[key] = *v
	}
	return p
}

func (p params) floatPtr(key string, v *float64) params {
	if v != nil {
		p[key] = *v
	}
	return p
}

func (p params) nested(key string, v *Config) params {
	if v != nil {
		p[key] = v.asMap()
	}
	return p
}

func (p params) build() map[string]interface{} {
	if len(p) == 0 {
		return nil
	}
	return map[string]interface{}(p)
}

func (c Config) asMap() map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range c.Config {
		out[k] = v
	}
	return out
}

func optionalStringFromMap(in map[string]interface{}, name string, setFn func(v string)) error {
	value, ok := in[name]
	if !ok {
		return nil
	}
	asString, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s must be a string, got %T", name, value)
	}
	setFn(asString)
	return nil
}

func optionalBoolFromMap(in map[string]interface{}, name string, setFn func(v bool)) error {
	value, ok := in[name]
	if !ok {
		return nil
	}
	asBool, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%s must be a boolean, got %T", name, value)
	}
	setFn(asBool)
	return nil
}

// optionalIntFromMap accepts the number types JSON and YAML decoders
// produce for integers.
func optionalIntFromMap(in map[string]interface{}, name string, setFn func(v int)) error {
	value, ok := in[name]
	if !ok {
		return nil
	}
	switch typed := value.(type) {
	case int:
		setFn(typed)
	case int64:
		setFn(int(typed))
	case float64:
		if typed != float64(int(typed)) {
			return fmt.Errorf("%s must be an integer, got %v", name, typed)
		}
		setFn(int(typed))
	default:
		return fmt.Errorf("%s must be an integer, got %T", name, value)
	}
	return nil
}
