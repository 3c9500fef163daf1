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

package searchparams

import (
	"sort"
)

// Vector is the vector payload of a search. Exactly one of the fields is
// set: a single dense vector, one vector per named target, or a list of
// vectors per named target.
type Vector struct {
	Dense      []float32
	Named      map[string][]float32
	NamedMulti map[string][][]float32
}

func DenseVector(v []float32) Vector {
	return Vector{Dense: append([]float32{}, v...)}
}

func NamedVectors(vectors map[string][]float32) Vector {
	out := make(map[string][]float32, len(vectors))
	for name, v := range vectors {
		out[name] = append([]float32{}, v...)
	}
	return Vector{Named: out}
}

func NamedVectorLists(vectors map[string][][]float32) Vector {
	out := make(map[string][][]float32, len(vectors))
	for name, list := range vectors {
		copied := make([][]float32, len(list))
		for i := range list {
			copied[i] = append([]float32{}, list[i]...)
		}
		out[name] = copied
	}
	return Vector{NamedMulti: out}
}

func (v Vector) IsDense() bool {
	return v.Named == nil && v.NamedMulti == nil
}

func (v Vector) IsEmpty() bool {
	return len(v.Dense) == 0 && len(v.Named) == 0 && len(v.NamedMulti) == 0
}

// HasLists reports whether any target carries more than one vector.
func (v Vector) HasLists() bool {
	for _, list := range v.NamedMulti {
		if len(list) > 1 {
			return true
		}
	}
	return false
}

// Names returns the target names in a stable order. order is used first,
// remaining names follow sorted.
func (v Vector) Names(order []string) []string {
	present := map[string]struct{}{}
	for name := range v.Named {
		present[name] = struct{}{}
	}
	for name := range v.NamedMulti {
		present[name] = struct{}{}
	}

	names := make([]string, 0, len(present))
	for _, name := range order {
		if _, ok := present[name]; ok {
			names = append(names, name)
			delete(present, name)
		}
	}
	rest := make([]string, 0, len(present))
	for name := range present {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// ListFor returns the vectors given for a target.
func (v Vector) ListFor(name string) [][]float32 {
	if list, ok := v.NamedMulti[name]; ok {
		return list
	}
	if single, ok := v.Named[name]; ok {
		return [][]float32{single}
	}
	return nil
}
