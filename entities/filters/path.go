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
	"strings"

	"github.com/pkg/errors"
)

const (
	InternalPropID                 = "_id"
	InternalPropCreationTimeUnix   = "_creationTimeUnix"
	InternalPropLastUpdateTimeUnix = "_lastUpdateTimeUnix"
)

// Represents the path in a filter.
//
// A path without Child targets Property on the queried collection. A path
// with a Child hops through the reference property Property; the child's
// Class names the target collection of a multi-target reference and is empty
// for single-target references. Count targets the number of references in
// Property instead of a property behind it.
type Path struct {
	Class    string `json:"class"`
	Property string `json:"property"`
	Count    bool   `json:"count"`

	// If nil, then this is the property we're interested in.
	// If a pointer to another Path, the constraint applies to that one.
	Child *Path `json:"child"`
}

// GetInnerMost recursively searches for child paths, only when no more
// children can be found will the path be returned
func (p *Path) GetInnerMost() *Path {
	if p.Child == nil {
		return p
	}

	return p.Child.GetInnerMost()
}

func (p *Path) IsReference() bool {
	return p.Child != nil || p.Count
}

// Slice flattens the nested path into the GraphQL path segments:
// ["ref", "TargetClass", "prop"]. Every hop needs a target class since
// GraphQL paths name the class of each step.
func (p *Path) Slice() ([]string, error) {
	result := []string{p.Property}
	if p.Child == nil {
		return result, nil
	}
	if p.Child.Class == "" {
		return nil, errors.Errorf("reference %q needs a target collection to be used in a GraphQL path", p.Property)
	}
	result = append(result, p.Child.Class)
	rest, err := p.Child.Slice()
	if err != nil {
		return nil, err
	}
	return append(result, rest...), nil
}

func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for current := p; current != nil; current = current.Child {
		if current != p {
			b.WriteString(".")
			if current.Class != "" {
				b.WriteString(current.Class)
				b.WriteString(":")
			}
		}
		b.WriteString(current.Property)
		if current.Count {
			b.WriteString("#count")
		}
	}
	return b.String()
}

// PropertyLength names the length index of a property, "len(name)".
func PropertyLength(name string) string {
	return "len(" + name + ")"
}
