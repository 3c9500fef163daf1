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

// PropertyFilter is the first half of a leaf filter: it knows what to test
// and turns into a *Filter once an operator and a value are given.
type PropertyFilter struct {
	path *Path
}

// ByProperty filters on a property of the queried collection.
func ByProperty(name string) *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: name}}
}

// ByPropertyLength filters on the length of a property. The property needs
// the length index enabled.
func ByPropertyLength(name string) *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: PropertyLength(name)}}
}

func ByID() *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: InternalPropID}}
}

func ByCreationTime() *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: InternalPropCreationTimeUnix}}
}

func ByUpdateTime() *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: InternalPropLastUpdateTimeUnix}}
}

// ByRefCount filters on the number of references a reference property holds.
func ByRefCount(on string) *PropertyFilter {
	return &PropertyFilter{path: &Path{Property: on, Count: true}}
}

// Path returns a copy of the targeted path.
func (p *PropertyFilter) Path() *Path {
	return copyPath(p.path)
}

func (p *PropertyFilter) Equal(v interface{}) *Filter {
	return p.leaf(OperatorEqual, v)
}

func (p *PropertyFilter) NotEqual(v interface{}) *Filter {
	return p.leaf(OperatorNotEqual, v)
}

func (p *PropertyFilter) GreaterThan(v interface{}) *Filter {
	return p.leaf(OperatorGreaterThan, v)
}

func (p *PropertyFilter) GreaterOrEqual(v interface{}) *Filter {
	return p.leaf(OperatorGreaterThanEqual, v)
}

func (p *PropertyFilter) LessThan(v interface{}) *Filter {
	return p.leaf(OperatorLessThan, v)
}

func (p *PropertyFilter) LessOrEqual(v interface{}) *Filter {
	return p.leaf(OperatorLessThanEqual, v)
}

func (p *PropertyFilter) Like(v string) *Filter {
	return p.leaf(OperatorLike, v)
}

func (p *PropertyFilter) IsNull(v bool) *Filter {
	return p.leaf(OperatorIsNull, v)
}

func (p *PropertyFilter) ContainsAny(v interface{}) *Filter {
	return p.leaf(ContainsAny, v)
}

func (p *PropertyFilter) ContainsAll(v interface{}) *Filter {
	return p.leaf(ContainsAll, v)
}

func (p *PropertyFilter) WithinGeoRange(v GeoRange) *Filter {
	return p.leaf(OperatorWithinGeoRange, v)
}

func (p *PropertyFilter) leaf(op Operator, v interface{}) *Filter {
	return &Filter{Operator: op, On: copyPath(p.path), Value: NewValue(v)}
}

type hop struct {
	on               string
	targetCollection string
}

// RefFilter walks through reference properties before naming the property
// to test.
type RefFilter struct {
	hops []hop
}

// ByRef hops through a single-target reference property.
func ByRef(on string) *RefFilter {
	return &RefFilter{hops: []hop{{on: on}}}
}

// ByRefMultiTarget hops through a multi-target reference property into
// targetCollection.
func ByRefMultiTarget(on, targetCollection string) *RefFilter {
	return &RefFilter{hops: []hop{{on: on, targetCollection: targetCollection}}}
}

func (r *RefFilter) ByRef(on string) *RefFilter {
	return r.with(hop{on: on})
}

func (r *RefFilter) ByRefMultiTarget(on, targetCollection string) *RefFilter {
	return r.with(hop{on: on, targetCollection: targetCollection})
}

func (r *RefFilter) ByProperty(name string) *PropertyFilter {
	return r.terminal(Path{Property: name})
}

func (r *RefFilter) ByPropertyLength(name string) *PropertyFilter {
	return r.terminal(Path{Property: PropertyLength(name)})
}

func (r *RefFilter) ByID() *PropertyFilter {
	return r.terminal(Path{Property: InternalPropID})
}

func (r *RefFilter) ByCreationTime() *PropertyFilter {
	return r.terminal(Path{Property: InternalPropCreationTimeUnix})
}

func (r *RefFilter) ByUpdateTime() *PropertyFilter {
	return r.terminal(Path{Property: InternalPropLastUpdateTimeUnix})
}

func (r *RefFilter) ByRefCount(on string) *PropertyFilter {
	return r.terminal(Path{Property: on, Count: true})
}

func (r *RefFilter) with(h hop) *RefFilter {
	hops := make([]hop, 0, len(r.hops)+1)
	hops = append(hops, r.hops...)
	return &RefFilter{hops: append(hops, h)}
}

func (r *RefFilter) terminal(leaf Path) *PropertyFilter {
	// The sentinel is used to bootstrap the inlined recursion.
	// we return sentinel.Child at the end.
	var sentinel Path
	current := &sentinel
	class := ""
	for _, h := range r.hops {
		current.Child = &Path{Class: class, Property: h.on}
		current = current.Child
		class = h.targetCollection
	}
	leaf.Class = class
	current.Child = &leaf
	return &PropertyFilter{path: sentinel.Child}
}

func copyPath(p *Path) *Path {
	if p == nil {
		return nil
	}
	c := *p
	c.Child = copyPath(p.Child)
	return &c
}
