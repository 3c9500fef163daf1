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
	"strings"

	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/schema"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// Getter assembles a Get query on one collection. Like the argument
// builders it is a value, every With method returns a modified copy.
type Getter struct {
	className   string
	fields      []string
	additional  []string
	generate    *Generate
	where       *Where
	near        nearArgument
	bm25        *BM25
	hybrid      *Hybrid
	group       *Group
	limit       *int
	offset      *int
	autocut     *int
	sort        []Sort
	after       string
	consistency searchparams.ConsistencyLevel
	groupBy     *GroupBy
	tenant      string
}

func NewGetter(className string) Getter {
	return Getter{className: className}
}

// WithFields selects properties. A field may carry a selection set, for
// example "hasAuthor{... on Author{name}}".
func (g Getter) WithFields(fields ...string) Getter {
	g.fields = append(append([]string{}, g.fields...), fields...)
	return g
}

// WithAdditional selects _additional fields such as id, distance or vector.
func (g Getter) WithAdditional(fields ...string) Getter {
	g.additional = append(append([]string{}, g.additional...), fields...)
	return g
}

func (g Getter) WithGenerate(generate Generate) Getter {
	g.generate = &generate
	return g
}

func (g Getter) WithWhere(where Where) Getter {
	g.where = &where
	return g
}

func (g Getter) WithNearText(nearText NearText) (Getter, error) {
	return g.withNear(nearText)
}

func (g Getter) WithNearObject(nearObject NearObject) (Getter, error) {
	return g.withNear(nearObject)
}

func (g Getter) WithAsk(ask Ask) (Getter, error) {
	return g.withNear(ask)
}

func (g Getter) WithNearMedia(nearMedia NearMedia) (Getter, error) {
	return g.withNear(nearMedia)
}

func (g Getter) WithNearVector(nearVector NearVector) (Getter, error) {
	return g.withNear(nearVector)
}

func (g Getter) withNear(near nearArgument) (Getter, error) {
	if g.near != nil {
		return g, errors.NewGraphQLValidation(near.argumentName(),
			"cannot use multiple near<Media> filters in a single query")
	}
	g.near = near
	return g, nil
}

func (g Getter) WithBM25(bm25 BM25) Getter {
	g.bm25 = &bm25
	return g
}

func (g Getter) WithHybrid(hybrid Hybrid) Getter {
	g.hybrid = &hybrid
	return g
}

func (g Getter) WithGroup(group Group) Getter {
	g.group = &group
	return g
}

func (g Getter) WithLimit(limit int) Getter {
	g.limit = &limit
	return g
}

func (g Getter) WithOffset(offset int) Getter {
	g.offset = &offset
	return g
}

func (g Getter) WithAutocut(autocut int) Getter {
	g.autocut = &autocut
	return g
}

func (g Getter) WithSort(sort ...Sort) Getter {
	g.sort = append(append([]Sort{}, g.sort...), sort...)
	return g
}

// WithAfter continues a cursor listing after the given object id.
func (g Getter) WithAfter(id string) Getter {
	g.after = id
	return g
}

func (g Getter) WithConsistencyLevel(level searchparams.ConsistencyLevel) Getter {
	g.consistency = level
	return g
}

func (g Getter) WithGroupBy(groupBy GroupBy) Getter {
	g.groupBy = &groupBy
	return g
}

func (g Getter) WithTenant(tenant string) Getter {
	g.tenant = tenant
	return g
}

type validator interface {
	Validate() error
}

func (g Getter) Validate() error {
	if err := schema.ValidateClassName(g.className); err != nil {
		return errors.NewGraphQLValidation("className", "get: %v", err)
	}
	if len(g.fields) == 0 && len(g.additional) == 0 && g.generate == nil {
		return errors.NewGraphQLValidation("fields", "get: fields need to be set")
	}
	for _, field := range g.fields {
		if err := schema.ValidateReservedPropertyName(field); err != nil {
			return errors.NewGraphQLValidation("fields", "get: %v", err)
		}
	}

	var parts []validator
	if g.where != nil {
		parts = append(parts, g.where)
	}
	if g.near != nil {
		parts = append(parts, g.near)
	}
	if g.bm25 != nil {
		parts = append(parts, g.bm25)
	}
	if g.hybrid != nil {
		parts = append(parts, g.hybrid)
	}
	if g.group != nil {
		parts = append(parts, g.group)
	}
	for i := range g.sort {
		parts = append(parts, g.sort[i])
	}
	if g.groupBy != nil {
		parts = append(parts, g.groupBy)
	}
	if g.generate != nil {
		parts = append(parts, g.generate)
	}
	for _, part := range parts {
		if err := part.Validate(); err != nil {
			return err
		}
	}

	if g.limit != nil && *g.limit < 0 {
		return errors.NewGraphQLValidation("limit", "get: limit cannot be negative")
	}
	if g.offset != nil && *g.offset < 0 {
		return errors.NewGraphQLValidation("offset", "get: offset cannot be negative")
	}
	if err := g.validateCursor(); err != nil {
		return err
	}
	switch g.consistency {
	case searchparams.ConsistencyUnset, searchparams.ConsistencyOne,
		searchparams.ConsistencyQuorum, searchparams.ConsistencyAll:
	default:
		return errors.NewGraphQLValidation("consistencyLevel", "get: unknown consistency level %q", g.consistency)
	}
	return nil
}

// validateCursor mirrors the server: a cursor listing takes a limit and
// nothing that searches, filters or reorders.
func (g Getter) validateCursor() error {
	if g.after == "" {
		return nil
	}
	if g.limit == nil {
		return errors.NewGraphQLValidation("after", "get: after needs a limit")
	}
	if g.where != nil || g.near != nil || g.bm25 != nil || g.hybrid != nil ||
		g.group != nil || g.offset != nil || len(g.sort) > 0 || g.groupBy != nil {
		return errors.NewGraphQLValidation("after", "get: other params cannot be set with after and limit parameters")
	}
	return nil
}

// String renders the query without validating it.
func (g Getter) String() string {
	args := arguments{}
	if g.where != nil {
		args.add("where", g.where.String())
	}
	if g.near != nil {
		args.add(g.near.argumentName(), g.near.String())
	}
	if g.bm25 != nil {
		args.add("bm25", g.bm25.String())
	}
	if g.hybrid != nil {
		args.add("hybrid", g.hybrid.String())
	}
	if g.group != nil {
		args.add("group", g.group.String())
	}
	if g.limit != nil {
		args.add("limit", formatInt(*g.limit))
	}
	if g.offset != nil {
		args.add("offset", formatInt(*g.offset))
	}
	if g.autocut != nil {
		args.add("autocut", formatInt(*g.autocut))
	}
	if len(g.sort) > 0 {
		sorts := make([]string, len(g.sort))
		for i := range g.sort {
			sorts[i] = g.sort[i].String()
		}
		args.add("sort", "["+strings.Join(sorts, ",")+"]")
	}
	if g.after != "" {
		args.add("after", quote(g.after))
	}
	if g.consistency != searchparams.ConsistencyUnset {
		args.add("consistencyLevel", string(g.consistency))
	}
	if g.groupBy != nil {
		args.add("groupBy", g.groupBy.String())
	}
	if g.tenant != "" {
		args.add("tenant", quote(g.tenant))
	}

	var query strings.Builder
	query.WriteString("{Get{")
	query.WriteString(g.className)
	if len(args) > 0 {
		query.WriteString("(" + args.list() + ")")
	}
	query.WriteString("{" + g.renderFields() + "}}}")
	return query.String()
}

func (g Getter) renderFields() string {
	fields := append([]string{}, g.fields...)
	additional := append([]string{}, g.additional...)
	if g.generate != nil {
		additional = append(additional, g.generate.String())
	}
	if len(additional) > 0 {
		fields = append(fields, "_additional{"+strings.Join(additional, " ")+"}")
	}
	return strings.Join(fields, " ")
}

func (g Getter) Build() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g.String(), nil
}
