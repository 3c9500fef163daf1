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

import "github.com/weaviate/weaviate-client-core/entities/errors"

type GroupType string

const (
	GroupMerge   GroupType = "merge"
	GroupClosest GroupType = "closest"
)

// Group merges or deduplicates results that are closer than force.
type Group struct {
	groupType GroupType
	force     float32
}

func NewGroup(groupType GroupType, force float32) Group {
	return Group{groupType: groupType, force: force}
}

func (g Group) Validate() error {
	switch g.groupType {
	case GroupMerge, GroupClosest:
	default:
		return errors.NewGraphQLValidation("group", "group filter: unknown type %q", g.groupType)
	}
	if g.force < 0 || g.force > 1 {
		return errors.NewGraphQLValidation("group", "group filter: force must be between 0 and 1, got %v", g.force)
	}
	return nil
}

func (g Group) String() string {
	args := arguments{}
	args.add("type", string(g.groupType))
	args.add("force", formatFloat32(g.force))
	return args.object()
}

func (g Group) Build() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g.String(), nil
}

type GroupBy struct {
	path            []string
	groups          int
	objectsPerGroup int
}

func NewGroupBy(path ...string) GroupBy {
	return GroupBy{path: append([]string{}, path...)}
}

func (g GroupBy) WithGroups(groups int) GroupBy {
	g.groups = groups
	return g
}

func (g GroupBy) WithObjectsPerGroup(objectsPerGroup int) GroupBy {
	g.objectsPerGroup = objectsPerGroup
	return g
}

func (g GroupBy) Validate() error {
	if len(g.path) == 0 {
		return errors.NewGraphQLValidation("groupBy", "groupBy: path cannot be empty")
	}
	if g.groups <= 0 || g.objectsPerGroup <= 0 {
		return errors.NewGraphQLValidation("groupBy", "groupBy: groups and objectsPerGroup need to be greater than 0")
	}
	return nil
}

func (g GroupBy) String() string {
	args := arguments{}
	args.add("path", quoteList(g.path))
	args.add("groups", formatInt(g.groups))
	args.add("objectsPerGroup", formatInt(g.objectsPerGroup))
	return args.object()
}

func (g GroupBy) Build() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g.String(), nil
}
