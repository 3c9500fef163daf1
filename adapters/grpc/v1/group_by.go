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
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
)

// GroupBy renders the group-by argument. A nil argument renders to nil.
func (s *Serializer) GroupBy(groupBy *searchparams.GroupBy) (*pb.GroupBy, error) {
	if groupBy == nil {
		return nil, nil
	}
	if groupBy.Property == "" {
		return nil, errors.NewInvalidInput("groupBy.property", "must be set")
	}
	if groupBy.NumberOfGroups <= 0 || groupBy.ObjectsPerGroup <= 0 {
		return nil, errors.NewInvalidInput("groupBy",
			"numberOfGroups and objectsPerGroup must be positive, got %d and %d",
			groupBy.NumberOfGroups, groupBy.ObjectsPerGroup)
	}
	return &pb.GroupBy{
		Path:            []string{groupBy.Property},
		NumberOfGroups:  groupBy.NumberOfGroups,
		ObjectsPerGroup: groupBy.ObjectsPerGroup,
	}, nil
}
