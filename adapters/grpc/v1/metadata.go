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

// metadataRequest always asks for the uuid. "all" sets every flag, other
// fields set only their own flag and leave the rest to the server default.
func metadataRequest(fields []searchparams.MetadataField, include searchparams.IncludeVector) (*pb.MetadataRequest, error) {
	out := &pb.MetadataRequest{
		Uuid:    true,
		Vector:  include.All,
		Vectors: append([]string(nil), include.Names...),
	}

	for _, field := range fields {
		if field == searchparams.MetadataAll {
			out.CreationTimeUnix = true
			out.LastUpdateTimeUnix = true
			out.Distance = true
			out.Certainty = true
			out.Score = true
			out.ExplainScore = true
			out.IsConsistent = true
			continue
		}
		switch field {
		case searchparams.MetadataCreationTime:
			out.CreationTimeUnix = true
		case searchparams.MetadataUpdateTime:
			out.LastUpdateTimeUnix = true
		case searchparams.MetadataDistance:
			out.Distance = true
		case searchparams.MetadataCertainty:
			out.Certainty = true
		case searchparams.MetadataScore:
			out.Score = true
		case searchparams.MetadataExplainScore:
			out.ExplainScore = true
		case searchparams.MetadataIsConsistent:
			out.IsConsistent = true
		default:
			return nil, errors.NewInvalidInput("returnMetadata", "unknown metadata field %q", field)
		}
	}
	return out, nil
}
