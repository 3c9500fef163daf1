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

// propertiesRequest selects the returned properties. Without an explicit
// selection every non-reference property is returned.
func propertiesRequest(props []string, objects []searchparams.ObjectProperty,
	refs []searchparams.QueryReference,
) (*pb.PropertiesRequest, error) {
	out := &pb.PropertiesRequest{
		NonRefProperties:          append([]string(nil), props...),
		ReturnAllNonrefProperties: props == nil && objects == nil,
	}

	for _, object := range objects {
		out.ObjectProperties = append(out.ObjectProperties, objectPropertiesRequest(object))
	}

	for _, ref := range refs {
		if ref.LinkOn == "" {
			return nil, errors.NewInvalidInput("returnReferences", "linkOn must be set")
		}
		metadata, err := metadataRequest(ref.ReturnMetadata, ref.IncludeVector)
		if err != nil {
			return nil, err
		}
		properties, err := propertiesRequest(ref.ReturnProperties, ref.ReturnObjects, ref.ReturnReferences)
		if err != nil {
			return nil, err
		}
		out.RefProperties = append(out.RefProperties, &pb.RefPropertiesRequest{
			ReferenceProperty: ref.LinkOn,
			TargetCollection:  ref.TargetCollection,
			Metadata:          metadata,
			Properties:        properties,
		})
	}

	return out, nil
}

func objectPropertiesRequest(object searchparams.ObjectProperty) *pb.ObjectPropertiesRequest {
	out := &pb.ObjectPropertiesRequest{
		PropName:            object.Name,
		PrimitiveProperties: append([]string(nil), object.Properties...),
	}
	for _, nested := range object.Objects {
		out.ObjectProperties = append(out.ObjectProperties, objectPropertiesRequest(nested))
	}
	return out
}
