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
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/pkg/errors"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	"github.com/weaviate/weaviate/entities/models"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
)

// ParseReply turns a search reply into typed results. Group-by replies fill
// Groups, all others Objects.
func ParseReply(reply *pb.SearchReply) (*searchparams.Result, error) {
	if reply == nil {
		return nil, errors.New("reply is nil")
	}
	out := &searchparams.Result{Took: reply.Took}

	if grouped := reply.GetGenerativeGroupedResults(); grouped != nil && len(grouped.Values) > 0 {
		out.GenerativeGrouped = swag.String(grouped.Values[0].Result)
	} else if reply.GenerativeGroupedResult != nil && *reply.GenerativeGroupedResult != "" {
		out.GenerativeGrouped = swag.String(*reply.GenerativeGroupedResult)
	}

	if len(reply.GroupByResults) > 0 {
		out.Groups = make([]searchparams.Group, len(reply.GroupByResults))
		for i, group := range reply.GroupByResults {
			objects, err := resultsFromProto(group.Objects)
			if err != nil {
				return nil, errors.Wrapf(err, "group %q", group.Name)
			}
			out.Groups[i] = searchparams.Group{
				Name:            group.Name,
				MinDistance:     group.MinDistance,
				MaxDistance:     group.MaxDistance,
				NumberOfObjects: group.NumberOfObjects,
				Objects:         objects,
			}
		}
		return out, nil
	}

	objects, err := resultsFromProto(reply.Results)
	if err != nil {
		return nil, err
	}
	out.Objects = objects
	return out, nil
}

func resultsFromProto(results []*pb.SearchResult) ([]searchparams.Object, error) {
	out := make([]searchparams.Object, len(results))
	for i, result := range results {
		object, err := objectFromProto(result.Properties, result.Metadata)
		if err != nil {
			return nil, errors.Wrapf(err, "result %d", i)
		}
		out[i] = object
	}
	return out, nil
}

func objectFromProto(props *pb.PropertiesResult, metadata *pb.MetadataResult) (searchparams.Object, error) {
	out := searchparams.Object{}
	if props != nil {
		out.Collection = props.TargetCollection
		if props.NonRefProps != nil {
			properties, err := propertiesFromProto(props.NonRefProps)
			if err != nil {
				return out, err
			}
			out.Properties = properties
		}
		for _, ref := range props.RefProps {
			if out.References == nil {
				out.References = map[string][]searchparams.Object{}
			}
			targets := make([]searchparams.Object, len(ref.Properties))
			for i, target := range ref.Properties {
				object, err := objectFromProto(target, target.Metadata)
				if err != nil {
					return out, errors.Wrapf(err, "reference %q", ref.PropName)
				}
				targets[i] = object
			}
			out.References[ref.PropName] = targets
		}
	}

	if metadata == nil {
		return out, nil
	}
	out.Metadata = metadataFromProto(metadata)
	if metadata.GenerativePresent {
		out.Generated = swag.String(metadata.Generative)
	}

	var err error
	if len(metadata.VectorBytes) > 0 {
		if out.Vector, err = DecodeVector(metadata.VectorBytes); err != nil {
			return out, err
		}
	} else if len(metadata.Vector) > 0 {
		out.Vector = append([]float32{}, metadata.Vector...)
	}
	for _, vectors := range metadata.Vectors {
		if vectors.Type == pb.Vectors_VECTOR_TYPE_MULTI_FP32 {
			decoded, err := DecodeMultiVector(vectors.VectorBytes)
			if err != nil {
				return out, errors.Wrapf(err, "vector %q", vectors.Name)
			}
			if out.MultiVectors == nil {
				out.MultiVectors = map[string][][]float32{}
			}
			out.MultiVectors[vectors.Name] = decoded
			continue
		}
		decoded, err := DecodeVector(vectors.VectorBytes)
		if err != nil {
			return out, errors.Wrapf(err, "vector %q", vectors.Name)
		}
		if out.Vectors == nil {
			out.Vectors = map[string][]float32{}
		}
		out.Vectors[vectors.Name] = decoded
	}
	return out, nil
}

// metadataFromProto keeps only the fields the server marked as present.
func metadataFromProto(in *pb.MetadataResult) searchparams.Metadata {
	out := searchparams.Metadata{UUID: strfmt.UUID(in.Id)}
	if in.CreationTimeUnixPresent {
		t := time.UnixMilli(in.CreationTimeUnix).UTC()
		out.CreationTime = &t
	}
	if in.LastUpdateTimeUnixPresent {
		t := time.UnixMilli(in.LastUpdateTimeUnix).UTC()
		out.UpdateTime = &t
	}
	if in.DistancePresent {
		out.Distance = swag.Float32(in.Distance)
	}
	if in.CertaintyPresent {
		out.Certainty = swag.Float32(in.Certainty)
	}
	if in.ScorePresent {
		out.Score = swag.Float32(in.Score)
	}
	if in.ExplainScorePresent {
		out.ExplainScore = swag.String(in.ExplainScore)
	}
	if in.IsConsistent != nil {
		out.IsConsistent = swag.Bool(*in.IsConsistent)
	}
	if in.RerankScorePresent {
		out.RerankScore = swag.Float64(in.RerankScore)
	}
	return out
}

func propertiesFromProto(props *pb.Properties) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(props.Fields))
	for name, value := range props.Fields {
		decoded, err := valueFromProto(value)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", name)
		}
		out[name] = decoded
	}
	return out, nil
}

// valueFromProto is the inverse of the server's value mapping. Dates become
// time.Time, geo coordinates and phone numbers their REST models.
func valueFromProto(v *pb.Value) (interface{}, error) {
	switch kind := v.GetKind().(type) {
	case nil, *pb.Value_NullValue:
		return nil, nil
	case *pb.Value_NumberValue:
		return kind.NumberValue, nil
	case *pb.Value_StringValue:
		return kind.StringValue, nil
	case *pb.Value_TextValue:
		return kind.TextValue, nil
	case *pb.Value_BoolValue:
		return kind.BoolValue, nil
	case *pb.Value_IntValue:
		return kind.IntValue, nil
	case *pb.Value_UuidValue:
		return strfmt.UUID(kind.UuidValue), nil
	case *pb.Value_BlobValue:
		return kind.BlobValue, nil
	case *pb.Value_DateValue:
		return parseDate(kind.DateValue)
	case *pb.Value_GeoValue:
		return &models.GeoCoordinates{
			Latitude:  swag.Float32(kind.GeoValue.Latitude),
			Longitude: swag.Float32(kind.GeoValue.Longitude),
		}, nil
	case *pb.Value_PhoneValue:
		p := kind.PhoneValue
		return &models.PhoneNumber{
			CountryCode:            p.CountryCode,
			DefaultCountry:         p.DefaultCountry,
			Input:                  p.Input,
			InternationalFormatted: p.InternationalFormatted,
			National:               p.National,
			NationalFormatted:      p.NationalFormatted,
			Valid:                  p.Valid,
		}, nil
	case *pb.Value_ObjectValue:
		return propertiesFromProto(kind.ObjectValue)
	case *pb.Value_ListValue:
		return listFromProto(kind.ListValue)
	default:
		return nil, errors.Errorf("invalid type: %T", kind)
	}
}

func listFromProto(list *pb.ListValue) (interface{}, error) {
	switch kind := list.GetKind().(type) {
	case *pb.ListValue_TextValues:
		return append([]string{}, kind.TextValues.Values...), nil
	case *pb.ListValue_BoolValues:
		return append([]bool{}, kind.BoolValues.Values...), nil
	case *pb.ListValue_NumberValues:
		return decodeFloat64s(kind.NumberValues.Values)
	case *pb.ListValue_IntValues:
		return decodeInt64s(kind.IntValues.Values)
	case *pb.ListValue_UuidValues:
		out := make([]strfmt.UUID, len(kind.UuidValues.Values))
		for i, id := range kind.UuidValues.Values {
			out[i] = strfmt.UUID(id)
		}
		return out, nil
	case *pb.ListValue_DateValues:
		out := make([]time.Time, len(kind.DateValues.Values))
		for i, raw := range kind.DateValues.Values {
			parsed, err := parseDate(raw)
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil
	case *pb.ListValue_ObjectValues:
		out := make([]interface{}, len(kind.ObjectValues.Values))
		for i, object := range kind.ObjectValues.Values {
			decoded, err := propertiesFromProto(object)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	}

	// servers before typed lists send generic values
	out := make([]interface{}, len(list.Values))
	for i, value := range list.Values {
		decoded, err := valueFromProto(value)
		if err != nil {
			return nil, err
		}
		out[i] = decoded
	}
	return out, nil
}

func parseDate(raw string) (time.Time, error) {
	parsed, err := strfmt.ParseDateTime(raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", raw)
	}
	return time.Time(parsed).UTC(), nil
}
