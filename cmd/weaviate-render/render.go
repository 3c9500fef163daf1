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

package main

import (
	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"

	"github.com/weaviate/weaviate-client-core/adapters/graphql"
	grpcv1 "github.com/weaviate/weaviate-client-core/adapters/grpc/v1"
	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// renderer turns query documents into either wire format.
type renderer struct {
	caps       *capabilities.Server
	serializer *grpcv1.Serializer
	beacons    func(defaultCollection string) crossref.Builder
}

// additionalFields maps metadata names onto the graphql _additional
// selection. The id is always selected.
func additionalFields(metadata []string, includeVector bool) []string {
	fields := []string{"id"}
	for _, name := range metadata {
		switch searchparams.MetadataField(name) {
		case searchparams.MetadataAll:
			fields = append(fields, "creationTimeUnix", "lastUpdateTimeUnix", "distance",
				"certainty", "score", "explainScore", "isConsistent")
		case searchparams.MetadataCreationTime:
			fields = append(fields, "creationTimeUnix")
		case searchparams.MetadataUpdateTime:
			fields = append(fields, "lastUpdateTimeUnix")
		default:
			fields = append(fields, name)
		}
	}
	if includeVector {
		fields = append(fields, "vector")
	}
	return fields
}

func (r renderer) nearObjectTarget(collection string, d *nearObjectDocument) (id, beacon string) {
	if d.Collection != "" && d.Beacon == "" {
		return "", string(r.beacons(collection).Beacon(d.Collection, strfmt.UUID(d.ID)))
	}
	return d.ID, d.Beacon
}

func (r renderer) graphQL(doc *queryDocument) (string, error) {
	opts, err := doc.common()
	if err != nil {
		return "", err
	}

	getter := graphql.NewGetter(doc.Collection).
		WithFields(doc.Properties...).
		WithAdditional(additionalFields(doc.Metadata, doc.IncludeVector)...)
	if opts.Filters != nil {
		getter = getter.WithWhere(graphql.NewWhere(opts.Filters))
	}
	if doc.Limit > 0 {
		getter = getter.WithLimit(int(doc.Limit))
	}
	if doc.Offset > 0 {
		getter = getter.WithOffset(int(doc.Offset))
	}
	if doc.Autocut > 0 {
		getter = getter.WithAutocut(int(doc.Autocut))
	}
	if len(opts.Sort) > 0 {
		sorts := make([]graphql.Sort, len(opts.Sort))
		for i, by := range opts.Sort {
			sorts[i] = graphql.SortFrom(by)
		}
		getter = getter.WithSort(sorts...)
	}
	if doc.After != "" {
		getter = getter.WithAfter(doc.After)
	}
	if opts.ConsistencyLevel != searchparams.ConsistencyUnset {
		getter = getter.WithConsistencyLevel(opts.ConsistencyLevel)
	}
	if doc.Tenant != "" {
		getter = getter.WithTenant(doc.Tenant)
	}
	if g := doc.GroupBy; g != nil {
		getter = getter.WithGroupBy(graphql.NewGroupBy(g.Property).
			WithGroups(int(g.Groups)).
			WithObjectsPerGroup(int(g.ObjectsPerGroup)))
	}
	if g := doc.Generate; g != nil {
		generate := graphql.NewGenerate()
		if g.SinglePrompt != "" {
			generate = generate.WithSinglePrompt(g.SinglePrompt)
		}
		if g.GroupedTask != "" {
			generate = generate.WithGroupedTask(g.GroupedTask, g.GroupedProperties...)
		}
		getter = getter.WithGenerate(generate)
	}

	getter, err = r.graphQLSearch(getter, doc)
	if err != nil {
		return "", err
	}
	return getter.Build()
}

func (r renderer) graphQLSearch(getter graphql.Getter, doc *queryDocument) (graphql.Getter, error) {
	switch {
	case doc.NearText != nil:
		d := doc.NearText
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return getter, errors.Wrap(err, "near_text")
		}
		near := graphql.NewNearText(d.Concepts...).WithTargetVectors(tv)
		if d.Certainty != nil {
			near = near.WithCertainty(*d.Certainty)
		}
		if d.Distance != nil {
			near = near.WithDistance(*d.Distance)
		}
		if d.MoveTo != nil {
			near = near.WithMoveTo(*d.MoveTo.move())
		}
		if d.MoveAwayFrom != nil {
			near = near.WithMoveAwayFrom(*d.MoveAwayFrom.move())
		}
		return getter.WithNearText(near)

	case doc.NearVector != nil:
		d := doc.NearVector
		vector, err := d.vector()
		if err != nil {
			return getter, err
		}
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return getter, errors.Wrap(err, "near_vector")
		}
		near := graphql.NewNearVector(vector).WithTargetVectors(tv)
		if d.Certainty != nil {
			near = near.WithCertainty(*d.Certainty)
		}
		if d.Distance != nil {
			near = near.WithDistance(*d.Distance)
		}
		return getter.WithNearVector(near)

	case doc.NearObject != nil:
		d := doc.NearObject
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return getter, errors.Wrap(err, "near_object")
		}
		near := graphql.NewNearObject().WithTargetVectors(tv)
		id, beacon := r.nearObjectTarget(doc.Collection, d)
		if id != "" {
			near = near.WithID(id)
		}
		if beacon != "" {
			near = near.WithBeacon(beacon)
		}
		if d.Certainty != nil {
			near = near.WithCertainty(*d.Certainty)
		}
		if d.Distance != nil {
			near = near.WithDistance(*d.Distance)
		}
		return getter.WithNearObject(near)

	case doc.NearMedia != nil:
		d := doc.NearMedia
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return getter, errors.Wrap(err, "near_media")
		}
		near := graphql.NewNearMedia(searchparams.MediaType(d.Media), d.Data).WithTargetVectors(tv)
		if d.Certainty != nil {
			near = near.WithCertainty(*d.Certainty)
		}
		if d.Distance != nil {
			near = near.WithDistance(*d.Distance)
		}
		return getter.WithNearMedia(near)

	case doc.BM25 != nil:
		props, err := queryProperties(doc.BM25.Properties)
		if err != nil {
			return getter, errors.Wrap(err, "bm25")
		}
		return getter.WithBM25(graphql.NewBM25(doc.BM25.Query).WithProperties(props...)), nil

	case doc.Hybrid != nil:
		d := doc.Hybrid
		props, err := queryProperties(d.Properties)
		if err != nil {
			return getter, errors.Wrap(err, "hybrid")
		}
		fusion, err := fusionType(d.Fusion)
		if err != nil {
			return getter, errors.Wrap(err, "hybrid")
		}
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return getter, errors.Wrap(err, "hybrid")
		}
		hybrid := graphql.NewHybrid(d.Query).
			WithProperties(props...).
			WithFusionType(fusion).
			WithTargetVectors(tv)
		if d.Alpha != nil {
			hybrid = hybrid.WithAlpha(*d.Alpha)
		}
		if d.Vector != nil {
			hybrid = hybrid.WithVector(d.Vector)
		}
		return getter.WithHybrid(hybrid), nil
	}
	return getter, nil
}

type mediaSearch func(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common) (*pb.SearchRequest, error)

func (r renderer) mediaSearch(media searchparams.MediaType) (mediaSearch, bool) {
	searches := map[searchparams.MediaType]mediaSearch{
		searchparams.MediaImage:   r.serializer.NearImage,
		searchparams.MediaAudio:   r.serializer.NearAudio,
		searchparams.MediaVideo:   r.serializer.NearVideo,
		searchparams.MediaDepth:   r.serializer.NearDepth,
		searchparams.MediaThermal: r.serializer.NearThermal,
		searchparams.MediaIMU:     r.serializer.NearIMU,
	}
	search, ok := searches[media]
	return search, ok
}

func (r renderer) grpc(doc *queryDocument) (*pb.SearchRequest, error) {
	opts, err := doc.common()
	if err != nil {
		return nil, err
	}

	switch {
	case doc.NearText != nil:
		d := doc.NearText
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return nil, errors.Wrap(err, "near_text")
		}
		return r.serializer.NearText(doc.Collection, r.caps, searchparams.NearText{
			Query:         d.Concepts,
			Certainty:     d.Certainty,
			Distance:      d.Distance,
			MoveTo:        d.MoveTo.move(),
			MoveAway:      d.MoveAwayFrom.move(),
			TargetVectors: tv,
		}, opts)

	case doc.NearVector != nil:
		d := doc.NearVector
		vector, err := d.vector()
		if err != nil {
			return nil, err
		}
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return nil, errors.Wrap(err, "near_vector")
		}
		return r.serializer.NearVector(doc.Collection, r.caps, searchparams.NearVector{
			Vector:        vector,
			Certainty:     d.Certainty,
			Distance:      d.Distance,
			TargetVectors: tv,
		}, opts)

	case doc.NearObject != nil:
		d := doc.NearObject
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return nil, errors.Wrap(err, "near_object")
		}
		id, beacon := r.nearObjectTarget(doc.Collection, d)
		return r.serializer.NearObject(doc.Collection, r.caps, searchparams.NearObject{
			ID:            id,
			Beacon:        beacon,
			Certainty:     d.Certainty,
			Distance:      d.Distance,
			TargetVectors: tv,
		}, opts)

	case doc.NearMedia != nil:
		d := doc.NearMedia
		media := searchparams.MediaType(d.Media)
		search, ok := r.mediaSearch(media)
		if !ok {
			return nil, errors.Errorf("near_media: unknown media type %q", d.Media)
		}
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return nil, errors.Wrap(err, "near_media")
		}
		return search(doc.Collection, r.caps, searchparams.NearMedia{
			Media:         media,
			Data:          d.Data,
			Certainty:     d.Certainty,
			Distance:      d.Distance,
			TargetVectors: tv,
		}, opts)

	case doc.BM25 != nil:
		props, err := queryProperties(doc.BM25.Properties)
		if err != nil {
			return nil, errors.Wrap(err, "bm25")
		}
		return r.serializer.BM25(doc.Collection, r.caps, searchparams.KeywordRanking{
			Query:      doc.BM25.Query,
			Properties: props,
		}, opts)

	case doc.Hybrid != nil:
		d := doc.Hybrid
		props, err := queryProperties(d.Properties)
		if err != nil {
			return nil, errors.Wrap(err, "hybrid")
		}
		fusion, err := fusionType(d.Fusion)
		if err != nil {
			return nil, errors.Wrap(err, "hybrid")
		}
		tv, err := d.TargetVectors.targetVectors()
		if err != nil {
			return nil, errors.Wrap(err, "hybrid")
		}
		args := searchparams.Hybrid{
			Query:         d.Query,
			Alpha:         d.Alpha,
			Properties:    props,
			Fusion:        fusion,
			TargetVectors: tv,
		}
		if d.Vector != nil {
			vector := searchparams.DenseVector(d.Vector)
			args.Vector = &vector
		}
		return r.serializer.Hybrid(doc.Collection, r.caps, args, opts)
	}

	return r.serializer.FetchObjects(doc.Collection, r.caps, opts)
}
