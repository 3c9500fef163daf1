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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	"github.com/weaviate/weaviate-client-core/entities/crossref"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
)

// Serializer renders search option bags into search requests. It holds no
// state besides the logger and is safe for concurrent use.
type Serializer struct {
	logger logrus.FieldLogger
}

func NewSerializer(logger logrus.FieldLogger) *Serializer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Serializer{logger: logger}
}

// FetchObjects renders a search without a ranking argument.
func (s *Serializer) FetchObjects(collection string, caps *capabilities.Server,
	opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.request(collection, caps, opts)
}

// FetchObjectByID is a FetchObjects with an equality filter on the id and a
// limit of one.
func (s *Serializer) FetchObjectByID(collection string, caps *capabilities.Server, id string,
	opts searchparams.Common,
) (*pb.SearchRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewInvalidInput("id", "%q is not a valid uuid", id)
	}
	opts.Filters = filters.ByID().Equal(id)
	opts.Limit = 1
	opts.Offset = 0
	opts.Autocut = 0
	opts.After = ""
	opts.Sort = nil
	opts.GroupBy = nil
	return s.request(collection, caps, opts)
}

func (s *Serializer) BM25(collection string, caps *capabilities.Server,
	args searchparams.KeywordRanking, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}
	req.Bm25Search = &pb.BM25{
		Query:      args.Query,
		Properties: searchparams.QueryPropertyNames(args.Properties),
	}
	return req, nil
}

func (s *Serializer) Hybrid(collection string, caps *capabilities.Server,
	args searchparams.Hybrid, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}

	hybrid := &pb.Hybrid{
		Query:      args.Query,
		Properties: searchparams.QueryPropertyNames(args.Properties),
		Alpha:      args.AlphaOrDefault(),
	}
	switch args.Fusion {
	case searchparams.FusionRanked:
		hybrid.FusionType = pb.Hybrid_FUSION_TYPE_RANKED
	case searchparams.FusionRelativeScore:
		hybrid.FusionType = pb.Hybrid_FUSION_TYPE_RELATIVE_SCORE
	}

	if args.NearText != nil {
		hybrid.NearText, err = s.nearText(*args.NearText, caps)
		if err != nil {
			return nil, err
		}
	}
	if args.NearVector != nil {
		hybrid.NearVector, err = s.nearVector(*args.NearVector, caps)
		if err != nil {
			return nil, err
		}
	}

	if args.Vector != nil && !args.Vector.IsEmpty() {
		if args.Vector.IsDense() {
			hybrid.VectorBytes = EncodeVector(args.Vector.Dense)
		} else {
			// per-target vectors travel in a nested nearVector, the targets
			// stay on the hybrid message
			nearVector, err := s.nearVector(searchparams.NearVector{
				Vector: *args.Vector, TargetVectors: args.TargetVectors,
			}, caps)
			if err != nil {
				return nil, err
			}
			hybrid.Targets, hybrid.TargetVectors = nearVector.Targets, nearVector.TargetVectors
			nearVector.Targets, nearVector.TargetVectors = nil, nil
			hybrid.NearVector = nearVector
			req.HybridSearch = hybrid
			return req, nil
		}
	}

	hybrid.TargetVectors, hybrid.Targets, err = targetsOf(args.TargetVectors, caps)
	if err != nil {
		return nil, err
	}
	req.HybridSearch = hybrid
	return req, nil
}

func (s *Serializer) NearText(collection string, caps *capabilities.Server,
	args searchparams.NearText, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}
	req.NearText, err = s.nearText(args, caps)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Serializer) nearText(args searchparams.NearText, caps *capabilities.Server) (*pb.NearTextSearch, error) {
	out := &pb.NearTextSearch{
		Query:     append([]string{}, args.Query...),
		Certainty: args.Certainty,
		Distance:  args.Distance,
		MoveTo:    moveToProto(args.MoveTo),
		MoveAway:  moveToProto(args.MoveAway),
	}
	var err error
	out.TargetVectors, out.Targets, err = targetsOf(args.TargetVectors, caps)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func moveToProto(move *searchparams.Move) *pb.NearTextSearch_Move {
	if move == nil {
		return nil
	}
	return &pb.NearTextSearch_Move{
		Force:    move.Force,
		Concepts: append([]string(nil), move.Concepts...),
		Uuids:    append([]string(nil), move.Objects...),
	}
}

func (s *Serializer) NearObject(collection string, caps *capabilities.Server,
	args searchparams.NearObject, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}

	id := args.ID
	if id == "" && args.Beacon != "" {
		ref, err := crossref.Parse(args.Beacon)
		if err != nil {
			return nil, errors.NewInvalidInput("nearObject.beacon", "%v", err)
		}
		id = ref.TargetID.String()
	}
	if id == "" {
		return nil, errors.NewInvalidInput("nearObject", "id or beacon needs to be set")
	}

	nearObject := &pb.NearObject{Id: id, Certainty: args.Certainty, Distance: args.Distance}
	nearObject.TargetVectors, nearObject.Targets, err = targetsOf(args.TargetVectors, caps)
	if err != nil {
		return nil, err
	}
	req.NearObject = nearObject
	return req, nil
}

func (s *Serializer) NearVector(collection string, caps *capabilities.Server,
	args searchparams.NearVector, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}
	req.NearVector, err = s.nearVector(args, caps)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// nearVector fans per-target vectors out into one entry per vector. The
// target names follow the target-vector expression and fall back to sorted
// order, Targets.TargetVectors mirrors the fan-out.
func (s *Serializer) nearVector(args searchparams.NearVector, caps *capabilities.Server) (*pb.NearVector, error) {
	out := &pb.NearVector{Certainty: args.Certainty, Distance: args.Distance}

	if args.Vector.IsEmpty() {
		return nil, errors.NewEncoding("nearVector.vector", "the vector is empty")
	}
	if args.Vector.IsDense() {
		out.VectorBytes = EncodeVector(args.Vector.Dense)
		var err error
		out.TargetVectors, out.Targets, err = targetsOf(args.TargetVectors, caps)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	if !caps.Targets() {
		return nil, errors.NewUnsupportedFeature("named vectors in a vector search",
			"the server accepts a single vector only")
	}

	names := args.Vector.Names(args.TargetVectors.Names())
	wire, err := CompileTargets(args.TargetVectors, caps)
	if err != nil {
		return nil, err
	}
	targets := &pb.Targets{}
	if wire != nil && wire.Targets != nil {
		targets = wire.Targets
	}

	if caps.VectorsForTargets() {
		fanned := make([]string, 0, len(names))
		for _, name := range names {
			for _, vector := range args.Vector.ListFor(name) {
				out.VectorForTargets = append(out.VectorForTargets, &pb.VectorForTarget{
					Name:        name,
					VectorBytes: EncodeVector(vector),
				})
				fanned = append(fanned, name)
			}
		}
		targets.TargetVectors = fanned
		out.Targets = targets
		return out, nil
	}

	if args.Vector.HasLists() {
		return nil, errors.NewUnsupportedFeature("multiple vectors per target",
			"the server accepts one vector per target")
	}
	s.logger.WithField("action", "serialize_near_vector").
		Debug("using vector per target map for named vectors")
	out.VectorPerTarget = make(map[string][]byte, len(names))
	for _, name := range names {
		out.VectorPerTarget[name] = EncodeVector(args.Vector.ListFor(name)[0])
	}
	targets.TargetVectors = names
	out.Targets = targets
	return out, nil
}

func (s *Serializer) NearImage(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaImage, args, opts)
}

func (s *Serializer) NearAudio(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaAudio, args, opts)
}

func (s *Serializer) NearVideo(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaVideo, args, opts)
}

func (s *Serializer) NearDepth(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaDepth, args, opts)
}

func (s *Serializer) NearThermal(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaThermal, args, opts)
}

func (s *Serializer) NearIMU(collection string, caps *capabilities.Server,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	return s.nearMedia(collection, caps, searchparams.MediaIMU, args, opts)
}

func (s *Serializer) nearMedia(collection string, caps *capabilities.Server, media searchparams.MediaType,
	args searchparams.NearMedia, opts searchparams.Common,
) (*pb.SearchRequest, error) {
	if args.Media != "" && args.Media != media {
		return nil, errors.NewInvalidInput("near"+string(media),
			"got a %s search", args.Media)
	}
	if args.Data == "" {
		return nil, errors.NewInvalidInput("near"+string(media), "%s field must be present", media)
	}
	req, err := s.request(collection, caps, opts)
	if err != nil {
		return nil, err
	}
	targetVectors, targets, err := targetsOf(args.TargetVectors, caps)
	if err != nil {
		return nil, err
	}

	switch media {
	case searchparams.MediaImage:
		req.NearImage = &pb.NearImageSearch{Image: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	case searchparams.MediaAudio:
		req.NearAudio = &pb.NearAudioSearch{Audio: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	case searchparams.MediaVideo:
		req.NearVideo = &pb.NearVideoSearch{Video: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	case searchparams.MediaDepth:
		req.NearDepth = &pb.NearDepthSearch{Depth: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	case searchparams.MediaThermal:
		req.NearThermal = &pb.NearThermalSearch{Thermal: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	case searchparams.MediaIMU:
		req.NearImu = &pb.NearIMUSearch{Imu: args.Data, Certainty: args.Certainty,
			Distance: args.Distance, TargetVectors: targetVectors, Targets: targets}
	}
	return req, nil
}

// targetsOf splits compiled targets into the legacy list and the Targets
// message.
func targetsOf(tv *filters.TargetVectors, caps *capabilities.Server) ([]string, *pb.Targets, error) {
	wire, err := CompileTargets(tv, caps)
	if err != nil || wire == nil {
		return nil, nil, err
	}
	return wire.TargetVectors, wire.Targets, nil
}

// request renders the arguments every modality shares.
func (s *Serializer) request(collection string, caps *capabilities.Server,
	opts searchparams.Common,
) (*pb.SearchRequest, error) {
	if collection == "" {
		return nil, errors.NewInvalidInput("collection", "must be set")
	}

	req := &pb.SearchRequest{
		Collection:  collection,
		Tenant:      opts.Tenant,
		Limit:       opts.Limit,
		Offset:      opts.Offset,
		Autocut:     opts.Autocut,
		After:       opts.After,
		Uses_123Api: true,
		Uses_125Api: true,
		Uses_127Api: true,
	}

	var err error
	if req.Filters, err = CompileFilter(opts.Filters); err != nil {
		return nil, err
	}
	if req.Metadata, err = metadataRequest(opts.ReturnMetadata, opts.IncludeVector); err != nil {
		return nil, err
	}
	if req.Properties, err = propertiesRequest(opts.ReturnProperties, opts.ReturnObjects,
		opts.ReturnReferences); err != nil {
		return nil, err
	}
	if req.GroupBy, err = s.GroupBy(opts.GroupBy); err != nil {
		return nil, err
	}
	if req.Generative, err = s.Generative(opts.Generative, caps); err != nil {
		return nil, err
	}
	if req.ConsistencyLevel, err = consistencyLevel(opts.ConsistencyLevel); err != nil {
		return nil, err
	}

	for _, sort := range opts.Sort {
		if sort.Property == "" {
			return nil, errors.NewInvalidInput("sort", "property must be set")
		}
		req.SortBy = append(req.SortBy, &pb.SortBy{Ascending: sort.Ascending, Path: []string{sort.Property}})
	}

	if opts.Rerank != nil {
		if opts.Rerank.Property == "" {
			return nil, errors.NewInvalidInput("rerank.property", "must be set")
		}
		req.Rerank = &pb.Rerank{Property: opts.Rerank.Property}
		if opts.Rerank.Query != "" {
			query := opts.Rerank.Query
			req.Rerank.Query = &query
		}
	}

	return req, nil
}

func consistencyLevel(level searchparams.ConsistencyLevel) (*pb.ConsistencyLevel, error) {
	var out pb.ConsistencyLevel
	switch level {
	case searchparams.ConsistencyUnset:
		return nil, nil
	case searchparams.ConsistencyOne:
		out = pb.ConsistencyLevel_CONSISTENCY_LEVEL_ONE
	case searchparams.ConsistencyQuorum:
		out = pb.ConsistencyLevel_CONSISTENCY_LEVEL_QUORUM
	case searchparams.ConsistencyAll:
		out = pb.ConsistencyLevel_CONSISTENCY_LEVEL_ALL
	default:
		return nil, errors.NewInvalidInput("consistencyLevel", "unknown level %q", level)
	}
	return &out, nil
}
