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

	"github.com/weaviate/weaviate-client-core/entities/crossref"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// nearArgument is one of the mutually exclusive near searches of a query.
type nearArgument interface {
	argumentName() string
	Validate() error
	String() string
}

type NearText struct {
	concepts      []string
	certainty     *float64
	distance      *float64
	moveTo        *searchparams.Move
	moveAwayFrom  *searchparams.Move
	autocorrect   *bool
	targetVectors *filters.TargetVectors
}

func NewNearText(concepts ...string) NearText {
	return NearText{concepts: append([]string{}, concepts...)}
}

func (n NearText) WithConcepts(concepts ...string) NearText {
	n.concepts = append([]string{}, concepts...)
	return n
}

func (n NearText) WithCertainty(certainty float64) NearText {
	n.certainty = &certainty
	return n
}

func (n NearText) WithDistance(distance float64) NearText {
	n.distance = &distance
	return n
}

// WithMoveTo moves the search towards concepts and objects. Objects are ids
// or beacons.
func (n NearText) WithMoveTo(move searchparams.Move) NearText {
	n.moveTo = copyMove(move)
	return n
}

func (n NearText) WithMoveAwayFrom(move searchparams.Move) NearText {
	n.moveAwayFrom = copyMove(move)
	return n
}

func (n NearText) WithAutocorrect(autocorrect bool) NearText {
	n.autocorrect = &autocorrect
	return n
}

func (n NearText) WithTargetVectors(tv *filters.TargetVectors) NearText {
	n.targetVectors = tv
	return n
}

func (n NearText) argumentName() string {
	return "nearText"
}

func (n NearText) Validate() error {
	if len(n.concepts) == 0 {
		return errors.NewGraphQLValidation("nearText", "nearText filter: concepts cannot be empty")
	}
	if err := validateMove("moveTo", n.moveTo); err != nil {
		return err
	}
	if err := validateMove("moveAwayFrom", n.moveAwayFrom); err != nil {
		return err
	}
	if err := validateCertaintyDistance("nearText", n.certainty, n.distance); err != nil {
		return err
	}
	return validateTargetVectors("nearText", n.targetVectors)
}

func validateMove(name string, move *searchparams.Move) error {
	if move == nil {
		return nil
	}
	if len(move.Concepts) == 0 && len(move.Objects) == 0 {
		return errors.NewGraphQLValidation("nearText",
			"nearText filter: %s.concepts or %s.objects must be present", name, name)
	}
	if move.Force == 0 {
		return errors.NewGraphQLValidation("nearText",
			"nearText filter: %s must have fields 'concepts' or 'objects' and 'force'", name)
	}
	return nil
}

func (n NearText) String() string {
	args := arguments{}
	args.add("concepts", quoteList(n.concepts))
	addCertaintyDistance(&args, n.certainty, n.distance)
	if n.moveTo != nil {
		args.add("moveTo", renderMove(n.moveTo))
	}
	if n.moveAwayFrom != nil {
		args.add("moveAwayFrom", renderMove(n.moveAwayFrom))
	}
	if n.autocorrect != nil {
		args.add("autocorrect", formatBool(*n.autocorrect))
	}
	addTargetVectors(&args, n.targetVectors)
	return args.object()
}

func (n NearText) Build() (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n.String(), nil
}

func copyMove(move searchparams.Move) *searchparams.Move {
	return &searchparams.Move{
		Force:    move.Force,
		Concepts: append([]string(nil), move.Concepts...),
		Objects:  append([]string(nil), move.Objects...),
	}
}

func renderMove(move *searchparams.Move) string {
	args := arguments{}
	if len(move.Concepts) > 0 {
		args.add("concepts", quoteList(move.Concepts))
	}
	if len(move.Objects) > 0 {
		objects := make([]string, len(move.Objects))
		for i, object := range move.Objects {
			ref := arguments{}
			if strings.HasPrefix(object, crossref.Scheme+"://") {
				ref.add("beacon", quote(object))
			} else {
				ref.add("id", quote(object))
			}
			objects[i] = ref.object()
		}
		args.add("objects", "["+strings.Join(objects, ",")+"]")
	}
	args.add("force", formatFloat32(move.Force))
	return args.object()
}

type NearVector struct {
	vector        searchparams.Vector
	certainty     *float64
	distance      *float64
	targetVectors *filters.TargetVectors
}

// NewNearVector searches with a dense vector or with named vectors, which
// are rendered as vectorPerTarget.
func NewNearVector(vector searchparams.Vector) NearVector {
	return NearVector{vector: copyVector(vector)}
}

func (n NearVector) WithCertainty(certainty float64) NearVector {
	n.certainty = &certainty
	return n
}

func (n NearVector) WithDistance(distance float64) NearVector {
	n.distance = &distance
	return n
}

func (n NearVector) WithTargetVectors(tv *filters.TargetVectors) NearVector {
	n.targetVectors = tv
	return n
}

func (n NearVector) argumentName() string {
	return "nearVector"
}

func (n NearVector) Validate() error {
	if n.vector.IsEmpty() {
		return errors.NewGraphQLValidation("nearVector", "nearVector filter: vector cannot be empty")
	}
	if err := validateCertaintyDistance("nearVector", n.certainty, n.distance); err != nil {
		return err
	}
	return validateTargetVectors("nearVector", n.targetVectors)
}

func (n NearVector) String() string {
	args := arguments{}
	if n.vector.IsDense() {
		args.add("vector", formatVector(n.vector.Dense))
	} else {
		perTarget := arguments{}
		for _, name := range n.vector.Names(n.targetVectors.Names()) {
			list := n.vector.ListFor(name)
			if _, multi := n.vector.NamedMulti[name]; !multi {
				perTarget.add(name, formatVector(list[0]))
				continue
			}
			vectors := make([]string, len(list))
			for i := range list {
				vectors[i] = formatVector(list[i])
			}
			perTarget.add(name, "["+strings.Join(vectors, ",")+"]")
		}
		args.add("vectorPerTarget", perTarget.object())
	}
	addCertaintyDistance(&args, n.certainty, n.distance)
	addTargetVectors(&args, n.targetVectors)
	return args.object()
}

func (n NearVector) Build() (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n.String(), nil
}

func copyVector(v searchparams.Vector) searchparams.Vector {
	switch {
	case v.NamedMulti != nil:
		return searchparams.NamedVectorLists(v.NamedMulti)
	case v.Named != nil:
		return searchparams.NamedVectors(v.Named)
	default:
		return searchparams.DenseVector(v.Dense)
	}
}

type NearObject struct {
	id            string
	beacon        string
	certainty     *float64
	distance      *float64
	targetVectors *filters.TargetVectors
}

func NewNearObject() NearObject {
	return NearObject{}
}

func (n NearObject) WithID(id string) NearObject {
	n.id = id
	return n
}

func (n NearObject) WithBeacon(beacon string) NearObject {
	n.beacon = beacon
	return n
}

func (n NearObject) WithCertainty(certainty float64) NearObject {
	n.certainty = &certainty
	return n
}

func (n NearObject) WithDistance(distance float64) NearObject {
	n.distance = &distance
	return n
}

func (n NearObject) WithTargetVectors(tv *filters.TargetVectors) NearObject {
	n.targetVectors = tv
	return n
}

func (n NearObject) argumentName() string {
	return "nearObject"
}

func (n NearObject) Validate() error {
	if n.id == "" && n.beacon == "" {
		return errors.NewGraphQLValidation("nearObject", "nearObject filter: id or beacon needs to be set")
	}
	if n.beacon != "" {
		if _, err := crossref.Parse(n.beacon); err != nil {
			return errors.NewGraphQLValidation("nearObject", "nearObject filter: %v", err)
		}
	}
	if err := validateCertaintyDistance("nearObject", n.certainty, n.distance); err != nil {
		return err
	}
	return validateTargetVectors("nearObject", n.targetVectors)
}

func (n NearObject) String() string {
	args := arguments{}
	if n.id != "" {
		args.add("id", quote(n.id))
	}
	if n.beacon != "" {
		args.add("beacon", quote(n.beacon))
	}
	addCertaintyDistance(&args, n.certainty, n.distance)
	addTargetVectors(&args, n.targetVectors)
	return args.object()
}

func (n NearObject) Build() (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n.String(), nil
}

// NearMedia searches with base64 encoded media: nearImage, nearAudio,
// nearVideo, nearThermal, nearDepth or nearIMU.
type NearMedia struct {
	media         searchparams.MediaType
	data          string
	certainty     *float64
	distance      *float64
	targetVectors *filters.TargetVectors
}

func NewNearMedia(media searchparams.MediaType, data string) NearMedia {
	return NearMedia{media: media, data: data}
}

func NewNearImage(image string) NearMedia {
	return NewNearMedia(searchparams.MediaImage, image)
}

func (n NearMedia) WithCertainty(certainty float64) NearMedia {
	n.certainty = &certainty
	return n
}

func (n NearMedia) WithDistance(distance float64) NearMedia {
	n.distance = &distance
	return n
}

func (n NearMedia) WithTargetVectors(tv *filters.TargetVectors) NearMedia {
	n.targetVectors = tv
	return n
}

func (n NearMedia) argumentName() string {
	return mediaArgument(n.media)
}

func (n NearMedia) Validate() error {
	switch n.media {
	case searchparams.MediaImage, searchparams.MediaAudio, searchparams.MediaVideo,
		searchparams.MediaThermal, searchparams.MediaDepth, searchparams.MediaIMU:
	default:
		return errors.NewGraphQLValidation("nearMedia", "unknown media type %q", n.media)
	}
	name := n.argumentName()
	if n.data == "" {
		return errors.NewGraphQLValidation(name, "%s filter: %s field must be present", name, n.media)
	}
	if err := validateCertaintyDistance(name, n.certainty, n.distance); err != nil {
		return err
	}
	return validateTargetVectors(name, n.targetVectors)
}

func (n NearMedia) String() string {
	args := arguments{}
	args.add(string(n.media), quote(n.data))
	addCertaintyDistance(&args, n.certainty, n.distance)
	addTargetVectors(&args, n.targetVectors)
	return args.object()
}

func (n NearMedia) Build() (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n.String(), nil
}
