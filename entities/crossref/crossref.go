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

package crossref

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	// Scheme of every beacon URI.
	Scheme = "weaviate"
	// DefaultHost is the peer name the server uses for its own objects.
	DefaultHost = "localhost"
)

// Ref is an abstraction of the cross-refs which are specified in a URI format
// in the API. When this type is used it is safe to assume that a Ref is
// semantically correct.
type Ref struct {
	PeerName string
	TargetID strfmt.UUID
	// Class is empty for beacons that only carry an id.
	Class string
}

// Parse is used to transform a beacon string into a Ref. Only the shape is
// checked, ids are not required to be UUIDs.
func Parse(uriString string) (*Ref, error) {
	uri, err := url.Parse(uriString)
	if err != nil || uri.Path == "" {
		return nil, errors.Errorf("invalid cref URI: %s", uriString)
	}
	if uri.Scheme != Scheme {
		return nil, errors.Errorf("invalid cref URI: scheme must be %q, got %q", Scheme, uri.Scheme)
	}

	pathSegments := strings.Split(strings.TrimPrefix(uri.Path, "/"), "/")
	ref := &Ref{PeerName: uri.Host}
	switch len(pathSegments) {
	case 1:
		ref.TargetID = strfmt.UUID(pathSegments[0])
	case 2:
		ref.Class = pathSegments[0]
		ref.TargetID = strfmt.UUID(pathSegments[1])
	default:
		return nil, errors.Errorf(
			"invalid cref URI: path must be of format '<class>/<uuid>' or '<uuid>', but got '%s'",
			uri.Path)
	}
	if ref.TargetID == "" || (len(pathSegments) == 2 && ref.Class == "") {
		return nil, errors.Errorf("invalid cref URI: empty path segment in '%s'", uri.Path)
	}

	return ref, nil
}

// ParseSingleRef is a safe way to generate a Ref, as it will error if any of
// the required fields are not set.
func ParseSingleRef(singleRef *models.SingleRef) (*Ref, error) {
	if singleRef == nil {
		return nil, errors.New("cannot parse a nil reference")
	}
	return Parse(string(singleRef.Beacon))
}

// String returns the beacon URI of the reference.
func (r *Ref) String() string {
	path := string(r.TargetID)
	if r.Class != "" {
		path = r.Class + "/" + path
	}
	uri := url.URL{
		Host:   r.PeerName,
		Scheme: Scheme,
		Path:   "/" + path,
	}

	return uri.String()
}

// SingleRef converts the parsed Ref back into the API's SingleRef
func (r *Ref) SingleRef() *models.SingleRef {
	return &models.SingleRef{
		Beacon: strfmt.URI(r.String()),
	}
}

// Builder renders beacons for one client configuration. Host is the peer
// name (usually "localhost"), DefaultCollection is the collection that
// single-target references point to.
type Builder struct {
	Host              string
	DefaultCollection string
}

// NewBuilder returns a Builder for host, falling back to DefaultHost.
func NewBuilder(host, defaultCollection string) Builder {
	if host == "" {
		host = DefaultHost
	}
	return Builder{Host: host, DefaultCollection: defaultCollection}
}

func (b Builder) host() string {
	if b.Host == "" {
		return DefaultHost
	}
	return b.Host
}

// Beacon renders the beacon for id. The collection segment is written only
// when targetCollection is set and differs from the default collection.
func (b Builder) Beacon(targetCollection string, id strfmt.UUID) strfmt.URI {
	if targetCollection == "" || targetCollection == b.DefaultCollection {
		return strfmt.URI(fmt.Sprintf("%s://%s/%s", Scheme, b.host(), id))
	}
	return b.MultiTargetBeacon(targetCollection, id)
}

// MultiTargetBeacon always renders the collection segment.
func (b Builder) MultiTargetBeacon(targetCollection string, id strfmt.UUID) strfmt.URI {
	return strfmt.URI(fmt.Sprintf("%s://%s/%s/%s", Scheme, b.host(), targetCollection, id))
}

// Beacons expands the references into one SingleRef per id, in reference
// order and then id order.
func (b Builder) Beacons(refs ...*Reference) models.MultipleRef {
	out := models.MultipleRef{}
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		for _, id := range ref.UUIDs {
			var beacon strfmt.URI
			if ref.MultiTarget {
				beacon = b.MultiTargetBeacon(ref.TargetCollection, id)
			} else {
				beacon = b.Beacon(ref.TargetCollection, id)
			}
			out = append(out, &models.SingleRef{Beacon: beacon})
		}
	}
	return out
}

// Reference designates the objects a reference property points to.
type Reference struct {
	TargetCollection string
	UUIDs            []strfmt.UUID
	MultiTarget      bool
}

// ReferenceTo points to objects of the default collection.
func ReferenceTo(ids ...string) *Reference {
	return &Reference{UUIDs: toUUIDs(ids)}
}

// ReferenceToMultiTarget points to objects of targetCollection on a
// multi-target reference property.
func ReferenceToMultiTarget(targetCollection string, ids ...string) *Reference {
	return &Reference{TargetCollection: targetCollection, UUIDs: toUUIDs(ids), MultiTarget: true}
}

func toUUIDs(ids []string) []strfmt.UUID {
	out := make([]strfmt.UUID, len(ids))
	for i, id := range ids {
		out[i] = strfmt.UUID(id)
	}
	return out
}
