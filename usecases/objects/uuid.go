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

package objects

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// GenerateUUID5 derives a deterministic object id from identifier, for
// example a natural key. namespace is prepended to the identifier.
func GenerateUUID5(identifier, namespace string) strfmt.UUID {
	return strfmt.UUID(uuid.NewSHA1(uuid.NameSpaceDNS, []byte(namespace+identifier)).String())
}
