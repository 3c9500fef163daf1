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

package config

import (
	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"

	"github.com/weaviate/weaviate-client-core/entities/capabilities"
)

var (
	targetsSince    = version.Must(version.NewVersion("1.26.0"))
	perTargetSince  = version.Must(version.NewVersion("1.27.0"))
	generativeSince = version.Must(version.NewVersion("1.30.0"))
)

// CapabilitiesForVersion derives the wire features of a server from its
// version. Pre-releases count as the release they lead up to.
func CapabilitiesForVersion(serverVersion string) (*capabilities.Server, error) {
	v, err := version.NewVersion(serverVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "parse server version %q", serverVersion)
	}
	core := v.Core()
	return &capabilities.Server{
		SupportsTargets:                 core.GreaterThanOrEqual(targetsSince),
		SupportsVectorsForTargets:       core.GreaterThanOrEqual(perTargetSince),
		SupportsWeightsForTargets:       core.GreaterThanOrEqual(perTargetSince),
		SupportsSingleGroupedGenerative: core.GreaterThanOrEqual(generativeSince),
	}, nil
}
