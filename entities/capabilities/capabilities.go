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

package capabilities

// Server describes which request shapes the connected server understands.
// It is derived once from the negotiated server version by the connection
// layer; serializers branch on these flags only and never on a version.
type Server struct {
	// SupportsTargets: target vectors are sent as a Targets message
	// (combination method, weights) instead of a plain list of names.
	SupportsTargets bool
	// SupportsVectorsForTargets: per-target vectors are sent as an ordered
	// list of (name, vector) pairs, allowing several vectors per target.
	SupportsVectorsForTargets bool
	// SupportsWeightsForTargets: weights are sent as an ordered list of
	// (target, weight) pairs, allowing several weights per target.
	SupportsWeightsForTargets bool
	// SupportsSingleGroupedGenerative: generative arguments use the
	// single/grouped sub-messages with per-request provider settings.
	SupportsSingleGroupedGenerative bool
}

// All returns a descriptor for a server that supports every known feature.
func All() *Server {
	return &Server{
		SupportsTargets:                 true,
		SupportsVectorsForTargets:       true,
		SupportsWeightsForTargets:       true,
		SupportsSingleGroupedGenerative: true,
	}
}

// None returns a descriptor for a server that supports none of the optional
// features.
func None() *Server {
	return &Server{}
}

// orNone makes a nil descriptor behave like the oldest server.
func (s *Server) orNone() *Server {
	if s == nil {
		return None()
	}
	return s
}

func (s *Server) Targets() bool {
	return s.orNone().SupportsTargets
}

func (s *Server) VectorsForTargets() bool {
	return s.orNone().SupportsVectorsForTargets
}

func (s *Server) WeightsForTargets() bool {
	return s.orNone().SupportsWeightsForTargets
}

func (s *Server) SingleGroupedGenerative() bool {
	return s.orNone().SupportsSingleGroupedGenerative
}
