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
	"context"

	"google.golang.org/grpc/metadata"
)

// authHandler attaches credentials and additional headers to outgoing calls.
// It mirrors what the server reads: a bearer token in "authorization" and
// module api keys as plain headers.
type authHandler struct {
	apiKey  string
	headers map[string]string
}

func newAuthHandler(apiKey string, headers map[string]string) *authHandler {
	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}
	return &authHandler{apiKey: apiKey, headers: copied}
}

func (a *authHandler) outgoingContext(ctx context.Context) context.Context {
	pairs := make([]string, 0, 2*len(a.headers)+2)
	if a.apiKey != "" {
		pairs = append(pairs, "authorization", "Bearer "+a.apiKey)
	}
	for k, v := range a.headers {
		// the grpc library lowercases all md keys
		pairs = append(pairs, k, v)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}
