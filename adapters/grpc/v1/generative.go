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
	"github.com/go-openapi/swag"
	"github.com/weaviate/weaviate-client-core/entities/capabilities"
	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
	pb "github.com/weaviate/weaviate/grpc/generated/protocol/v1"
)

// Generative renders the generative argument. Servers with single and
// grouped generative support get the Single and Grouped messages, older
// servers the flat prompt fields with Single and Grouped left nil.
func (s *Serializer) Generative(g *searchparams.Generative, caps *capabilities.Server) (*pb.GenerativeSearch, error) {
	if g == nil {
		return nil, nil
	}
	if !g.HasSingle() && !g.HasGrouped() {
		return nil, errors.NewInvalidInput("generative", "needs a single prompt or a grouped task")
	}

	if !caps.SingleGroupedGenerative() {
		if g.Provider != nil {
			return nil, errors.NewUnsupportedFeature("generative provider overrides",
				"the server only accepts the collection's generative module")
		}
		s.logger.WithField("action", "serialize_generative").
			Debug("using legacy generative prompt fields")
		return &pb.GenerativeSearch{
			SingleResponsePrompt: g.SinglePrompt,
			GroupedResponseTask:  g.GroupedTask,
			GroupedProperties:    append([]string(nil), g.GroupedProperties...),
		}, nil
	}

	var queries []*pb.GenerativeProvider
	if g.Provider != nil {
		provider, err := generativeProvider(g.Provider)
		if err != nil {
			return nil, err
		}
		queries = []*pb.GenerativeProvider{provider}
	}

	out := &pb.GenerativeSearch{}
	if g.HasSingle() {
		out.Single = &pb.GenerativeSearch_Single{
			Prompt:  g.SinglePrompt,
			Debug:   g.SingleDebug,
			Queries: queries,
		}
	}
	if g.HasGrouped() {
		out.Grouped = &pb.GenerativeSearch_Grouped{
			Task:    g.GroupedTask,
			Queries: queries,
		}
		if g.GroupedProperties != nil {
			out.Grouped.Properties = &pb.TextArray{Values: append([]string{}, g.GroupedProperties...)}
		}
	}
	return out, nil
}

func generativeProvider(p *searchparams.GenerativeProvider) (*pb.GenerativeProvider, error) {
	out := &pb.GenerativeProvider{ReturnMetadata: p.ReturnMetadata}
	switch p.Kind {
	case searchparams.GenerativeOpenAI:
		out.Kind = &pb.GenerativeProvider_Openai{Openai: &pb.GenerativeOpenAI{
			Model:       optionalString(p.Model),
			MaxTokens:   p.MaxTokens,
			Temperature: p.Temperature,
		}}
	case searchparams.GenerativeAnthropic:
		out.Kind = &pb.GenerativeProvider_Anthropic{Anthropic: &pb.GenerativeAnthropic{
			Model:       optionalString(p.Model),
			MaxTokens:   p.MaxTokens,
			Temperature: p.Temperature,
		}}
	case searchparams.GenerativeGoogle:
		out.Kind = &pb.GenerativeProvider_Google{Google: &pb.GenerativeGoogle{
			Model:       optionalString(p.Model),
			MaxTokens:   p.MaxTokens,
			Temperature: p.Temperature,
		}}
	case searchparams.GenerativeOllama:
		out.Kind = &pb.GenerativeProvider_Ollama{Ollama: &pb.GenerativeOllama{
			ApiEndpoint: optionalString(p.APIEndpoint),
			Model:       optionalString(p.Model),
		}}
	default:
		return nil, errors.NewInvalidInput("generative.provider", "unknown provider %q", p.Kind)
	}
	return out, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return swag.String(s)
}
