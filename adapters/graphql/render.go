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

// Package graphql renders the arguments of GraphQL Get queries. Builders are
// values: every With method returns a modified copy, Validate reports the
// first invalid combination and String renders the argument fragment.
package graphql

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/weaviate/weaviate-client-core/entities/errors"
	"github.com/weaviate/weaviate-client-core/entities/filters"
	"github.com/weaviate/weaviate-client-core/entities/searchparams"
)

// quote renders s as a GraphQL string literal.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// blockQuote renders s as a GraphQL block string. Line breaks are folded
// into spaces.
func blockQuote(s string) string {
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }), " ")
	return `"""` + strings.ReplaceAll(s, `"""`, `\"""`) + `"""`
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatVector(v []float32) string {
	values := make([]string, len(v))
	for i := range v {
		values[i] = formatFloat32(v[i])
	}
	return "[" + strings.Join(values, ",") + "]"
}

// arguments collects name:value pairs in insertion order.
type arguments []string

func (a *arguments) add(name, value string) {
	*a = append(*a, name+":"+value)
}

func (a arguments) object() string {
	return "{" + strings.Join(a, ",") + "}"
}

func (a arguments) list() string {
	return strings.Join(a, ",")
}

func addCertaintyDistance(args *arguments, certainty, distance *float64) {
	if certainty != nil {
		args.add("certainty", formatFloat(*certainty))
	}
	if distance != nil {
		args.add("distance", formatFloat(*distance))
	}
}

func validateCertaintyDistance(argument string, certainty, distance *float64) error {
	if certainty != nil && distance != nil {
		return errors.NewGraphQLValidation(argument, "%s filter: cannot provide distance and certainty", argument)
	}
	return nil
}

// addTargetVectors renders a bare list of names as targetVectors and every
// other expression as targets.
func addTargetVectors(args *arguments, tv *filters.TargetVectors) {
	if tv == nil || len(tv.Targets) == 0 {
		return
	}
	if tv.IsNamesOnly() {
		args.add("targetVectors", quoteList(tv.Names()))
		return
	}

	targets := arguments{}
	targets.add("targetVectors", quoteList(tv.Names()))
	if tv.Combination != filters.CombinationUnspecified {
		targets.add("combinationMethod", tv.Combination.String())
	}
	weights := arguments{}
	for _, target := range tv.Targets {
		switch len(target.Weights) {
		case 0:
		case 1:
			weights.add(target.Name, formatFloat32(target.Weights[0]))
		default:
			weights.add(target.Name, formatVector(target.Weights))
		}
	}
	if len(weights) > 0 {
		targets.add("weights", weights.object())
	}
	args.add("targets", targets.object())
}

func validateTargetVectors(argument string, tv *filters.TargetVectors) error {
	if tv == nil {
		return nil
	}
	if len(tv.Targets) == 0 {
		return errors.NewGraphQLValidation(argument, "%s filter: targetVectors cannot be empty", argument)
	}
	if tv.Combination == filters.CombinationMaximum {
		return errors.NewGraphQLValidation(argument,
			"%s filter: combination method maximum is not supported", argument)
	}
	return nil
}

func mediaArgument(media searchparams.MediaType) string {
	switch media {
	case searchparams.MediaIMU:
		return "nearIMU"
	default:
		name := string(media)
		if name == "" {
			return "nearMedia"
		}
		return "near" + strings.ToUpper(name[:1]) + name[1:]
	}
}
