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

import "github.com/weaviate/weaviate-client-core/entities/errors"

// Ask runs a question answering search, the qna module answers from the
// given properties.
type Ask struct {
	question    string
	properties  []string
	certainty   *float64
	distance    *float64
	autocorrect *bool
	rerank      *bool
}

func NewAsk(question string) Ask {
	return Ask{question: question}
}

func (a Ask) WithProperties(properties ...string) Ask {
	a.properties = append([]string{}, properties...)
	return a
}

func (a Ask) WithCertainty(certainty float64) Ask {
	a.certainty = &certainty
	return a
}

func (a Ask) WithDistance(distance float64) Ask {
	a.distance = &distance
	return a
}

func (a Ask) WithAutocorrect(autocorrect bool) Ask {
	a.autocorrect = &autocorrect
	return a
}

func (a Ask) WithRerank(rerank bool) Ask {
	a.rerank = &rerank
	return a
}

func (a Ask) argumentName() string {
	return "ask"
}

func (a Ask) Validate() error {
	if a.question == "" {
		return errors.NewGraphQLValidation("ask", "ask filter: question needs to be set")
	}
	return validateCertaintyDistance("ask", a.certainty, a.distance)
}

func (a Ask) String() string {
	args := arguments{}
	args.add("question", quote(a.question))
	if len(a.properties) > 0 {
		args.add("properties", quoteList(a.properties))
	}
	addCertaintyDistance(&args, a.certainty, a.distance)
	if a.autocorrect != nil {
		args.add("autocorrect", formatBool(*a.autocorrect))
	}
	if a.rerank != nil {
		args.add("rerank", formatBool(*a.rerank))
	}
	return args.object()
}

func (a Ask) Build() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a.String(), nil
}
