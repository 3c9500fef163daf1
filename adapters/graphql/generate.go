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

	"github.com/weaviate/weaviate-client-core/entities/errors"
)

// Generate renders the generate field of _additional. Prompts are block
// strings, so they may contain quotes.
type Generate struct {
	singlePrompt      string
	groupedTask       string
	groupedProperties []string
}

func NewGenerate() Generate {
	return Generate{}
}

func (g Generate) WithSinglePrompt(prompt string) Generate {
	g.singlePrompt = prompt
	return g
}

func (g Generate) WithGroupedTask(task string, properties ...string) Generate {
	g.groupedTask = task
	g.groupedProperties = append([]string(nil), properties...)
	return g
}

func (g Generate) Validate() error {
	if g.singlePrompt == "" && g.groupedTask == "" {
		return errors.NewGraphQLValidation("generate", "generate: needs a single prompt or a grouped task")
	}
	return nil
}

func (g Generate) String() string {
	args := arguments{}
	fields := []string{}
	if g.singlePrompt != "" {
		single := arguments{}
		single.add("prompt", blockQuote(g.singlePrompt))
		args.add("singleResult", single.object())
		fields = append(fields, "singleResult")
	}
	if g.groupedTask != "" {
		grouped := arguments{}
		grouped.add("task", blockQuote(g.groupedTask))
		if len(g.groupedProperties) > 0 {
			grouped.add("properties", quoteList(g.groupedProperties))
		}
		args.add("groupedResult", grouped.object())
		fields = append(fields, "groupedResult")
	}
	fields = append(fields, "error")
	return "generate(" + args.list() + "){" + strings.Join(fields, " ") + "}"
}

func (g Generate) Build() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g.String(), nil
}
