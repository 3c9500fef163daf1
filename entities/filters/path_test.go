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

package filters

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RefPaths(t *testing.T) {
	t.Run("with a primitive prop", func(t *testing.T) {
		expectedPath := &Path{
			Property: "population",
		}

		path := ByProperty("population").Path()

		assert.Equal(t, expectedPath, path, "should build the path correctly")
	})

	t.Run("with nested refs", func(t *testing.T) {
		expectedPath := &Path{
			Property: "inCountry",
			Child: &Path{
				Class:    "Country",
				Property: "inContinent",
				Child: &Path{
					Class:    "Continent",
					Property: "onPlanet",
					Child: &Path{
						Class:    "Planet",
						Property: "name",
					},
				},
			},
		}

		path := ByRefMultiTarget("inCountry", "Country").
			ByRefMultiTarget("inContinent", "Continent").
			ByRefMultiTarget("onPlanet", "Planet").
			ByProperty("name").Path()

		assert.Equal(t, expectedPath, path, "should build the path correctly")
	})

	t.Run("with a ref count", func(t *testing.T) {
		expectedPath := &Path{
			Property: "hasWritten",
			Child: &Path{
				Property: "cites",
				Count:    true,
			},
		}

		path := ByRef("hasWritten").ByRefCount("cites").Path()

		assert.Equal(t, expectedPath, path)
	})

	t.Run("builders do not share state", func(t *testing.T) {
		base := ByRef("hasWritten")
		first := base.ByProperty("title").Path()
		second := base.ByRef("cites").ByProperty("year").Path()

		assert.Equal(t, "title", first.Child.Property)
		assert.Nil(t, first.Child.Child)
		assert.Equal(t, "cites", second.Child.Property)
		assert.Equal(t, "year", second.Child.Child.Property)
	})
}

func Test_SlicePath(t *testing.T) {
	t.Run("with a primitive prop", func(t *testing.T) {
		path := &Path{
			Property: "population",
		}
		expectedSegments := []string{"population"}

		segments, err := path.Slice()

		require.Nil(t, err)
		assert.Equal(t, expectedSegments, segments, "should slice the path correctly")
	})

	t.Run("with nested refs", func(t *testing.T) {
		path := ByRefMultiTarget("inCountry", "Country").
			ByRefMultiTarget("inContinent", "Continent").
			ByProperty("name").Path()
		expectedSegments := []string{"inCountry", "Country", "inContinent", "Continent", "name"}

		segments, err := path.Slice()

		require.Nil(t, err)
		assert.Equal(t, expectedSegments, segments, "should slice the path correctly")
	})

	t.Run("with a single target ref", func(t *testing.T) {
		_, err := ByRef("inCountry").ByProperty("name").Path().Slice()

		assert.EqualError(t, err, `reference "inCountry" needs a target collection to be used in a GraphQL path`)
		assert.Contains(t, fmt.Sprintf("%+v", err), "filters.(*Path).Slice")
	})
}

func Test_PathString(t *testing.T) {
	assert.Equal(t, "len(name)", ByPropertyLength("name").Path().String())
	assert.Equal(t, "inCountry.Country:name",
		ByRefMultiTarget("inCountry", "Country").ByProperty("name").Path().String())
	assert.Equal(t, "cites#count", ByRefCount("cites").Path().String())
	assert.Equal(t, "", (*Path)(nil).String())
}
