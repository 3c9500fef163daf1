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

package schema

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// FormatDate renders a date the way the server expects it in filters and
// properties: RFC 3339 in UTC with millisecond precision.
func FormatDate(t time.Time) string {
	return strfmt.DateTime(t.UTC()).String()
}
