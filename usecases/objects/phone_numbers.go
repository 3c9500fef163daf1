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
	"github.com/nyaruka/phonenumbers"
	"github.com/pkg/errors"
	"github.com/weaviate/weaviate/entities/models"
)

// ParsePhoneNumber expands a phone number the way the server stores it.
// defaultCountry is an ISO 3166-1 alpha-2 code and only needed when input
// has no international prefix.
func ParsePhoneNumber(input, defaultCountry string) (*models.PhoneNumber, error) {
	num, err := phonenumbers.Parse(input, defaultCountry)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid phone number %q", input)
	}

	return &models.PhoneNumber{
		National:               num.GetNationalNumber(),
		CountryCode:            uint64(num.GetCountryCode()),
		InternationalFormatted: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		NationalFormatted:      phonenumbers.Format(num, phonenumbers.NATIONAL),
		Valid:                  phonenumbers.IsValidNumber(num),
		Input:                  input,
		DefaultCountry:         defaultCountry,
	}, nil
}
