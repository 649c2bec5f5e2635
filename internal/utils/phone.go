package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"confsite/internal/domain"
)

// DefaultPhoneRegion is used when no region is configured.
const DefaultPhoneRegion = "GB"

type phoneNormalizer struct {
	region string
}

// NewPhoneNormalizer returns a domain.PhoneNormalizer that reads numbers without a
// country code as belonging to region (ISO 3166-1 alpha-2).
func NewPhoneNormalizer(region string) domain.PhoneNormalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &phoneNormalizer{region: region}
}

// Normalize formats phone as E.164 (e.g. +442071838750).
func (n *phoneNormalizer) Normalize(phone string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(phone), n.region)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
