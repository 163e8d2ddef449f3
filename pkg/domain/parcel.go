// Package domain holds the typed identifiers shared across modules.
//
// The PNU (parcel number unique) is the national 19-digit parcel code. Every
// upstream registry derives its request parameters from fragments of it, so
// it is parsed once at the trust boundary and passed around as an immutable
// value.
package domain

import (
	"fmt"

	dErrors "landgate/pkg/domain-errors"
)

// ParcelID is a validated 19-digit PNU. The zero value is invalid; obtain one
// through ParseParcelID.
type ParcelID struct {
	raw string
}

// PNU layout: sigungu(5) bjdong(5) landCategory(1) bun(4) ji(4).
const pnuLength = 19

// Land-category flag value marking a mountain lot (산).
const mountainLotFlag = '2'

// ParseParcelID validates and wraps a raw PNU string.
// Rules: exactly 19 characters, all ASCII digits.
func ParseParcelID(raw string) (ParcelID, error) {
	if len(raw) != pnuLength {
		return ParcelID{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("pnu must be %d characters, got %d", pnuLength, len(raw)))
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return ParcelID{}, dErrors.New(dErrors.CodeInvalidInput, "pnu must contain only digits")
		}
	}
	return ParcelID{raw: raw}, nil
}

// String returns the raw 19-digit code.
func (p ParcelID) String() string { return p.raw }

// IsZero reports whether the ID was never parsed.
func (p ParcelID) IsZero() bool { return p.raw == "" }

// SigunguCode is the 5-digit region (si/gun/gu) code.
func (p ParcelID) SigunguCode() string { return p.raw[0:5] }

// BjdongCode is the 5-digit legal sub-district (beopjeong-dong) code.
func (p ParcelID) BjdongCode() string { return p.raw[5:10] }

// LandCategory is the single land-category flag character.
func (p ParcelID) LandCategory() byte { return p.raw[10] }

// IsMountainLot reports whether the parcel is registered as a mountain lot.
func (p ParcelID) IsMountainLot() bool { return p.raw[10] == mountainLotFlag }

// PlatGbCode is the plot-classification code expected by the building ledger
// and permit registries: "1" for mountain lots, "0" otherwise.
func (p ParcelID) PlatGbCode() string {
	if p.IsMountainLot() {
		return "1"
	}
	return "0"
}

// Bun is the 4-digit main lot number.
func (p ParcelID) Bun() string { return p.raw[11:15] }

// Ji is the 4-digit sub lot number.
func (p ParcelID) Ji() string { return p.raw[15:19] }
