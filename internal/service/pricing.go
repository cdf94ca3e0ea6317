package service

import "github.com/iliyamo/hotel-room-booking/internal/model"

// Quote is the result of pricing a stay: the number of nights and the
// total in cents. The total is always an exact multiple of the
// nightly rate; fees and taxes are a presentation concern layered on
// top, never part of the stored booking price.
type Quote struct {
	Nights     int   `json:"nights"`
	TotalCents int64 `json:"total_cents"`
}

// ComputePrice prices a stay at the given nightly rate. Dates are
// date-only, so nights is simply the integer day difference; a
// non-positive night count fails with model.ErrInvalidRange.
func ComputePrice(stay model.Stay, nightlyRateCents int64) (Quote, error) {
	nights := stay.Nights()
	if nights <= 0 {
		return Quote{}, model.ErrInvalidRange
	}
	return Quote{Nights: nights, TotalCents: int64(nights) * nightlyRateCents}, nil
}
