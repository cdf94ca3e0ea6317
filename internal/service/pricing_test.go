package service

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func stayOf(t *testing.T, in, out time.Time) model.Stay {
	t.Helper()
	s, err := model.NewStay(in, out)
	if err != nil {
		t.Fatalf("NewStay: %v", err)
	}
	return s
}

func TestComputePrice(t *testing.T) {
	s := stayOf(t,
		time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC))

	q, err := ComputePrice(s, 10000)
	if err != nil {
		t.Fatalf("ComputePrice: %v", err)
	}
	if q.Nights != 5 {
		t.Errorf("Nights = %d, want 5", q.Nights)
	}
	if q.TotalCents != 50000 {
		t.Errorf("TotalCents = %d, want 50000", q.TotalCents)
	}

	// Same inputs always quote the same total.
	again, err := ComputePrice(s, 10000)
	if err != nil || again != q {
		t.Errorf("quote not deterministic: %+v vs %+v (err=%v)", again, q, err)
	}
}

func TestComputePriceSingleNight(t *testing.T) {
	s := stayOf(t,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC))
	q, err := ComputePrice(s, 12550)
	if err != nil {
		t.Fatalf("ComputePrice: %v", err)
	}
	if q.Nights != 1 || q.TotalCents != 12550 {
		t.Errorf("got %+v, want 1 night / 12550", q)
	}
}

func TestComputePriceRejectsEmptyStay(t *testing.T) {
	// A zero-night stay cannot come out of NewStay, but ComputePrice
	// still guards against a hand-built one.
	var s model.Stay
	s.CheckIn = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	s.CheckOut = s.CheckIn
	if _, err := ComputePrice(s, 10000); err != model.ErrInvalidRange {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}
