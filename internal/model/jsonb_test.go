package model

import (
	"testing"
	"time"
)

func TestPriceHistoryRoundTrip(t *testing.T) {
	notes := "negotiated down"
	h := PriceHistory{
		{Price: 500000, Date: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)},
		{Price: 475000, Date: time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC), Notes: &notes},
	}

	v, err := h.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var got PriceHistory
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Price != 500000 {
		t.Errorf("first price = %v, want 500000", got[0].Price)
	}
	if got[1].Notes == nil || *got[1].Notes != notes {
		t.Errorf("second notes = %v, want %q", got[1].Notes, notes)
	}
	if !got[1].Date.Equal(h[1].Date) {
		t.Errorf("second date = %v, want %v", got[1].Date, h[1].Date)
	}
}

func TestPriceHistoryNilValueIsEmptyArray(t *testing.T) {
	var h PriceHistory
	v, err := h.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil history Value = %v, want []", v)
	}
}

func TestPriceHistoryScanNullLeavesUntouched(t *testing.T) {
	h := PriceHistory{{Price: 1}}
	if err := h.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(h) != 1 {
		t.Errorf("NULL scan modified destination: %v", h)
	}
}

func TestCarDetailsRoundTrip(t *testing.T) {
	year := 2019
	d := CarDetails{Brand: "Maruti", Model: "Swift", Year: &year, Price: 450000}

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var got CarDetails
	if err := got.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got.Brand != "Maruti" || got.Price != 450000 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Year == nil || *got.Year != 2019 {
		t.Errorf("year = %v, want 2019", got.Year)
	}
}

func TestCarDetailsHasCar(t *testing.T) {
	tests := []struct {
		name string
		d    *CarDetails
		want bool
	}{
		{"nil details", nil, false},
		{"brand and price", &CarDetails{Brand: "Honda", Price: 300000}, true},
		{"missing brand", &CarDetails{Price: 300000}, false},
		{"zero price", &CarDetails{Brand: "Honda"}, false},
		{"negative price", &CarDetails{Brand: "Honda", Price: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.HasCar(); got != tt.want {
				t.Errorf("HasCar = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsRoundTrip(t *testing.T) {
	tags := Tags{"hot", "trade-in"}
	v, err := tags.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var got Tags
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 2 || got[0] != "hot" || got[1] != "trade-in" {
		t.Errorf("round trip = %v, want %v", got, tags)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	priceMax := 600000.0
	brand := "Hyundai"
	p := Preferences{PriceMax: &priceMax, Brand: &brand}

	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var got Preferences
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got.PriceMax == nil || *got.PriceMax != priceMax {
		t.Errorf("priceMax = %v, want %v", got.PriceMax, priceMax)
	}
	if got.Brand == nil || *got.Brand != brand {
		t.Errorf("brand = %v, want %v", got.Brand, brand)
	}
}

func TestValidCarStatus(t *testing.T) {
	for _, s := range []string{CarStatusAvailable, CarStatusSold, CarStatusReserved, CarStatusMaintenance} {
		if !ValidCarStatus(s) {
			t.Errorf("ValidCarStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "scrapped", "AVAILABLE"} {
		if ValidCarStatus(s) {
			t.Errorf("ValidCarStatus(%q) = true", s)
		}
	}
}

func TestValidLeadStatus(t *testing.T) {
	if !ValidLeadStatus(LeadStatusNew) {
		t.Error("new should be valid")
	}
	if ValidLeadStatus("bogus") {
		t.Error("bogus should be invalid")
	}
}

func TestValidRecipientType(t *testing.T) {
	if !ValidRecipientType(RecipientTypeBuyer) || !ValidRecipientType(RecipientTypeSeller) {
		t.Error("buyer and seller should be valid recipient types")
	}
	if ValidRecipientType("dealer") {
		t.Error("dealer should be invalid")
	}
}
