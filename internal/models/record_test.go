// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestFingerprint(t *testing.T) {
	vintage := 2015

	tests := []struct {
		name   string
		record TastingRecord
		want   string
	}{
		{
			"with vintage",
			TastingRecord{WineName: "Ch. Margaux", Producer: "Margaux", Vintage: &vintage},
			"Ch. Margaux_Margaux_2015",
		},
		{
			"without vintage",
			TastingRecord{WineName: "Ch. Margaux", Producer: "Margaux"},
			"Ch. Margaux_Margaux_",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Fingerprint(); got != tt.want {
				t.Errorf("Fingerprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFingerprintDistinguishesVintages(t *testing.T) {
	v2015, v2016 := 2015, 2016
	a := TastingRecord{WineName: "Barolo", Producer: "Conterno", Vintage: &v2015}
	b := TastingRecord{WineName: "Barolo", Producer: "Conterno", Vintage: &v2016}
	c := TastingRecord{WineName: "Barolo", Producer: "Conterno"}

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different vintages must not share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("a vintage and a missing vintage must not share a fingerprint")
	}
}

func TestPriceHelpers(t *testing.T) {
	price := 4500.0
	priced := TastingRecord{Price: &price}
	unpriced := TastingRecord{}

	if !priced.HasPrice() || priced.PriceValue() != 4500.0 {
		t.Errorf("priced record: HasPrice=%v PriceValue=%v", priced.HasPrice(), priced.PriceValue())
	}
	if unpriced.HasPrice() || unpriced.PriceValue() != 0 {
		t.Errorf("unpriced record: HasPrice=%v PriceValue=%v", unpriced.HasPrice(), unpriced.PriceValue())
	}
}

func TestTastingRecordJSON(t *testing.T) {
	data := []byte(`{
		"id": "r1",
		"user_id": "user-1",
		"wine_name": "Barolo",
		"producer": "Conterno",
		"vintage": 2018,
		"country": "Italy",
		"type": "Red",
		"price": 12000,
		"rating": 9.3,
		"tasted_at": "2025-06-01T12:00:00Z"
	}`)

	var r TastingRecord
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Vintage == nil || *r.Vintage != 2018 {
		t.Errorf("Vintage = %v, want 2018", r.Vintage)
	}
	if !r.HasPrice() || r.PriceValue() != 12000 {
		t.Errorf("Price = %v, want 12000", r.Price)
	}
	if !r.TastedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("TastedAt = %v", r.TastedAt)
	}

	// Absent optional fields stay nil rather than becoming zero values.
	var sparse TastingRecord
	if err := json.Unmarshal([]byte(`{"id":"r2","rating":7.0}`), &sparse); err != nil {
		t.Fatalf("unmarshal sparse: %v", err)
	}
	if sparse.Vintage != nil || sparse.Price != nil {
		t.Error("absent vintage/price must decode to nil")
	}
}
