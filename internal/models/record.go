// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package models provides data structures for the Vinoscope application.
package models

import (
	"fmt"
	"strconv"
	"time"
)

// TastingRecord represents a single wine-tasting journal entry.
//
// Records are owned by the external journal record store and are read-only to
// this engine. Rating is always present (0.0-10.0). Price and Vintage may be
// absent; an absent price contributes nothing to price-weighted aggregates
// (it is never coerced to zero).
type TastingRecord struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	WineName string    `json:"wine_name"`
	Producer string    `json:"producer"`
	Vintage  *int      `json:"vintage,omitempty"`
	Country  string    `json:"country,omitempty"`
	Region   string    `json:"region,omitempty"`
	Type     string    `json:"type"`
	Price    *float64  `json:"price,omitempty"`
	Rating   float64   `json:"rating"`
	TastedAt time.Time `json:"tasted_at"`
}

// Fingerprint returns the derived composite key used to count distinct wines.
// It is never persisted. Records without a vintage share the empty vintage slot,
// so "Ch. Margaux_Margaux_" and "Ch. Margaux_Margaux_2015" are distinct wines.
func (r *TastingRecord) Fingerprint() string {
	vintage := ""
	if r.Vintage != nil {
		vintage = strconv.Itoa(*r.Vintage)
	}
	return fmt.Sprintf("%s_%s_%s", r.WineName, r.Producer, vintage)
}

// HasPrice reports whether the record carries a price.
func (r *TastingRecord) HasPrice() bool {
	return r.Price != nil
}

// PriceValue returns the record's price, or 0 when absent.
// Callers must check HasPrice before treating the value as a real price.
func (r *TastingRecord) PriceValue() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}
