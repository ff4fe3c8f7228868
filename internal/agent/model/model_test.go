package model

import (
	"math"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-06-01", "2025-06-01", false},
		{" 2025-06-01 ", "2025-06-01", false},
		{"2025-06-01T10:00:00", "2025-06-01", false},
		{"n/a", DateNotApplicable, false},
		{"June 1st", "", true},
		{"2025-13-01", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateTime(t *testing.T) {
	if _, ok := DateNotApplicable.Time(); ok {
		t.Error("sentinel should not convert to time")
	}
	got, ok := Date("2025-01-02").Time()
	if !ok || !got.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v, %v", got, ok)
	}
}

func TestMergeClearsAmbiguousCity(t *testing.T) {
	var s SlotSet
	s.Merge(SlotSet{AmbiguousCity: Ptr("Calgary"), Origin: Ptr("Calgary")})
	if s.AmbiguousCity == nil {
		t.Fatal("ambiguous city should survive while destination is unknown")
	}

	s.Merge(SlotSet{Destination: Ptr("Toronto")})
	if s.AmbiguousCity != nil {
		t.Errorf("AmbiguousCity = %q, want nil", *s.AmbiguousCity)
	}
	if *s.Origin != "Calgary" || *s.Destination != "Toronto" {
		t.Errorf("endpoints = %q -> %q", *s.Origin, *s.Destination)
	}
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	s := SlotSet{Travelers: Ptr(2), CarryOn: Ptr(true)}
	s.Merge(SlotSet{CheckedBags: Ptr(0)})
	if *s.Travelers != 2 || !*s.CarryOn || *s.CheckedBags != 0 {
		t.Errorf("unexpected merge result: %+v", s)
	}
}

func TestIsOneWay(t *testing.T) {
	if (&SlotSet{}).IsOneWay() {
		t.Error("empty slot set should default to round-trip")
	}
	if !(&SlotSet{TripType: Ptr(TripOneWay)}).IsOneWay() {
		t.Error("tripType one-way should be one-way")
	}
	if !(&SlotSet{ReturnDate: Ptr(DateNotApplicable)}).IsOneWay() {
		t.Error("N/A return date should be one-way")
	}
}

func TestSlotUpdateEmpty(t *testing.T) {
	var nilUpdate *SlotUpdate
	if !nilUpdate.Empty() || !(&SlotUpdate{}).Empty() {
		t.Error("expected empty")
	}
	if (&SlotUpdate{Intent: IntentQuestion}).Empty() {
		t.Error("intent-only update is not empty")
	}
}

func TestPriceAmount(t *testing.T) {
	if got := (Price{Total: "250.50"}).Amount(); got != 250.5 {
		t.Errorf("Amount() = %v", got)
	}
	if got := (Price{Total: "abc"}).Amount(); !math.IsInf(got, 1) {
		t.Errorf("Amount() = %v, want +Inf", got)
	}
	if got := (Price{Currency: "CAD", Total: "300.00"}).String(); got != "CAD 300.00" {
		t.Errorf("String() = %q", got)
	}
}

func TestComputeCost(t *testing.T) {
	p, ok := ResolvePricing("gemini-2.5-flash")
	if !ok {
		t.Fatal("expected known pricing")
	}
	in, out, total := ComputeCost(&schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000}, p)
	if math.Abs(in-0.30) > 1e-9 || math.Abs(out-2.50) > 1e-9 || math.Abs(total-2.80) > 1e-9 {
		t.Errorf("ComputeCost = %v %v %v", in, out, total)
	}
	if _, ok := ResolvePricing("unknown"); ok {
		t.Error("unknown model should not resolve")
	}
}
