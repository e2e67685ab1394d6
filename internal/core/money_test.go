package core

import (
	"math"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		cents   int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12", 1200, false},
		{"0.01", 1, false},
		{"12.344", 1234, false}, // rounds down
		{"12.345", 1235, false}, // half-up on the third decimal
		{"1.005", 101, false},
		{".5", 50, false},
		{"", 0, true},
		{"0", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.cents {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.cents)
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	cases := []struct {
		in    float64
		cents int64
		ok    bool
	}{
		{12.34, 1234, true},
		{0, 0, true},
		{0.005, 1, true}, // half away from zero
		{9999.99, 999999, true},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{math.Inf(-1), 0, false},
		{-0.01, 0, false},
	}
	for _, tc := range cases {
		got, ok := CentsFromFloat(tc.in)
		if ok != tc.ok {
			t.Fatalf("%v: ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if got != tc.cents {
			t.Fatalf("%v: got %d, want %d", tc.in, got, tc.cents)
		}
	}
}

func TestMoneyFloat(t *testing.T) {
	if got := (Money{Cents: 1234}).Float(); got != 12.34 {
		t.Fatalf("got %v, want 12.34", got)
	}
}
