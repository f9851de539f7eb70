package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
		ok  bool
	}{
		{12.34, 1234, true},
		{0.01, 1, true},
		{100, 10000, true},
		{0.005, 1, true}, // half-up rounding
		{0, 0, false},
		{-1, 0, false},
	}
	for _, tc := range cases {
		got, err := CentsFromFloat(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%v expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%v expected error", tc.in)
		}
	}
}

func TestBudgetCentsFromFloat(t *testing.T) {
	if got, err := BudgetCentsFromFloat(0); err != nil || got != 0 {
		t.Fatalf("zero budget should be allowed, got %d (err=%v)", got, err)
	}
	if got, err := BudgetCentsFromFloat(99.99); err != nil || got != 9999 {
		t.Fatalf("expected 9999, got %d (err=%v)", got, err)
	}
	if _, err := BudgetCentsFromFloat(-5); err == nil {
		t.Fatalf("negative budget should be rejected")
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{0, "0.00"},
		{-50, "-0.50"},
		{-10500, "-105.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 1234})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.34" {
		t.Fatalf("expected bare decimal 12.34, got %s", b)
	}

	b, err = json.Marshal(Money{Cents: -4050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "-40.50" {
		t.Fatalf("expected -40.50, got %s", b)
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{`12.34`, 1234, true},
		{`"12.34"`, 1234, true},
		{`"12,34"`, 1234, true},
		{`40`, 4000, true},
		{`0`, 0, true},   // sign checks happen in Validate
		{`-1.5`, -150, true},
		{`"abc"`, 0, false},
		{`null`, 0, false},
		{`""`, 0, false},
	}
	for _, tc := range cases {
		var m Money
		err := json.Unmarshal([]byte(tc.in), &m)
		if tc.ok {
			if err != nil || m.Cents != tc.out {
				t.Fatalf("%s expected %d cents, got %d (err=%v)", tc.in, tc.out, m.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%s expected error", tc.in)
		}
	}
}
