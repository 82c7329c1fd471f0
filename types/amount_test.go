package types

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{"zero", "0", 0, false},
		{"small", "42", 42, false},
		{"large", "18446744073709551615", ^uint64(0), false},
		{"empty", "", 0, true},
		{"negative", "-5", 0, true},
		{"fractional", "1.5", 0, true},
		{"hex", "0xff", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Uint64() != tt.want {
				t.Errorf("got %d, want %d", got.Uint64(), tt.want)
			}
		})
	}
}

func TestParseAmountWide(t *testing.T) {
	// Values beyond uint64 must survive parsing and round-trip.
	s := "340282366920938463463374607431768211456" // 2^128
	a, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IsUint64() {
		t.Error("expected amount wider than uint64")
	}
	if a.String() != s {
		t.Errorf("round trip: got %s, want %s", a.String(), s)
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return NewAmount(100).Add(NewAmount(200)) }, NewAmount(300)},
		{"AddZero", func() Amount { return NewAmount(100).Add(Zero()) }, NewAmount(100)},
		{"Sub", func() Amount { return NewAmount(500).Sub(NewAmount(200)) }, NewAmount(300)},
		{"SubSaturates", func() Amount { return NewAmount(5).Sub(NewAmount(10)) }, Zero()},
		{"Bps", func() Amount { return NewAmount(10_000).Bps(5_500) }, NewAmount(5_500)},
		{"BpsFloor", func() Amount { return NewAmount(50).Bps(3_500) }, NewAmount(17)},
		{"Pct", func() Amount { return NewAmount(200).Pct(40) }, NewAmount(80)},
		{"PctFloor", func() Amount { return NewAmount(17).Pct(40) }, NewAmount(6)},
		{"Div", func() Amount { return NewAmount(900).DivUint64(3) }, NewAmount(300)},
		{"DivFloor", func() Amount { return NewAmount(25).DivUint64(12) }, NewAmount(2)},
		{"Sum", func() Amount { return SumAmounts(NewAmount(1), NewAmount(2), NewAmount(3)) }, NewAmount(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAmountMulUint64(t *testing.T) {
	got, ok := NewAmount(10).MulUint64(5)
	if !ok {
		t.Fatal("unexpected overflow")
	}
	if !got.Equal(NewAmount(50)) {
		t.Errorf("got %v, want 50", got)
	}

	huge := MustParseAmount("57896044618658097711785492504343953926634992332820282019728792003956564819968") // 2^255
	if _, ok := huge.MulUint64(3); ok {
		t.Error("expected overflow to be reported")
	}
}

func TestAmountDivisionByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for division by zero")
		}
	}()

	_ = NewAmount(100).DivUint64(0)
}

func TestAmountComparisons(t *testing.T) {
	a := NewAmount(10)
	b := NewAmount(20)

	if !a.LessThan(b) {
		t.Error("expected 10 < 20")
	}
	if b.LessThan(a) {
		t.Error("expected !(20 < 10)")
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering wrong")
	}
	if !a.Min(b).Equal(a) {
		t.Error("Min should return smaller value")
	}
	if !Zero().IsZero() {
		t.Error("Zero should be zero")
	}
	if a.IsZero() {
		t.Error("10 should not be zero")
	}
}

func TestAmountJSON(t *testing.T) {
	type holder struct {
		Value Amount `json:"value"`
	}

	in := holder{Value: MustParseAmount("340282366920938463463374607431768211456")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Amounts encode as decimal strings, never JSON numbers.
	if string(data) != `{"value":"340282366920938463463374607431768211456"}` {
		t.Errorf("unexpected encoding: %s", data)
	}

	var out holder
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Value.Equal(in.Value) {
		t.Errorf("round trip: got %v, want %v", out.Value, in.Value)
	}
}

func TestAmountJSONRejectsInvalid(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"not a number"`), &a); err == nil {
		t.Error("expected error for invalid decimal")
	}
	if err := json.Unmarshal([]byte(`123`), &a); err == nil {
		t.Error("expected error for bare JSON number")
	}
}
