package id_test

import (
	"strings"
	"testing"

	"github.com/sarthak567/adloom/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"OperationID", id.NewOperationID, "op_"},
		{"RevisionID", id.NewRevisionID, "rev_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixOperation)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixOperation {
		t.Errorf("expected prefix %q, got %q", id.PrefixOperation, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"OperationID", id.NewOperationID, id.ParseOperationID},
		{"RevisionID", id.NewRevisionID, id.ParseRevisionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round trip: got %q, want %q", parsed.String(), original.String())
			}
		})
	}
}

func TestParseWithPrefixMismatch(t *testing.T) {
	opID := id.NewOperationID()
	if _, err := id.ParseRevisionID(opID.String()); err == nil {
		t.Error("expected prefix mismatch error")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"not-a-typeid",
		"op_!!!invalid!!!",
	}

	for _, input := range tests {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero value should be nil")
	}
	if i.String() != "" {
		t.Errorf("nil ID should stringify empty, got %q", i.String())
	}

	data, err := i.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("nil ID should marshal empty, got %q", data)
	}

	v, err := i.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != nil {
		t.Errorf("nil ID should store NULL, got %v", v)
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := id.NewRevisionID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round trip: got %q, want %q", decoded.String(), original.String())
	}
}

func TestScan(t *testing.T) {
	original := id.NewOperationID()

	var fromString id.ID
	if err := fromString.Scan(original.String()); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if fromString.String() != original.String() {
		t.Errorf("scan string: got %q, want %q", fromString.String(), original.String())
	}

	var fromBytes id.ID
	if err := fromBytes.Scan([]byte(original.String())); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if fromBytes.String() != original.String() {
		t.Errorf("scan bytes: got %q, want %q", fromBytes.String(), original.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !fromNil.IsNil() {
		t.Error("scanning nil should produce nil ID")
	}

	var fromInt id.ID
	if err := fromInt.Scan(42); err == nil {
		t.Error("expected error scanning unsupported type")
	}
}
