package core

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "simple", input: "1.5", want: Version{Major: 1, Minor: 5}},
		{name: "zero minor", input: "2.0", want: Version{Major: 2, Minor: 0}},
		{name: "multi digit", input: "10.23", want: Version{Major: 10, Minor: 23}},
		{name: "missing minor", input: "1", wantErr: true},
		{name: "too many parts", input: "1.2.3", wantErr: true},
		{name: "non numeric", input: "1.x", wantErr: true},
		{name: "negative", input: "-1.0", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " 1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidVersionString) {
					t.Fatalf("ParseVersion(%q) error = %v, want ErrInvalidVersionString", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Fatalf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.9", "1.5", 1},
		{"2.0", "1.9", 1},
		{"1.10", "1.9", 1},
	}

	for _, tt := range tests {
		a, err := ParseVersion(tt.a)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", tt.a, err)
		}
		b, err := ParseVersion(tt.b)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", tt.b, err)
		}
		if got := a.Compare(b); got != tt.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		available string
		want      bool
		wantErr   bool
	}{
		{name: "older minor ok", requested: "1.5", available: "1.9", want: true},
		{name: "same version ok", requested: "1.9", available: "1.9", want: true},
		{name: "newer minor rejected", requested: "1.9", available: "1.5", want: false},
		{name: "major mismatch rejected", requested: "2.0", available: "1.9", want: false},
		{name: "major mismatch low", requested: "1.0", available: "2.0", want: false},
		{name: "malformed requested", requested: "banana", available: "1.9", wantErr: true},
		{name: "malformed available", requested: "1.0", available: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsCompatible(tt.requested, tt.available)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("IsCompatible(%q, %q) expected error", tt.requested, tt.available)
				}
				if !errors.Is(err, ErrInvalidVersionString) {
					t.Fatalf("error = %v, want ErrInvalidVersionString", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("IsCompatible(%q, %q) unexpected error: %v", tt.requested, tt.available, err)
			}
			if got != tt.want {
				t.Fatalf("IsCompatible(%q, %q) = %v, want %v", tt.requested, tt.available, got, tt.want)
			}
		})
	}
}
