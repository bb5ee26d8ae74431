package whatsapp

import (
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		countryCode string
		want        string
	}{
		{"bare number gets country code", "9876543210", "+91", "+919876543210"},
		{"leading zero replaced", "09876543210", "+91", "+919876543210"},
		{"plus prefix kept as-is", "+19876543210", "+91", "+19876543210"},
		{"spaces stripped", "98765 43210", "+91", "+919876543210"},
		{"dashes stripped", "98765-43210", "+91", "+919876543210"},
		{"parens stripped", "(987) 654-3210", "+91", "+919876543210"},
		{"mixed separators with plus", "+1 (987) 654-3210", "+91", "+19876543210"},
		{"other country code", "0412345678", "+61", "+61412345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.countryCode)
			if err != nil {
				t.Fatalf("NormalizePhone(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", " - () "} {
		if _, err := NormalizePhone(raw, "+91"); err == nil {
			t.Errorf("NormalizePhone(%q) expected error, got none", raw)
		}
	}
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("+919876543210", "Hello there")
	want := "https://wa.me/919876543210?text=Hello+there"
	if link != want {
		t.Errorf("BuildLink = %q, want %q", link, want)
	}
}

func TestBuildLinkEncodesMessage(t *testing.T) {
	link := BuildLink("+10000000000", "50% off & more?")
	want := "https://wa.me/10000000000?text=50%25+off+%26+more%3F"
	if link != want {
		t.Errorf("BuildLink = %q, want %q", link, want)
	}
}
