package domain

import (
	"errors"
	"testing"
)

func TestNormalizePincode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{" 560001 ", "560001", false},
		{"", "", false},
		{"1234567890", "1234567890", false},
		{"12345678901", "", true},
		// Ten runes, more than ten bytes.
		{"५६०००१५६००", "५६०००१५६००", false},
	}

	for _, tt := range tests {
		got, err := NormalizePincode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPincode) {
				t.Errorf("NormalizePincode(%q) err = %v, want ErrInvalidPincode", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizePincode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
