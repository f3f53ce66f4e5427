package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Tisch", "tisch"},
		{"trims", "  Haus  ", "haus"},
		{"compresses inner spaces", "der   Tisch", "der tisch"},
		{"keeps umlauts", "Äpfel", "äpfel"},
		{"keeps eszett", "Straße", "straße"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}
