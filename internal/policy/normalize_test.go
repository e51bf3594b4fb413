package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello", "hello"},
		{"  Mixed   CASE\tand\nlines  ", "mixed case and lines"},
		{"já   SEI", "já sei"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "nao sei", FoldAccents("não sei"))
	assert.Equal(t, "facil", FoldAccents("fácil"))
	assert.Equal(t, "coracao", FoldAccents("coração"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}
