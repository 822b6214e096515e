package token

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.Len(t, a, Length)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEqual(t *testing.T) {
	x := strings.Repeat("ab", 32)
	lastDiffers := x[:Length-1] + "c"
	firstDiffers := "c" + x[1:]

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: x, b: x, want: true},
		{name: "last char differs", a: x, b: lastDiffers, want: false},
		{name: "first char differs", a: x, b: firstDiffers, want: false},
		{name: "short a", a: x[:63], b: x, want: false},
		{name: "long b", a: x, b: x + "a", want: false},
		{name: "both empty", a: "", b: "", want: false},
		{name: "both short and equal", a: "abc", b: "abc", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqualGenerated(t *testing.T) {
	for i := 0; i < 50; i++ {
		tok, err := Generate()
		require.NoError(t, err)
		assert.True(t, Equal(tok, tok))
	}
}
