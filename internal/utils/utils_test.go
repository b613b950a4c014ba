package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmailIdempotent(t *testing.T) {
	tests := []string{
		"User@Example.COM",
		"  spaced@example.com  ",
		"already@example.com",
		"",
	}
	for _, in := range tests {
		once := NormalizeEmail(in)
		assert.Equal(t, once, NormalizeEmail(once), "normalizing twice must not change %q", in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail(" User@EXAMPLE.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"user.name+tag@example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "hello", CleanText("  hello  ", 100))
	assert.Equal(t, "abc", CleanText("abcdef", 3))
	assert.Equal(t, "", CleanText("   ", 10))

	// cap counts runes, not bytes
	assert.Equal(t, "日本語", CleanText("日本語テスト", 3))
}

func TestNewToken(t *testing.T) {
	tok, err := NewToken(24)
	require.NoError(t, err)
	assert.Len(t, tok, 48)

	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
	assert.Equal(t, strings.ToLower(tok), tok)

	other, err := NewToken(24)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
