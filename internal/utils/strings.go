package utils

import (
	"strings"      // String manipulation
	"unicode"      // Rune case mapping
	"unicode/utf8" // First rune decoding

	"github.com/google/uuid" // UUID generation
)

// Capitalize uppercases the first letter of word and lowercases the rest
func Capitalize(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// NewUUID returns a random (version 4) UUID string
func NewUUID() string {
	return uuid.NewString()
}
