package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PokemonTypes lists the accepted elemental types in canonical spelling.
var PokemonTypes = []string{
	"Normal", "Fire", "Water", "Grass", "Flying", "Fighting",
	"Poison", "Electric", "Ground", "Rock", "Psychic", "Ice",
	"Bug", "Ghost", "Steel", "Dragon", "Dark", "Fairy",
}

// IsPokemonType reports whether s is a canonical type name. Matching is case-sensitive.
func IsPokemonType(s string) bool {
	for _, t := range PokemonTypes {
		if t == s {
			return true
		}
	}
	return false
}

// NormalizeType trims s and title-cases it, so "  fire" becomes "Fire".
func NormalizeType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	// Caser keeps state; one per call.
	return cases.Title(language.English).String(strings.ToLower(s))
}
