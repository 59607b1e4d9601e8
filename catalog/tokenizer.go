package catalog

import (
	"strings"

	"storefront-api/models"
)

// Normalize lower-cases and trims text for token and query comparison
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

// Tokenize splits normalized text on whitespace runs, dropping empty tokens
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// BuildTokens derives the search tokens of a product from name, description,
// brand, tags and categories, in that order.
func BuildTokens(p models.Product) []string {
	parts := make([]string, 0, 3+len(p.Tags)+len(p.Categories))
	for _, s := range []string{p.Name, p.Description, p.Brand} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, s := range p.Tags {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, s := range p.Categories {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return Tokenize(strings.Join(parts, " "))
}

// matchesTokens reports whether any token contains the normalized query
func matchesTokens(tokens []string, query string) bool {
	for _, t := range tokens {
		if strings.Contains(t, query) {
			return true
		}
	}
	return false
}
