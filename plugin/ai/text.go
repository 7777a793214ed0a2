package ai

import (
	"strings"
)

// ShopText builds the text embedded for a shop. Register and update
// must produce the same text for the same fields.
func ShopText(name string, categories []string, location, review string) string {
	lines := []string{
		"店名: " + name,
		"ジャンル: " + strings.Join(categories, ", "),
		"場所: " + location,
		"感想: " + review,
	}
	return strings.Join(lines, "\n")
}

// CleanQuery flattens a search query to a single line before embedding.
func CleanQuery(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
