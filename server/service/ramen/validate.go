package ramen

import (
	"strings"
	"unicode/utf8"

	apierrors "github.com/watayuraType-C/playground-ramen-concierge/server/internal/errors"
)

// MaxTextLength is the longest note or query accepted, in characters.
const MaxTextLength = 1000

func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) <= MaxTextLength
}

// normalize trims the input in place and rejects it when unusable.
func (in *ShopInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apierrors.BadRequest("店名は必須です。")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return apierrors.BadRequest("評価は1〜5で指定してください。")
	}
	categories := make([]string, 0, len(in.Categories))
	for _, c := range in.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	in.Categories = categories
	in.Location = strings.TrimSpace(in.Location)
	in.Review = strings.TrimSpace(in.Review)
	return nil
}
