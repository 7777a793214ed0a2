// Package extract turns a free-form visit note into a structured shop draft.
package extract

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
)

// UnknownName is what the model is told to use when no shop name is given.
const UnknownName = "不明"

var (
	// ErrUnavailable means the model could not be reached or returned nothing.
	ErrUnavailable = errors.New("extraction model unavailable")
	// ErrParseFailure means the reply is not JSON.
	ErrParseFailure = errors.New("reply is not JSON")
	// ErrInvalidFormat means the reply is JSON but not an object.
	ErrInvalidFormat = errors.New("reply is not a JSON object")
	// ErrInvalidResponse means the reply lacks a usable shop name.
	ErrInvalidResponse = errors.New("reply is missing required fields")
)

// ShopDraft is the extracted, not yet confirmed, shop. Unknown fields are nil.
type ShopDraft struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     *int32   `json:"rating"`
	Location   *string  `json:"location"`
	Review     *string  `json:"review"`
}

// Extractor asks the chat model to structure a note.
type Extractor struct {
	llm ai.LLMService
}

// NewExtractor creates a new Extractor.
func NewExtractor(llm ai.LLMService) *Extractor {
	return &Extractor{llm: llm}
}

// Extract sends the note to the model and coerces the reply into a draft.
func (e *Extractor) Extract(ctx context.Context, text string) (*ShopDraft, error) {
	reply, err := e.llm.ChatJSON(ctx, []ai.Message{ai.UserMessage(Prompt(text))})
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	if strings.TrimSpace(reply) == "" {
		return nil, ErrUnavailable
	}
	return ParseDraft(reply)
}

// ParseDraft validates and coerces a raw model reply.
//
// categories that are not an array become empty and non-string entries are
// dropped. rating is rounded and kept only within 1..5. location and review
// that are not strings become nil. name must be a non-blank string.
func ParseDraft(raw string) (*ShopDraft, error) {
	var decoded any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decoded); err != nil {
		return nil, errors.Wrap(ErrParseFailure, err.Error())
	}
	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, ErrInvalidFormat
	}

	name, ok := object["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, ErrInvalidResponse
	}

	return &ShopDraft{
		Name:       strings.TrimSpace(name),
		Categories: coerceCategories(object["categories"]),
		Rating:     coerceRating(object["rating"]),
		Location:   coerceString(object["location"]),
		Review:     coerceString(object["review"]),
	}, nil
}

func coerceCategories(v any) []string {
	categories := []string{}
	items, ok := v.([]any)
	if !ok {
		return categories
	}
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			categories = append(categories, strings.TrimSpace(s))
		}
	}
	return categories
}

func coerceRating(v any) *int32 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	rounded := math.Floor(f + 0.5)
	if rounded < 1 || rounded > 5 {
		return nil
	}
	rating := int32(rounded)
	return &rating
}

func coerceString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// stripCodeFence removes a ```json fence some models add despite JSON mode.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimPrefix(raw, "json")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
