// Package recommend writes the concierge comment for the best logged match
// and proposes one shop from outside the log.
package recommend

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai"
	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/ranking"
)

// FallbackComment is used whenever the comment cannot be generated.
const FallbackComment = "このラーメン店は、ユーザーのご要望に非常にマッチしています。ぜひお試しください！"

// Suggestion is a shop proposed by the model. It is not in the log.
type Suggestion struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rating     float64  `json:"rating"`
	Location   string   `json:"location"`
	Review     string   `json:"review"`
	Similarity float64  `json:"similarity"`
	AIComment  string   `json:"ai_comment"`
}

// Recommender talks to the chat model. Neither method ever fails the search.
type Recommender struct {
	llm ai.LLMService
}

// NewRecommender creates a new Recommender.
func NewRecommender(llm ai.LLMService) *Recommender {
	return &Recommender{llm: llm}
}

// Comment returns a one-sentence recommendation for shop, or FallbackComment.
func (r *Recommender) Comment(ctx context.Context, query string, shop ranking.Candidate) string {
	reply, err := r.llm.Chat(ctx, []ai.Message{ai.UserMessage(CommentPrompt(query, shop))})
	if err != nil {
		slog.Warn("failed to generate recommendation comment", slog.String("shop", shop.Name), slog.String("error", err.Error()))
		return FallbackComment
	}
	comment := strings.TrimSpace(reply)
	if comment == "" {
		return FallbackComment
	}
	return comment
}

// SuggestWeb proposes one shop other than shop. It returns nil on any failure.
func (r *Recommender) SuggestWeb(ctx context.Context, query string, shop ranking.Candidate) *Suggestion {
	reply, err := r.llm.ChatJSON(ctx, []ai.Message{ai.UserMessage(SuggestPrompt(query, shop))})
	if err != nil {
		slog.Warn("failed to suggest web shop", slog.String("error", err.Error()))
		return nil
	}
	suggestion, err := ParseSuggestion(reply)
	if err != nil {
		slog.Warn("discarding web suggestion", slog.String("error", err.Error()))
		return nil
	}
	if suggestion.Name == shop.Name {
		slog.Warn("web suggestion repeats the logged match", slog.String("shop", shop.Name))
		return nil
	}
	return suggestion
}

// ParseSuggestion strictly validates a model reply. name, location, review
// and ai_comment must be strings and categories a string array. rating may be
// a number or a numeric string. similarity defaults to 0.
func ParseSuggestion(raw string) (*Suggestion, error) {
	var object map[string]any
	if err := json.Unmarshal([]byte(raw), &object); err != nil {
		return nil, errors.Wrap(err, "failed to parse suggestion")
	}
	if object == nil {
		return nil, errors.New("suggestion is not an object")
	}

	s := &Suggestion{}
	var ok bool
	if s.Name, ok = object["name"].(string); !ok || strings.TrimSpace(s.Name) == "" {
		return nil, errors.New("'name' is not a string")
	}
	items, ok := object["categories"].([]any)
	if !ok {
		return nil, errors.New("'categories' is not an array of strings")
	}
	s.Categories = make([]string, 0, len(items))
	for _, item := range items {
		category, ok := item.(string)
		if !ok {
			return nil, errors.New("'categories' is not an array of strings")
		}
		s.Categories = append(s.Categories, category)
	}
	switch rating := object["rating"].(type) {
	case float64:
		s.Rating = rating
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(rating), 64)
		if err != nil {
			return nil, errors.New("'rating' is not a number")
		}
		s.Rating = parsed
	default:
		return nil, errors.New("'rating' is not a number")
	}
	if s.Location, ok = object["location"].(string); !ok {
		return nil, errors.New("'location' is not a string")
	}
	if s.Review, ok = object["review"].(string); !ok {
		return nil, errors.New("'review' is not a string")
	}
	if s.AIComment, ok = object["ai_comment"].(string); !ok {
		return nil, errors.New("'ai_comment' is not a string")
	}
	if similarity, ok := object["similarity"].(float64); ok {
		s.Similarity = similarity
	}
	return s, nil
}
