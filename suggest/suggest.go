// Package suggest wraps the generative-text provider behind a small
// interface. Suggestions are opaque text; nothing downstream depends on their
// shape, and every call has a deterministic fallback so the editor keeps
// working when the provider is down.
package suggest

import "context"

type Suggester interface {
	// SuggestTitle proposes a title for the given description.
	SuggestTitle(ctx context.Context, description string) (string, error)
	// SuggestDescription proposes a description for titled content.
	SuggestDescription(ctx context.Context, title, content string) (string, error)
	// SuggestTags proposes up to ten short tags.
	SuggestTags(ctx context.Context, title, description string) ([]string, error)
}

// FallbackTitle truncates the description to a title-sized string. The cut
// counts runes, not bytes, so multibyte text stays valid UTF-8.
func FallbackTitle(description string) string {
	runes := []rune(description)
	if len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return description
}

// FallbackDescription appends the stock hashtags to the raw content.
func FallbackDescription(content string) string {
	return content + "\n\n#video #content #youtube #education"
}

// FallbackTags is the stock tag list.
func FallbackTags() []string {
	return []string{"video", "content", "youtube", "education", "tutorial"}
}
