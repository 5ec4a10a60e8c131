package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API, trying each configured model in order and
// moving on when one is rate-limited or unavailable.
type Gemini struct {
	client *genai.Client
	models []string
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}

	return &Gemini{
		client: client,
		models: []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"},
	}, nil
}

var _ Suggester = (*Gemini)(nil)

func (g *Gemini) SuggestTitle(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(
		`Generate a compelling title for this content: %q. Make it engaging, SEO-friendly, and under 60 characters. Return only the title without quotes.`,
		description)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.ReplaceAll(text, `"`, "")), nil
}

func (g *Gemini) SuggestDescription(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(
		`Create a description for content titled %q with this body: %q. Include relevant hashtags and make it engaging. Keep it under 1000 characters.`,
		title, content)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *Gemini) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf(
		`Generate 10 relevant tags for content titled %q with description: %q. Return only the tags separated by commas, no hashtags or extra text.`,
		title, description)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseTags(text), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range g.models {
		result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			if retriable(err) {
				lastErr = err
				continue
			}
			return "", err
		}
		if text, ok := firstText(result); ok {
			return text, nil
		}
	}

	if lastErr == nil {
		lastErr = errors.New("empty response")
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// firstText pulls the first text part out of a response. Candidates can carry
// a nil Content, for example when generation stopped on a safety block.
func firstText(result *genai.GenerateContentResponse) (string, bool) {
	if result == nil || len(result.Candidates) == 0 {
		return "", false
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	return content.Parts[0].Text, true
}

func retriable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "exhausted") ||
		strings.Contains(msg, "404") ||
		strings.Contains(msg, "not found")
}

// parseTags splits a comma-separated model response into at most ten clean
// tags, dropping hashes, empties, and anything implausibly long.
func parseTags(text string) []string {
	var tags []string
	for _, raw := range strings.Split(text, ",") {
		tag := strings.TrimPrefix(strings.TrimSpace(raw), "#")
		if len(tag) > 0 && len(tag) < 30 {
			tags = append(tags, tag)
		}
		if len(tags) == 10 {
			break
		}
	}
	return tags
}
