// Package ai drafts gallery descriptions for artworks with Gemini.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("description drafting is not configured")

// Describer drafts a short description for an artwork.
type Describer interface {
	Describe(ctx context.Context, record *models.ArtworkRecord) (string, error)
}

// Disabled is the Describer used when no API key is set.
type Disabled struct{}

func (Disabled) Describe(context.Context, *models.ArtworkRecord) (string, error) {
	return "", ErrNotConfigured
}

// Gemini holds the Gemini client.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// New returns a Gemini describer, or Disabled when apiKey is empty.
func New(ctx context.Context, apiKey, modelName string) (Describer, func() error, error) {
	noop := func() error { return nil }
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY is not set, description drafting disabled")
		return Disabled{}, noop, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &Gemini{client: client, modelName: modelName}, client.Close, nil
}

const systemInstruction = `You write gallery labels for a small art studio.
Write two or three warm, concrete sentences. No prices, no superlatives, no markdown.`

func (g *Gemini) Describe(ctx context.Context, record *models.ArtworkRecord) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	res, err := model.GenerateContent(ctx, genai.Text(Prompt(record)))
	if err != nil {
		return "", fmt.Errorf("error generating description: %w", err)
	}
	if res.UsageMetadata != nil {
		log.WithFields(log.Fields{
			"artwork": record.ID,
			"tokens":  res.UsageMetadata.TotalTokenCount,
		}).Info("Drafted artwork description")
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", errors.New("no description returned")
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("no description returned")
	}
	return out, nil
}

// Prompt lists the known facts about the artwork.
func Prompt(record *models.ArtworkRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", record.Title)
	for _, f := range []struct{ label, value string }{
		{"Medium", record.Medium},
		{"Size", record.Size},
		{"Category", record.Category},
		{"Artist notes", record.Description},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, v)
		}
	}
	b.WriteString("Write the gallery label.")
	return b.String()
}
