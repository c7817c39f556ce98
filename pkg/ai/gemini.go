package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quillpad/quill-terminal/pkg/editor"
	genai "google.golang.org/genai"
)

var (
	ErrNoAPIKey      = errors.New("ai: GEMINI_API_KEY is not set")
	ErrEmptyResponse = errors.New("ai: empty response from model")
)

// Backend is the raw model API the client builds on
type Backend interface {
	GenerateText(ctx context.Context, model, system, input string) (string, error)
	GenerateImage(ctx context.Context, model, prompt string) (data []byte, mimeType string, err error)
}

// geminiBackend is a thin wrapper around the official genai client
type geminiBackend struct {
	cli *genai.Client
}

// NewGeminiBackend connects to the Gemini API with the given key
func NewGeminiBackend(ctx context.Context, apiKey string) (Backend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiBackend{cli: cli}, nil
}

func (g *geminiBackend) GenerateText(ctx context.Context, model, system, input string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: input}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func (g *geminiBackend) GenerateImage(ctx context.Context, model, prompt string) ([]byte, string, error) {
	resp, err := g.cli.Models.GenerateImages(ctx, model, prompt, nil)
	if err != nil {
		return nil, "", classify(err)
	}
	for _, img := range resp.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		mt := img.Image.MIMEType
		if mt == "" {
			mt = "image/png"
		}
		return img.Image.ImageBytes, mt, nil
	}
	return nil, "", ErrEmptyResponse
}

// classify maps rejected credentials onto editor.ErrAuthorizationRequired
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && isAuthError(apiErr.Code, apiErr.Message) {
		return fmt.Errorf("%s: %w", apiErr.Message, editor.ErrAuthorizationRequired)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && isAuthError(apiErrPtr.Code, apiErrPtr.Message) {
		return fmt.Errorf("%s: %w", apiErrPtr.Message, editor.ErrAuthorizationRequired)
	}
	return err
}

// isAuthError also catches the 400 Gemini answers for a malformed key
func isAuthError(code int, message string) bool {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		return strings.Contains(strings.ToLower(message), "api key")
	}
	return false
}
