package infrastructure

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const geminiExtractionModel = "gemini-2.0-flash"

const geminiExtractionPrompt = `Extract ALL text content from this document. Return ONLY the raw extracted text without any additional comments, formatting, or explanations. Include personal information, education history, work experience, skills, certifications and projects. Return the text exactly as it appears in the document.`

// GeminiExtractor is the best-effort fallback for documents whose embedded
// text layer is empty (scanned PDFs mostly). It may itself fail; callers
// treat an error as "no text".
type GeminiExtractor struct {
	client *genai.Client
}

// NewGeminiExtractor returns nil without error when GEMINI_API_KEY is unset;
// the extraction pipeline then simply has no fallback.
func NewGeminiExtractor(ctx context.Context) (*GeminiExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client}, nil
}

func (g *GeminiExtractor) Close() {
	if g != nil && g.client != nil {
		g.client.Close()
	}
}

// ExtractText sends the raw document to Gemini as inline data and returns
// whatever text comes back.
func (g *GeminiExtractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	model := g.client.GenerativeModel(geminiExtractionModel)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx,
		genai.Text(geminiExtractionPrompt),
		genai.Blob{MIMEType: mimeType, Data: data},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini extraction failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}

	out := strings.TrimSpace(string(text))
	logrus.WithField("chars", len(out)).Debug("Gemini fallback extraction")
	return out, nil
}
