package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ledongthuc/pdf"
	"github.com/lshigami/coursequiz/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// TextExtractor turns an uploaded course document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}

type pdfTextExtractor struct{}

func NewPDFTextExtractor() TextExtractor {
	return &pdfTextExtractor{}
}

func (e *pdfTextExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

const transcribePrompt = "Transcribe all readable text in this PDF document as plain prose. " +
	"Do not summarize, do not add commentary, keep the original sentence punctuation."

type geminiTextExtractor struct {
	client *genai.GenerativeModel
}

// NewGeminiTextExtractor returns nil when GEMINI_API_KEY is unset.
func NewGeminiTextExtractor(cfg *config.Config) (TextExtractor, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Scanned PDFs without a text layer will be rejected.")
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0)
	return &geminiTextExtractor{client: model}, nil
}

func (e *geminiTextExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	resp, err := e.client.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: document},
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

type chainTextExtractor struct {
	extractors []TextExtractor
}

// NewChainTextExtractor tries each extractor in order and returns the first
// non-empty text. Nil entries are skipped.
func NewChainTextExtractor(extractors ...TextExtractor) TextExtractor {
	c := &chainTextExtractor{}
	for _, e := range extractors {
		if e != nil {
			c.extractors = append(c.extractors, e)
		}
	}
	return c
}

func (c *chainTextExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	var lastErr error
	for i, e := range c.extractors {
		text, err := e.Extract(ctx, document)
		if err != nil {
			log.Warn().Err(err).Int("extractor", i).Msg("Text extraction failed, trying next extractor")
			lastErr = err
			continue
		}
		if text != "" {
			return text, nil
		}
	}
	return "", lastErr
}

// NewTextExtractor wires the local PDF reader with the optional Gemini fallback.
func NewTextExtractor(cfg *config.Config) (TextExtractor, error) {
	gemini, err := NewGeminiTextExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return NewChainTextExtractor(NewPDFTextExtractor(), gemini), nil
}
