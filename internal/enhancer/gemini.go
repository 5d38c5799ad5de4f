package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shopswift/internal/logging"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-1.5-flash"
)

const promptTemplate = `You are an expert marketing copywriter. Review the following product description and provide an enhanced version with improved clarity and marketing appeal.

Original Description: %s

In addition to the enhanced description, provide feedback on the original description and explain the changes you made, along with the reasons for those changes.

Ensure the enhanced description is engaging and persuasive, highlighting the key benefits of the product. The tone should be appropriate for the product type.

Respond with a JSON object with exactly two string fields: "enhancedDescription" and "feedback".`

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float32 `json:"temperature,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// copyOutput is the shape the model must answer with.
type copyOutput struct {
	EnhancedDescription string `json:"enhancedDescription" validate:"required"`
	Feedback            string `json:"feedback" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Gemini calls the generateContent endpoint once per request. There is no
// retry; the caller's context bounds the call.
type Gemini struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

type GeminiOption func(*Gemini)

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) { g.http = c }
}

func WithGeminiLogger(l *zap.Logger) GeminiOption {
	return func(g *Gemini) { g.logger = l }
}

func NewGemini(apiKey, baseURL, model string, opts ...GeminiOption) *Gemini {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	g := &Gemini{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrNop(g.logger).Named("gemini")
	return g
}

func (g *Gemini) Enhance(ctx context.Context, req Request) (*Result, error) {
	req, err := checkRequest(req)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := g.generate(ctx, fmt.Sprintf(promptTemplate, req.Description))
	if err != nil {
		g.logger.Error("enhance description", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrEnhancementFailed, err)
	}
	g.logger.Debug("description enhanced", zap.Duration("took", time.Since(start)))
	return &Result{
		EnhancedDescription: out.EnhancedDescription,
		Feedback:            out.Feedback,
		Suggestions:         Suggestions(req.Category),
	}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (*copyOutput, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.7,
			MaxOutputTokens:  1024,
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr geminiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var out copyOutput
	if err := json.Unmarshal([]byte(stripFences(text.String())), &out); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	out.EnhancedDescription = strings.TrimSpace(out.EnhancedDescription)
	out.Feedback = strings.TrimSpace(out.Feedback)
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("model output: %w", err)
	}
	return &out, nil
}

// stripFences removes a markdown code fence around the model's JSON, which
// some models add even when asked for JSON only.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
