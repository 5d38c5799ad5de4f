// Package enhancer rewrites admin-entered product descriptions as marketing
// copy.
package enhancer

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"shopswift/internal/config"
	"shopswift/internal/logging"
)

var (
	ErrEmptyDescription  = errors.New("description is empty")
	ErrEnhancementFailed = errors.New("enhancement failed")
)

// Request carries the product fields the enhancer may use. Only Description
// is required.
type Request struct {
	Description string `json:"description"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Result is never partially filled: on error callers get nil.
type Result struct {
	EnhancedDescription string   `json:"enhancedDescription"`
	Feedback            string   `json:"feedback,omitempty"`
	Suggestions         []string `json:"suggestions,omitempty"`
	Confidence          float64  `json:"confidence,omitempty"`
}

type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}

// FromConfig picks the remote client when it is configured with a key and
// the stub otherwise.
func FromConfig(cfg config.Config, logger *zap.Logger) Enhancer {
	logger = logging.OrNop(logger).Named("enhancer")
	if cfg.EnhancerMode == config.EnhancerRemote {
		if strings.TrimSpace(cfg.EnhancerAPIKey) != "" {
			logger.Info("using remote enhancer", zap.String("model", cfg.EnhancerModel))
			return NewGemini(cfg.EnhancerAPIKey, cfg.EnhancerBaseURL, cfg.EnhancerModel, WithGeminiLogger(logger))
		}
		logger.Warn("ENHANCER_API_KEY not set, falling back to stub enhancer")
	}
	return NewStub(cfg.EnhancerStubDelay)
}

func checkRequest(req Request) (Request, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Description == "" {
		return req, ErrEmptyDescription
	}
	return req, nil
}
