// Package advisor is the generative sidecar: product insights, cross-sell
// recommendations and image generation. Text calls never fail the caller;
// they degrade to fixed copy or an empty list.
package advisor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/gemini"
	"github.com/Mansi-10-4/nova/pkg/logger"
	"github.com/Mansi-10-4/nova/pkg/metrics"
)

const (
	InsightFallback = "A curated choice for the modern home."
	InsightEmpty    = "A masterpiece of modern design and utility."

	maxRecommendations = 2

	callInsight   = "insight"
	callRecommend = "recommend"
	callImage     = "image"
)

// Model is the generative backend. pkg/gemini.Client satisfies it.
type Model interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	GenerateImage(ctx context.Context, model, prompt, imageSize string) (gemini.Image, error)
}

type Advisor struct {
	model   Model
	cfg     config.GeminiConfig
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

func New(model Model, cfg config.GeminiConfig, m *metrics.StorefrontMetrics, logg *logger.Logger) *Advisor {
	if logg == nil {
		logg = logger.Nop()
	}
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	settings := gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			ctx := logg.WithFields(context.Background(), map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			logg.Warn(ctx, "circuit breaker state changed")
		},
	}
	return &Advisor{
		model:   model,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker(settings),
		metrics: m,
		logg:    logg,
	}
}

// Insight returns a one-line pitch for p. Concurrent calls for the same
// product share one model request.
func (a *Advisor) Insight(ctx context.Context, p catalog.Product) string {
	v, _, _ := a.group.Do("insight:"+p.ID, func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not end it.
		ctx := context.WithoutCancel(ctx)
		prompt := fmt.Sprintf("You are a high-end design critic. Briefly describe why someone should buy the %s. It is described as: %s. Keep it under 30 words and sound sophisticated but minimalist.", p.Name, p.Description)
		text, err := a.text(ctx, callInsight, a.cfg.InsightModel, a.cfg.InsightTimeout, prompt)
		if err != nil {
			a.logg.Warn(a.logg.WithField(ctx, "product_id", p.ID), fmt.Sprintf("insight fallback: %v", err))
			return InsightFallback, nil
		}
		if text == "" {
			return InsightEmpty, nil
		}
		return text, nil
	})
	return v.(string)
}

// Recommendations asks for two follow-up products and matches the answer
// back onto products. Failures yield an empty list.
func (a *Advisor) Recommendations(ctx context.Context, p catalog.Product, products []catalog.Product) []catalog.Product {
	names := make([]string, len(products))
	for i, candidate := range products {
		names[i] = candidate.Name
	}
	prompt := fmt.Sprintf("Based on the fact a user just added %q to their cart, which 2 products from this list should I recommend next? List: %s. Return ONLY the names of the 2 products, separated by a comma.", p.Name, strings.Join(names, ", "))
	text, err := a.text(ctx, callRecommend, a.cfg.RecommendModel, a.cfg.RecommendTimeout, prompt)
	if err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "product_id", p.ID), fmt.Sprintf("recommendations unavailable: %v", err))
		return []catalog.Product{}
	}
	return MatchRecommendations(text, p.ID, products)
}

// MatchRecommendations keeps products whose name contains one of the
// comma-separated names in answer, ignoring case. The source product is
// excluded and at most two are returned, in catalog order.
func MatchRecommendations(answer, sourceID string, products []catalog.Product) []catalog.Product {
	var wanted []string
	for _, part := range strings.Split(answer, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			wanted = append(wanted, name)
		}
	}
	out := []catalog.Product{}
	if len(wanted) == 0 {
		return out
	}
	for _, candidate := range products {
		if candidate.ID == sourceID {
			continue
		}
		lower := strings.ToLower(candidate.Name)
		for _, name := range wanted {
			if strings.Contains(lower, name) {
				out = append(out, candidate)
				break
			}
		}
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}

// VisualizePrompt is the studio prompt used to photograph a catalog product.
func VisualizePrompt(p catalog.Product) string {
	return fmt.Sprintf("A studio product photograph of %q, described as %s. Professional lighting, 8k resolution, minimalist aesthetic, neutral background.", p.Name, p.Description)
}

// GenerateImage renders prompt and returns it as a data URI. 2K and 4K use
// the high resolution model.
func (a *Advisor) GenerateImage(ctx context.Context, prompt string, size enums.ImageSize) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "prompt is required").
			WithDetails(map[string]string{"prompt": "is required"})
	}
	if !size.IsValid() {
		size = enums.ImageSize1K
	}

	model, hint := a.cfg.ImageModel, ""
	if size.HighRes() {
		model, hint = a.cfg.HighResImageModel, size.String()
	}

	ctx, cancel := withTimeout(ctx, a.cfg.ImageTimeout)
	defer cancel()

	start := time.Now()
	res, err := a.breaker.Execute(func() (any, error) {
		return a.model.GenerateImage(ctx, model, prompt, hint)
	})
	a.metrics.ObserveSidecar(callImage, outcome(err), time.Since(start))
	if err != nil {
		reason := "generation"
		message := "image generation failed"
		if errors.Is(err, gemini.ErrCredential) {
			reason = "credential"
			message = "image generation credentials were rejected; select a valid API key"
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, message).
			WithDetails(map[string]string{"reason": reason})
	}
	img := res.(gemini.Image)
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
}

func (a *Advisor) text(ctx context.Context, call, model string, timeout time.Duration, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res, err := a.breaker.Execute(func() (any, error) {
		return a.model.GenerateText(ctx, model, prompt)
	})
	a.metrics.ObserveSidecar(call, outcome(err), time.Since(start))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.(string)), nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "error"
}
