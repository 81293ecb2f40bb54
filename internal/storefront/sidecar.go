package storefront

import (
	"context"
	"strings"

	"github.com/Mansi-10-4/nova/internal/advisor"
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
)

// ticket marks one async request. Its result is applied only while it is the
// newest request for target and, when screen is set, the screen is unchanged.
type ticket struct {
	target string
	seq    uint64
	screen enums.View
}

// issue must be called with s.mu held.
func (s *Session) issue(target string, screenBound bool) ticket {
	s.seq++
	s.tickets[target] = s.seq
	t := ticket{target: target, seq: s.seq}
	if screenBound {
		t.screen = s.nav.Current()
	}
	return t
}

// current must be called with s.mu held.
func (s *Session) current(t ticket) bool {
	if s.tickets[t.target] != t.seq {
		return false
	}
	return t.screen == "" || t.screen == s.nav.Current()
}

func (s *Session) dropStale(ctx context.Context, call string, t ticket) {
	s.deps.Metrics.IncStale(call)
	logg := s.deps.Logger
	ctx = logg.WithFields(logg.WithSessionID(ctx, s.id), map[string]any{"call": call, "target": t.target})
	logg.Info(ctx, "stale sidecar result dropped")
}

// Insight returns the cached pitch for a product, asking the advisor on the
// first request.
func (s *Session) Insight(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	p, err := s.product(id)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if text, ok := s.insights[id]; ok {
		s.mu.Unlock()
		return text, nil
	}
	t := s.issue("insight:"+id, false)
	s.mu.Unlock()

	text := advisor.InsightFallback
	if a := s.advisor(); a != nil {
		text = a.Insight(ctx, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		s.dropStale(ctx, "insight", t)
		if cached, ok := s.insights[id]; ok {
			return cached, nil
		}
		return text, nil
	}
	s.insights[id] = text
	return text, nil
}

// Recommendations returns up to two follow-up products, fetched once per
// product and session.
func (s *Session) Recommendations(ctx context.Context, id string) ([]catalog.Product, error) {
	s.mu.Lock()
	p, err := s.product(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if recs, ok := s.recommendations[id]; ok {
		s.mu.Unlock()
		return append([]catalog.Product(nil), recs...), nil
	}
	t := s.issue("recommend:"+id, false)
	products := s.catalog.All()
	s.mu.Unlock()

	recs := []catalog.Product{}
	if a := s.advisor(); a != nil {
		recs = a.Recommendations(ctx, p, products)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		s.dropStale(ctx, "recommend", t)
		if cached, ok := s.recommendations[id]; ok {
			return append([]catalog.Product(nil), cached...), nil
		}
		return recs, nil
	}
	s.recommendations[id] = recs
	return append([]catalog.Product(nil), recs...), nil
}

// VisualizeResult is a product after an image generation request. Applied is
// false when a newer request for the same product superseded this one.
type VisualizeResult struct {
	Product catalog.Product `json:"product"`
	Applied bool            `json:"applied"`
}

// Visualize renders a studio photograph of a product and stores it as the
// product's image.
func (s *Session) Visualize(ctx context.Context, id string) (VisualizeResult, error) {
	s.mu.Lock()
	p, err := s.product(id)
	if err != nil {
		s.mu.Unlock()
		return VisualizeResult{}, err
	}
	t := s.issue("visualize:"+id, false)
	s.mu.Unlock()

	a := s.advisor()
	if a == nil {
		return VisualizeResult{}, pkgerrors.New(pkgerrors.CodeDependency, "image generation is not configured")
	}
	image, err := a.GenerateImage(ctx, advisor.VisualizePrompt(p), enums.ImageSize1K)
	if err != nil {
		return VisualizeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		s.dropStale(ctx, "visualize", t)
		current, _ := s.catalog.Get(id)
		return VisualizeResult{Product: current}, nil
	}
	s.catalog.SetImage(id, image)
	updated, _ := s.catalog.Get(id)
	return VisualizeResult{Product: updated, Applied: true}, nil
}

// StudioResult is a generated concept. Applied is false when the shopper left
// the screen or started a newer generation before this one finished.
type StudioResult struct {
	StudioImage
	Applied bool `json:"applied"`
}

// GenerateDesign renders a free-form design concept for the studio screen.
func (s *Session) GenerateDesign(ctx context.Context, prompt string, size enums.ImageSize) (StudioResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return StudioResult{}, pkgerrors.New(pkgerrors.CodeValidation, "prompt is required").
			WithDetails(map[string]string{"prompt": "is required"})
	}
	if !size.IsValid() {
		size = enums.ImageSize1K
	}
	s.mu.Lock()
	t := s.issue("studio", true)
	s.mu.Unlock()

	a := s.advisor()
	if a == nil {
		return StudioResult{}, pkgerrors.New(pkgerrors.CodeDependency, "image generation is not configured")
	}
	image, err := a.GenerateImage(ctx, prompt, size)
	if err != nil {
		return StudioResult{}, err
	}
	result := StudioResult{StudioImage: StudioImage{
		Prompt:    prompt,
		Size:      size,
		Image:     image,
		CreatedAt: s.deps.Now().UTC(),
	}}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		s.dropStale(ctx, "studio", t)
		return result, nil
	}
	stored := result.StudioImage
	s.studio = &stored
	result.Applied = true
	return result, nil
}
