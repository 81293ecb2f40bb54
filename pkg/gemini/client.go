package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

var (
	// ErrCredential marks failures caused by a missing, invalid or unbilled API key.
	ErrCredential = errors.New("gemini credential rejected")
	// ErrNoImage is returned when a response carries no inline image data.
	ErrNoImage = errors.New("gemini returned no image data")
	// ErrNotConfigured is returned by every call when no API key is set.
	ErrNotConfigured = errors.New("gemini api key not configured")
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Image is inline image bytes returned by an image model.
type Image struct {
	MIMEType string
	Data     []byte
}

// Client wraps the genai SDK with the two call shapes the storefront needs.
type Client struct {
	models contentGenerator
}

// NewClient builds a Gemini API client. An empty key yields a client whose
// calls fail with ErrNotConfigured so callers fall back cleanly.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logg *logger.Logger) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		if logg != nil {
			logg.Warn(ctx, "gemini api key not set; sidecar calls will use fallbacks")
		}
		return &Client{}, nil
	}
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{models: sdk.Models}, nil
}

// GenerateText sends a single text prompt and returns the concatenated text parts.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", ErrNotConfigured
	}
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// GenerateImage asks an image model for a square image. imageSize is only
// sent when non-empty; the standard image model rejects it.
func (c *Client) GenerateImage(ctx context.Context, model, prompt, imageSize string) (Image, error) {
	if c == nil || c.models == nil {
		return Image{}, ErrNotConfigured
	}
	imageCfg := &genai.ImageConfig{AspectRatio: "1:1"}
	if imageSize != "" {
		imageCfg.ImageSize = imageSize
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{ImageConfig: imageCfg})
	if err != nil {
		return Image{}, classify(err)
	}
	return firstInlineImage(resp)
}

func firstInlineImage(resp *genai.GenerateContentResponse) (Image, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Image{}, ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return Image{MIMEType: mime, Data: part.InlineData.Data}, nil
	}
	return Image{}, ErrNoImage
}

// classify tags credential failures with ErrCredential, keeping the cause.
func classify(err error) error {
	if isCredentialError(err) {
		return fmt.Errorf("%w: %w", ErrCredential, err)
	}
	return err
}

func isCredentialError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		switch apiErrPtr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "Requested entity was not found") || strings.Contains(msg, "API key not valid")
}
