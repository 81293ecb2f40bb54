package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model string
	cfg   *genai.GenerateContentConfig
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.cfg = cfg
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
	}}}
}

func TestNewClientWithoutKeyIsNotConfigured(t *testing.T) {
	client, err := NewClient(context.Background(), config.GeminiConfig{}, nil)
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "m", "p")
	require.ErrorIs(t, err, ErrNotConfigured)
	_, err = client.GenerateImage(context.Background(), "m", "p", "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateTextTrims(t *testing.T) {
	fake := &fakeModels{resp: textResponse("  Quietly luxurious.  \n")}
	client := &Client{models: fake}

	got, err := client.GenerateText(context.Background(), "gemini-3-flash-preview", "describe")
	require.NoError(t, err)
	require.Equal(t, "Quietly luxurious.", got)
	require.Equal(t, "gemini-3-flash-preview", fake.model)
}

func TestGenerateImageFindsInlinePart(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{
			{Text: "here you go"},
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}},
		}},
	}}}}
	client := &Client{models: fake}

	img, err := client.GenerateImage(context.Background(), "gemini-3-pro-image-preview", "a chair", "2K")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.MIMEType)
	require.Equal(t, []byte{0xff, 0xd8}, img.Data)
	require.Equal(t, "1:1", fake.cfg.ImageConfig.AspectRatio)
	require.Equal(t, "2K", fake.cfg.ImageConfig.ImageSize)
}

func TestGenerateImageOmitsSizeForStandardModel(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{Data: []byte{1}}}}},
	}}}}
	client := &Client{models: fake}

	img, err := client.GenerateImage(context.Background(), "gemini-2.5-flash-image", "a lamp", "")
	require.NoError(t, err)
	require.Equal(t, "image/png", img.MIMEType)
	require.Empty(t, fake.cfg.ImageConfig.ImageSize)
}

func TestGenerateImageWithoutInlineData(t *testing.T) {
	client := &Client{models: &fakeModels{resp: textResponse("sorry")}}
	_, err := client.GenerateImage(context.Background(), "m", "p", "")
	require.ErrorIs(t, err, ErrNoImage)
}

func TestCredentialErrorsAreClassified(t *testing.T) {
	client := &Client{models: &fakeModels{err: genai.APIError{Code: 404, Message: "Requested entity was not found."}}}
	_, err := client.GenerateImage(context.Background(), "m", "p", "")
	require.ErrorIs(t, err, ErrCredential)

	client = &Client{models: &fakeModels{err: errors.New("API key not valid. Please pass a valid API key.")}}
	_, err = client.GenerateText(context.Background(), "m", "p")
	require.ErrorIs(t, err, ErrCredential)

	client = &Client{models: &fakeModels{err: genai.APIError{Code: 500, Message: "internal"}}}
	_, err = client.GenerateText(context.Background(), "m", "p")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCredential)
}
