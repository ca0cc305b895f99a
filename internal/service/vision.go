package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/config"
	"github.com/ericli5683/food-recipes/internal/recipetext"
)

const dishPrompt = "Identify the main dish in this food photo. Return only the food name in 1 to 4 words."

// visionRequest is a chat-completions request with an inline image.
type visionRequest struct {
	Model     string          `json:"model"`
	Messages  []visionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

type visionContent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

// visionResponse is the subset of the chat-completions response we read.
type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// VisionService asks a vision model to name the dish in a food photo.
type VisionService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewVisionService creates a new VisionService instance. A missing API key is
// not an error here; DetectDishName reports it per request so the rest of the
// API stays usable without vision credentials.
func NewVisionService(cfg *config.Config, logger *zap.Logger) *VisionService {
	return &VisionService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIAPIURL,
		model:  cfg.VisionModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// DetectDishName classifies the image and returns a cleaned dish label of at
// most four words. An empty label means the model saw no identifiable dish;
// callers must not treat it as a valid query. Returns ErrVisionNotConfigured
// when no API key is set, so configuration problems stay distinguishable from
// content problems.
func (s *VisionService) DetectDishName(ctx context.Context, image []byte, mimeType string) (string, error) {
	if s.apiKey == "" {
		return "", ErrVisionNotConfigured
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	reqBody := visionRequest{
		Model: s.model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionContent{
					{Type: "text", Text: dishPrompt},
					{Type: "image_url", ImageURL: &visionImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: 24,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read vision response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("vision API returned non-success status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("vision request failed with status %d", resp.StatusCode)
	}

	var result visionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("vision response contained no choices")
	}

	label := recipetext.CleanDishLabel(result.Choices[0].Message.Content)
	s.logger.Debug("dish detection complete", zap.String("label", label))
	return label, nil
}
