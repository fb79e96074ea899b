package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/logger"
)

const analysisPrompt = `You are a botanist assessing a plant from a photo.

TASK:
1. Identify the plant species
2. Assess overall health as a score from 0 to 100
3. List visible issues (yellowing, pests, wilting, leaf spots)
4. Give short care recommendations

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object, no markdown, no surrounding text
- The JSON must have these exact fields:
  {
    "plantName": "Common name",
    "confidence": 0.92,
    "score": 85,
    "issues": [{"code": "yellow_leaf", "severity": "moderate", "confidence": 0.7}],
    "recommendations": [{"id": "tip_water_adjust", "title": "Water less", "desc": "Every 5 days is enough"}]
  }`

// AIService identifies plants and scores their health from images. Gemini
// is the primary provider, OpenAI the fallback; mock mode returns a canned
// result so the rest of the system works without any API key.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
	mock         bool
}

// NewAIService creates clients for whichever providers have keys.
func NewAIService(geminiAPIKey, openaiAPIKey string, mock bool) (*AIService, error) {
	s := &AIService{mock: mock}

	if geminiAPIKey != "" {
		geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = geminiClient
	}
	if openaiAPIKey != "" {
		s.openaiClient = openai.NewClient(openaiAPIKey)
	}
	return s, nil
}

// AnalyzePlantImage runs the identification pipeline and returns the
// structured scan result. The hint, when present, is the name the user
// believes the plant has.
func (s *AIService) AnalyzePlantImage(ctx context.Context, imageRef string, hint string) (*domain.ScanResult, error) {
	if s.mock {
		return mockScanResult(hint), nil
	}

	if s.geminiClient != nil {
		result, err := s.analyzeWithGemini(ctx, imageRef)
		if err == nil {
			return result, nil
		}
		logger.Warn("Gemini analysis failed, trying fallback", "error", err.Error())
	}

	if s.openaiClient != nil {
		result, err := s.analyzeWithOpenAI(ctx, imageRef)
		if err != nil {
			return nil, apperrors.NewExternalAPIError(err, "OpenAI")
		}
		return result, nil
	}

	return nil, apperrors.New(apperrors.ErrorTypeExternal, "NO_PROVIDER", "no analysis provider is configured")
}

func (s *AIService) analyzeWithGemini(ctx context.Context, imageURL string) (*domain.ScanResult, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")

	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img := genai.ImageData("image/jpeg", imageData)
	geminiResp, err := model.GenerateContent(ctx, img, genai.Text(analysisPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || geminiResp.Candidates[0].Content == nil ||
		len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := geminiResp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from Gemini")
	}
	return parseScanResponse(string(text))
}

func (s *AIService) analyzeWithOpenAI(ctx context.Context, imageURL string) (*domain.ScanResult, error) {
	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: analysisPrompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: imageURL,
							},
						},
					},
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}
	return parseScanResponse(resp.Choices[0].Message.Content)
}

func parseScanResponse(raw string) (*domain.ScanResult, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var result domain.ScanResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.ID == "" {
		result.ID = fmt.Sprintf("analysis_%s", uuid.NewString())
	}
	result.Status = "completed"
	if result.CreatedAt == "" {
		result.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return &result, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// mockScanResult returns a canned assessment so the full pipeline can run
// without any provider key.
func mockScanResult(hint string) *domain.ScanResult {
	name := hint
	if name == "" {
		name = "Monstera Deliciosa"
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return &domain.ScanResult{
		ID:          "analysis_mock_001",
		Status:      "completed",
		PlantName:   name,
		Confidence:  0.9,
		HealthScore: 0.85,
		Issues: []domain.ScanIssue{
			{Code: "yellow_leaf", Severity: "moderate", Confidence: 0.72},
		},
		Recommendations: []domain.ScanTip{
			{ID: "tip_water_adjust", Title: "Water less often", Description: "Cut back to every 5 days"},
			{ID: "tip_light", Title: "Add soft light", Description: "Place near a filtered-light window in the morning"},
		},
		Weather: &domain.WeatherSnapshot{
			TempC:      33,
			Humidity:   70,
			Condition:  "sunny",
			CapturedAt: now,
		},
		CreatedAt: now,
	}
}
