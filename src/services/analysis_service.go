// backend/src/services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/username/alphatrade/backend/src/config"
	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/models"
	"google.golang.org/genai"
)

const analysisModel = "gemini-2.5-flash"

// Canned copy for the mock path and for live-path degradation.
const (
	mockSummary = "The company has shown strong recent performance, supported by new product launches and solid earnings. Market sentiment leans optimistic, though global supply-chain volatility remains a risk."
	mockAdvice  = "Consider holding in the short term; a pullback to support levels may offer a staged entry. Long-term investors can keep watching its positioning in AI."

	unavailableSummary = "The AI analysis service is currently unreachable. Please try again later."
	unavailableAdvice  = "No advice available."
)

type analysisServiceImpl struct {
	apiKey string

	mu     sync.Mutex
	client *genai.Client
}

// NewAnalysisService creates the AnalysisService. The Gemini client is
// created lazily on the first live request so mock-only deployments never
// touch the network.
func NewAnalysisService(cfg *config.AppConfig) AnalysisService {
	return &analysisServiceImpl{apiKey: cfg.GeminiAPIKey}
}

func (s *analysisServiceImpl) Analyze(ctx context.Context, symbol string, price float64, liveEnabled bool) models.AnalysisResult {
	if !liveEnabled || s.apiKey == "" {
		return models.AnalysisResult{
			Symbol:    symbol,
			Summary:   fmt.Sprintf("[Simulated] %s (for %s at %.2f)", mockSummary, symbol, price),
			Advice:    fmt.Sprintf("[Simulated] %s", mockAdvice),
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}

	result, err := s.generate(ctx, symbol, price)
	if err != nil {
		logger.FromContext(ctx).Warn("AI analysis failed, returning canned result",
			"symbol", symbol, "error", err)
		return models.AnalysisResult{
			Symbol:    symbol,
			Summary:   unavailableSummary,
			Advice:    unavailableAdvice,
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}
	return result
}

func (s *analysisServiceImpl) generate(ctx context.Context, symbol string, price float64) (models.AnalysisResult, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	prompt := fmt.Sprintf(`Act as a professional financial analyst.
The stock symbol is %s, currently trading around %.2f.
Write two short plain-text paragraphs:
1. Market performance summary: likely recent trends (no markdown).
2. Investment advice: a concrete stance (e.g. hold, buy, sell) with reasons (no markdown).

Format:
Summary: [your summary]
Advice: [your advice]`, symbol, price)

	resp, err := client.Models.GenerateContent(ctx, analysisModel, genai.Text(prompt), nil)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("generating analysis: %w", err)
	}

	summary, advice := parseAnalysisText(resp.Text())
	return models.AnalysisResult{
		Symbol:    symbol,
		Summary:   summary,
		Advice:    advice,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func (s *analysisServiceImpl) getClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}
	s.client = client
	return client, nil
}

// parseAnalysisText splits a "Summary: ... / Advice: ..." response into its
// two fields, tolerating extra lines between and after the markers.
func parseAnalysisText(text string) (summary, advice string) {
	var summaryParts, adviceParts []string
	section := ""

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "summary:"):
			section = "summary"
			_, rest, _ := strings.Cut(line, ":")
			if rest = strings.TrimSpace(rest); rest != "" {
				summaryParts = append(summaryParts, rest)
			}
		case strings.Contains(lower, "advice:"):
			section = "advice"
			_, rest, _ := strings.Cut(line, ":")
			if rest = strings.TrimSpace(rest); rest != "" {
				adviceParts = append(adviceParts, rest)
			}
		default:
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			switch section {
			case "summary":
				summaryParts = append(summaryParts, line)
			case "advice":
				adviceParts = append(adviceParts, line)
			}
		}
	}

	summary = strings.Join(summaryParts, " ")
	advice = strings.Join(adviceParts, " ")
	if summary == "" {
		if len(text) > 100 {
			text = text[:100] + "..."
		}
		summary = text
	}
	if advice == "" {
		advice = "Keep monitoring market conditions."
	}
	return summary, advice
}
