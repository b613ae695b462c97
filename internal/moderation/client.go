package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/news-comment-engine/internal/config"
	"github.com/news-comment-engine/internal/models"
	"github.com/rs/zerolog"
)

// Verdict reasons produced without contacting the scoring service.
const (
	ReasonEmpty       = "empty"
	ReasonTooLong     = "too long"
	ReasonReview      = "requires further review"
	ReasonUnavailable = "moderation unavailable"
)

// Checker reduces a text snapshot to a binary verdict with reason.
type Checker interface {
	Check(ctx context.Context, text string) models.Verdict
}

// client scores text against an external toxicity analyzer and applies
// the attribute/review thresholds.
type client struct {
	analyzerURL        string
	attributeThreshold float64
	reviewThreshold    float64
	failOpen           bool
	httpClient         *http.Client
	log                zerolog.Logger
}

// NewClient creates a moderation client from configuration
func NewClient(cfg *config.ModerationConfig, log zerolog.Logger) Checker {
	return &client{
		analyzerURL:        cfg.AnalyzerURL,
		attributeThreshold: cfg.AttributeThreshold,
		reviewThreshold:    cfg.ReviewThreshold,
		failOpen:           cfg.FailOpen,
		httpClient:         &http.Client{Timeout: cfg.RequestTimeout},
		log:                log.With().Str("component", "moderation").Logger(),
	}
}

// Check validates a text snapshot. Empty and over-length content is
// rejected without a network call; otherwise the analyzer's attribute
// scores decide. An unreachable or failing analyzer yields a valid
// verdict when fail-open is configured.
func (c *client) Check(ctx context.Context, text string) models.Verdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Invalid(ReasonEmpty)
	}
	if utf8.RuneCountInString(trimmed) > models.MaxContentLength {
		return models.Invalid(ReasonTooLong)
	}

	scores, err := c.analyze(ctx, text)
	if err != nil {
		if c.failOpen {
			c.log.Warn().Err(err).Msg("Scoring service unavailable, failing open")
			return models.Valid()
		}
		c.log.Warn().Err(err).Msg("Scoring service unavailable, failing closed")
		return models.Invalid(ReasonUnavailable)
	}

	return c.reduce(scores)
}

// analyze posts the raw text to the scoring endpoint and returns the
// attribute score map.
func (c *client) analyze(ctx context.Context, text string) (map[string]models.AttributeScore, error) {
	body, err := json.Marshal(models.AnalyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzerURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze returned status %d", resp.StatusCode)
	}

	var result models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("analyze rejected request: %s", result.Message)
	}

	return result.Data.AttributeScores, nil
}

// reduce maps attribute scores to a verdict. Attributes above the hard
// threshold are disclosed in the reason; a softer max-score breach only
// asks for review without naming attributes.
func (c *client) reduce(scores map[string]models.AttributeScore) models.Verdict {
	var flagged []string
	maxScore := 0.0

	for attr, score := range scores {
		v := score.SummaryScore.Value
		if v > maxScore {
			maxScore = v
		}
		if v > c.attributeThreshold {
			flagged = append(flagged, strings.ToLower(attr))
		}
	}

	if len(flagged) > 0 {
		sort.Strings(flagged)
		return models.Invalid(fmt.Sprintf("contains inappropriate content (%s)", strings.Join(flagged, ", ")))
	}
	if maxScore > c.reviewThreshold {
		return models.Invalid(ReasonReview)
	}
	return models.Valid()
}
