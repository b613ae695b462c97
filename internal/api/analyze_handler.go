package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/news-comment-engine/internal/models"
)

// Analyzer is a keyword-driven stand-in for the external toxicity
// scoring service. Each trigger substring contributes its attribute
// scores; overlapping triggers keep the maximum per attribute.
type Analyzer struct {
	triggers map[string]map[string]float64
}

// DefaultTriggers cover the attribute families the real scoring service
// reports, at scores that exercise both the hard-block and the
// review-only verdict paths.
var DefaultTriggers = map[string]map[string]float64{
	"buy now": {"spam": 0.9},
	"idiot":   {"toxicity": 0.85, "insult": 0.8},
	"stupid":  {"insult": 0.75},
	"darn":    {"profanity": 0.6},
	"dubious": {"toxicity": 0.55},
}

// NewAnalyzer creates an analyzer with the given trigger table, falling
// back to DefaultTriggers when nil.
func NewAnalyzer(triggers map[string]map[string]float64) *Analyzer {
	if triggers == nil {
		triggers = DefaultTriggers
	}
	return &Analyzer{triggers: triggers}
}

// Analyze handles POST /comment-analysis/analyze
func (a *Analyzer) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Success: true,
		Data:    models.AnalyzeResult{AttributeScores: a.score(req.Text)},
	})
}

func (a *Analyzer) score(text string) map[string]models.AttributeScore {
	lowered := strings.ToLower(text)
	scores := map[string]float64{"toxicity": 0.01}

	for trigger, attrs := range a.triggers {
		if !strings.Contains(lowered, trigger) {
			continue
		}
		for attr, v := range attrs {
			if v > scores[attr] {
				scores[attr] = v
			}
		}
	}

	out := make(map[string]models.AttributeScore, len(scores))
	for attr, v := range scores {
		out[attr] = models.AttributeScore{SummaryScore: models.SummaryScore{Value: v}}
	}
	return out
}
