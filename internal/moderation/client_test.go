package moderation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/news-comment-engine/internal/config"
	"github.com/news-comment-engine/internal/models"
	"github.com/news-comment-engine/internal/moderation"
	"github.com/rs/zerolog"
)

func testConfig(url string, failOpen bool) *config.ModerationConfig {
	return &config.ModerationConfig{
		AnalyzerURL:        url,
		AttributeThreshold: 0.7,
		ReviewThreshold:    0.5,
		FailOpen:           failOpen,
	}
}

// scoringServer returns an httptest server answering every analyze call
// with the given attribute scores.
func scoringServer(t *testing.T, scores map[string]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs := make(map[string]models.AttributeScore, len(scores))
		for k, v := range scores {
			attrs[k] = models.AttributeScore{SummaryScore: models.SummaryScore{Value: v}}
		}
		resp := models.AnalyzeResponse{Success: true, Data: models.AnalyzeResult{AttributeScores: attrs}}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, resp)
	}))
}

func TestCheck_PreChecks(t *testing.T) {
	// Scoring server that fails the test if contacted
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("scoring service should not be called for pre-check failures")
	}))
	defer srv.Close()

	checker := moderation.NewClient(testConfig(srv.URL, true), zerolog.Nop())

	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"empty string", "", moderation.ReasonEmpty},
		{"whitespace only", "   \n\t  ", moderation.ReasonEmpty},
		{"over length limit", strings.Repeat("a", models.MaxContentLength+1), moderation.ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := checker.Check(context.Background(), tt.text)
			if verdict.IsValid {
				t.Fatal("Expected invalid verdict")
			}
			if verdict.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, verdict.Reason)
			}
		})
	}
}

func TestCheck_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		scores     map[string]float64
		wantValid  bool
		wantReason string
	}{
		{
			name:      "all scores low",
			scores:    map[string]float64{"toxicity": 0.1, "insult": 0.2},
			wantValid: true,
		},
		{
			name:       "single attribute over hard threshold",
			scores:     map[string]float64{"toxicity": 0.8},
			wantValid:  false,
			wantReason: "contains inappropriate content (toxicity)",
		},
		{
			name:       "multiple attributes flagged, sorted and comma-joined",
			scores:     map[string]float64{"TOXICITY": 0.9, "INSULT": 0.75, "spam": 0.3},
			wantValid:  false,
			wantReason: "contains inappropriate content (insult, toxicity)",
		},
		{
			name:       "max score in review band",
			scores:     map[string]float64{"toxicity": 0.6, "insult": 0.1},
			wantValid:  false,
			wantReason: moderation.ReasonReview,
		},
		{
			name:      "exactly at review threshold stays valid",
			scores:    map[string]float64{"toxicity": 0.5},
			wantValid: true,
		},
		{
			name:       "exactly at hard threshold is review only",
			scores:     map[string]float64{"toxicity": 0.7},
			wantValid:  false,
			wantReason: moderation.ReasonReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := scoringServer(t, tt.scores)
			defer srv.Close()

			checker := moderation.NewClient(testConfig(srv.URL, true), zerolog.Nop())
			verdict := checker.Check(context.Background(), "some comment text")

			if verdict.IsValid != tt.wantValid {
				t.Fatalf("Expected IsValid=%v, got %v (reason %q)", tt.wantValid, verdict.IsValid, verdict.Reason)
			}
			if !tt.wantValid && verdict.Reason != tt.wantReason {
				t.Errorf("Expected reason %q, got %q", tt.wantReason, verdict.Reason)
			}
		})
	}
}

func TestCheck_ReviewReasonDisclosesNoAttribute(t *testing.T) {
	srv := scoringServer(t, map[string]float64{"severe_toxicity": 0.6})
	defer srv.Close()

	checker := moderation.NewClient(testConfig(srv.URL, true), zerolog.Nop())
	verdict := checker.Check(context.Background(), "borderline text")

	if verdict.IsValid {
		t.Fatal("Expected invalid verdict")
	}
	if strings.Contains(verdict.Reason, "severe_toxicity") {
		t.Errorf("Review reason must not disclose attribute names, got %q", verdict.Reason)
	}
}

func TestCheck_FailOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "server error",
			setup: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "boom", http.StatusInternalServerError)
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
		{
			name: "unreachable endpoint",
			setup: func(t *testing.T) string {
				return "http://127.0.0.1:1"
			},
		},
		{
			name: "unsuccessful envelope",
			setup: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, models.AnalyzeResponse{Success: false, Message: "quota exceeded"})
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := tt.setup(t)

			open := moderation.NewClient(testConfig(url, true), zerolog.Nop())
			if verdict := open.Check(context.Background(), "hello"); !verdict.IsValid {
				t.Errorf("Fail-open should yield a valid verdict, got reason %q", verdict.Reason)
			}

			closed := moderation.NewClient(testConfig(url, false), zerolog.Nop())
			verdict := closed.Check(context.Background(), "hello")
			if verdict.IsValid {
				t.Error("Fail-closed should yield an invalid verdict")
			}
			if verdict.Reason != moderation.ReasonUnavailable {
				t.Errorf("Expected reason %q, got %q", moderation.ReasonUnavailable, verdict.Reason)
			}
		})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}
