package service

import (
	"github.com/news-comment-engine/internal/models"
	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the structured log. Embedding
// consumers replace it with their own toast/banner implementation.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Success(message string) {
	n.log.Info().Str("kind", "success").Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.log.Warn().Str("kind", "error").Msg(message)
}

// StaticIdentity is an IdentityProvider returning a fixed identity,
// useful for development wiring and tests.
type StaticIdentity struct {
	Identity models.Identity
}

func (s StaticIdentity) Current() models.Identity {
	return s.Identity
}
