package service

import (
	"context"

	"github.com/news-comment-engine/internal/backend"
	"github.com/news-comment-engine/internal/models"
	"github.com/news-comment-engine/internal/moderation"
	"github.com/rs/zerolog"
)

// IdentityProvider supplies the viewer's verified identity from the
// external session collaborator. A zero-value identity means signed out.
type IdentityProvider interface {
	Current() models.Identity
}

// Notifier receives the transient user-facing notifications the engine
// emits (submission succeeded, report filed, network failure).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	Load(ctx context.Context, articleID string) ([]models.Comment, error)
	Submit(ctx context.Context, articleID, content, parentID string) (models.Comment, error)
	ToggleVote(ctx context.Context, articleID, commentID string, vote models.Vote) error
	Report(ctx context.Context, commentID, reason, detail string) error
	Delete(ctx context.Context, articleID, commentID string, confirmed bool) error
	Comments(articleID string) []models.Comment
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
}

// NewServices creates all services
func NewServices(api backend.Client, checker moderation.Checker, identity IdentityProvider, notify Notifier, log zerolog.Logger) *Services {
	return &Services{
		Comment: newCommentService(api, checker, identity, notify, log),
	}
}
