package mocks

import (
	"context"
	"sync"

	"github.com/news-comment-engine/internal/backend"
	"github.com/news-comment-engine/internal/models"
	"github.com/news-comment-engine/internal/moderation"
	"github.com/news-comment-engine/internal/service"
)

// MockBackend is a mock implementation of backend.Client
type MockBackend struct {
	FetchFunc  func(ctx context.Context, articleID, viewerEmail string) ([]models.Comment, error)
	CreateFunc func(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error)
	ReplyFunc  func(ctx context.Context, parentID string, req models.CreateCommentRequest) (models.Comment, error)
	ToggleFunc func(ctx context.Context, commentID, userEmail string, likeType models.Vote) (models.LikeResult, error)
	ReportFunc func(ctx context.Context, commentID, userEmail, reason string) error
	DeleteFunc func(ctx context.Context, commentID, userEmail string) error

	mu          sync.Mutex
	CreateCalls []models.CreateCommentRequest
	ReplyCalls  []string
	ToggleCalls []string
	ReportCalls []models.ReportRequest
	DeleteCalls []string
}

// Verify interface compliance
var _ backend.Client = (*MockBackend)(nil)

func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) FetchComments(ctx context.Context, articleID, viewerEmail string) ([]models.Comment, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, articleID, viewerEmail)
	}
	return nil, nil
}

func (m *MockBackend) CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, req)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return models.Comment{
		ID:                "created-comment-id",
		ArticleID:         req.NewsID,
		AuthorEmail:       req.ReaderEmail,
		AuthorDisplayName: req.ReaderName,
		Content:           req.Content,
		Status:            models.StatusWaiting,
		ViewerVote:        models.VoteNone,
	}, nil
}

func (m *MockBackend) CreateReply(ctx context.Context, parentID string, req models.CreateCommentRequest) (models.Comment, error) {
	m.mu.Lock()
	m.ReplyCalls = append(m.ReplyCalls, parentID)
	m.mu.Unlock()

	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, parentID, req)
	}
	return models.Comment{
		ID:                "created-reply-id",
		ArticleID:         req.NewsID,
		ParentID:          parentID,
		AuthorEmail:       req.ReaderEmail,
		AuthorDisplayName: req.ReaderName,
		Content:           req.Content,
		Status:            models.StatusWaiting,
		ViewerVote:        models.VoteNone,
	}, nil
}

func (m *MockBackend) ToggleLike(ctx context.Context, commentID, userEmail string, likeType models.Vote) (models.LikeResult, error) {
	m.mu.Lock()
	m.ToggleCalls = append(m.ToggleCalls, commentID)
	m.mu.Unlock()

	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, commentID, userEmail, likeType)
	}
	return models.LikeResult{Likes: 1, LikeType: likeType}, nil
}

func (m *MockBackend) Report(ctx context.Context, commentID, userEmail, reason string) error {
	m.mu.Lock()
	m.ReportCalls = append(m.ReportCalls, models.ReportRequest{UserEmail: userEmail, Reason: reason})
	m.mu.Unlock()

	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, commentID, userEmail, reason)
	}
	return nil
}

func (m *MockBackend) Delete(ctx context.Context, commentID, userEmail string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, commentID)
	m.mu.Unlock()

	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID, userEmail)
	}
	return nil
}

// MockChecker is a mock implementation of moderation.Checker
type MockChecker struct {
	CheckFunc func(ctx context.Context, text string) models.Verdict

	mu         sync.Mutex
	CheckCalls []string
}

// Verify interface compliance
var _ moderation.Checker = (*MockChecker)(nil)

func NewMockChecker() *MockChecker {
	return &MockChecker{}
}

func (m *MockChecker) Check(ctx context.Context, text string) models.Verdict {
	m.mu.Lock()
	m.CheckCalls = append(m.CheckCalls, text)
	m.mu.Unlock()

	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, text)
	}
	return models.Valid()
}

// Checked returns the texts checked so far.
func (m *MockChecker) Checked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.CheckCalls))
	copy(out, m.CheckCalls)
	return out
}

// MockIdentity is a mock implementation of service.IdentityProvider
type MockIdentity struct {
	Identity models.Identity
}

// Verify interface compliance
var _ service.IdentityProvider = (*MockIdentity)(nil)

func NewMockIdentity(email, name string) *MockIdentity {
	return &MockIdentity{Identity: models.Identity{Email: email, DisplayName: name}}
}

func (m *MockIdentity) Current() models.Identity {
	return m.Identity
}

// MockNotifier is a mock implementation of service.Notifier
type MockNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// Verify interface compliance
var _ service.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Success(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, message)
}

func (m *MockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, message)
}
