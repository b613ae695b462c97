package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/news-comment-engine/internal/backend"
	"github.com/news-comment-engine/internal/models"
	"github.com/news-comment-engine/internal/moderation"
	"github.com/news-comment-engine/internal/store"
	"github.com/rs/zerolog"
)

// ErrBusy rejects an operation while a previous request for the same
// comment is still in flight. There is no queueing: the caller disables
// the triggering control and the user retries.
var ErrBusy = errors.New("operation already in flight")

// ErrNotConfirmed rejects a delete without the explicit confirmation step.
var ErrNotConfirmed = errors.New("delete not confirmed")

// ErrNotOwner rejects a delete of somebody else's comment.
var ErrNotOwner = errors.New("only the author can delete a comment")

// commentService orchestrates validate -> moderate -> persist -> merge
// for submissions and the validate -> call backend -> reconcile flows
// for likes, reports and deletes.
type commentService struct {
	api      backend.Client
	checker  moderation.Checker
	identity IdentityProvider
	notify   Notifier
	log      zerolog.Logger

	mu     sync.Mutex
	stores map[string]*store.Store

	busyMu sync.Mutex
	busy   map[string]bool
}

// newCommentService creates the comment service
func newCommentService(api backend.Client, checker moderation.Checker, identity IdentityProvider, notify Notifier, log zerolog.Logger) CommentService {
	return &commentService{
		api:      api,
		checker:  checker,
		identity: identity,
		notify:   notify,
		log:      log.With().Str("component", "comments").Logger(),
		stores:   make(map[string]*store.Store),
		busy:     make(map[string]bool),
	}
}

// Load fetches the article's comment tree and replaces the local store.
func (s *commentService) Load(ctx context.Context, articleID string) ([]models.Comment, error) {
	comments, err := s.api.FetchComments(ctx, articleID, s.identity.Current().Email)
	if err != nil {
		s.notify.Error("could not load comments")
		return nil, err
	}

	st := s.storeFor(articleID)
	st.Replace(comments)
	return st.TopLevel(), nil
}

// Comments returns the current view of the article's comment tree.
func (s *commentService) Comments(articleID string) []models.Comment {
	return s.storeFor(articleID).TopLevel()
}

// Submit runs the submission pipeline for a comment or reply. The
// moderation check always runs synchronously on the submitted snapshot;
// any debounced verdict still pending is advisory only and ignored here.
func (s *commentService) Submit(ctx context.Context, articleID, content, parentID string) (models.Comment, error) {
	identity := s.identity.Current()
	if !identity.IsAuthenticated() {
		return models.Comment{}, models.ErrAuthRequired
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return models.Comment{}, models.NewValidationError(moderation.ReasonEmpty)
	}
	if utf8.RuneCountInString(trimmed) > models.MaxContentLength {
		return models.Comment{}, models.NewValidationError(moderation.ReasonTooLong)
	}

	// Fresh check closes the race where the user submits before the
	// debounce timer fires.
	if verdict := s.checker.Check(ctx, trimmed); !verdict.IsValid {
		return models.Comment{}, models.NewValidationError(verdict.Reason)
	}

	key := submitKey(articleID, parentID)
	if !s.acquire(key) {
		return models.Comment{}, ErrBusy
	}
	defer s.release(key)

	req := models.CreateCommentRequest{
		NewsID:      articleID,
		Content:     trimmed,
		ReaderName:  identity.DisplayName,
		ReaderEmail: identity.Email,
	}

	var created models.Comment
	var err error
	if parentID == "" {
		created, err = s.api.CreateComment(ctx, req)
	} else {
		created, err = s.api.CreateReply(ctx, parentID, req)
	}
	if err != nil {
		s.notify.Error("could not post comment")
		return models.Comment{}, err
	}

	st := s.storeFor(articleID)
	if created.IsReply() {
		err = st.AddReply(created)
	} else {
		err = st.AddTopLevel(created)
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to merge created comment: %w", err)
	}

	s.log.Info().Str("article_id", articleID).Str("comment_id", created.ID).Str("status", string(created.Status)).Msg("Comment submitted")
	s.notify.Success("comment submitted for review")
	return created, nil
}

// ToggleVote sends a like/dislike toggle and writes the backend's
// resulting counts onto the node verbatim.
func (s *commentService) ToggleVote(ctx context.Context, articleID, commentID string, vote models.Vote) error {
	identity := s.identity.Current()
	if !identity.IsAuthenticated() {
		s.notify.Error("sign in required")
		return models.ErrAuthRequired
	}
	if vote != models.VoteLike && vote != models.VoteDislike {
		return models.NewValidationError(fmt.Sprintf("invalid vote type %q", vote))
	}

	if !s.acquire(commentID) {
		return ErrBusy
	}
	defer s.release(commentID)

	result, err := s.api.ToggleLike(ctx, commentID, identity.Email, vote)
	if err != nil {
		s.notify.Error("could not register vote")
		return err
	}

	return s.storeFor(articleID).ApplyVote(commentID, result)
}

// Report files a report against a comment. Successful reports mutate
// nothing locally; duplicate prevention is the backend's job.
func (s *commentService) Report(ctx context.Context, commentID, reason, detail string) error {
	identity := s.identity.Current()
	if !identity.IsAuthenticated() {
		s.notify.Error("sign in required")
		return models.ErrAuthRequired
	}

	if !models.ValidReportReasons[reason] {
		return models.NewValidationError(fmt.Sprintf("invalid report reason %q", reason))
	}
	if reason == models.ReportReasonOther {
		detail = strings.TrimSpace(detail)
		if detail == "" {
			return models.NewValidationError("report detail is required")
		}
		if utf8.RuneCountInString(detail) > models.MaxReportDetailLength {
			return models.NewValidationError(moderation.ReasonTooLong)
		}
		reason = detail
	}

	if !s.acquire("report:" + commentID) {
		return ErrBusy
	}
	defer s.release("report:" + commentID)

	if err := s.api.Report(ctx, commentID, identity.Email, reason); err != nil {
		s.notify.Error("could not submit report")
		return err
	}

	s.notify.Success("report submitted")
	return nil
}

// Delete removes the viewer's own comment after explicit confirmation.
func (s *commentService) Delete(ctx context.Context, articleID, commentID string, confirmed bool) error {
	identity := s.identity.Current()
	if !identity.IsAuthenticated() {
		s.notify.Error("sign in required")
		return models.ErrAuthRequired
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	st := s.storeFor(articleID)
	node, ok := st.Get(commentID)
	if !ok {
		return fmt.Errorf("comment %s not found", commentID)
	}
	if node.AuthorEmail != identity.Email {
		return ErrNotOwner
	}

	if !s.acquire(commentID) {
		return ErrBusy
	}
	defer s.release(commentID)

	if err := s.api.Delete(ctx, commentID, identity.Email); err != nil {
		s.notify.Error("could not delete comment")
		return err
	}

	if err := st.Remove(commentID); err != nil {
		return err
	}
	s.notify.Success("comment deleted")
	return nil
}

// storeFor returns the article's store, creating it on first use.
func (s *commentService) storeFor(articleID string) *store.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stores[articleID]
	if !ok {
		st = store.New(articleID)
		s.stores[articleID] = st
	}
	return st
}

// acquire claims the single busy slot for a key
func (s *commentService) acquire(key string) bool {
	s.busyMu.Lock()
	defer s.busyMu.Unlock()

	if s.busy[key] {
		return false
	}
	s.busy[key] = true
	return true
}

func (s *commentService) release(key string) {
	s.busyMu.Lock()
	defer s.busyMu.Unlock()
	delete(s.busy, key)
}

// submitKey identifies the input channel a submission came from: the
// article's root comment box or one of its reply boxes.
func submitKey(articleID, parentID string) string {
	if parentID == "" {
		return "submit:" + articleID
	}
	return "submit:" + articleID + ":" + parentID
}
