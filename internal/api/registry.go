package api

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/news-comment-engine/internal/models"
)

// Registry errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound        = errors.New("comment not found")
	ErrForbidden       = errors.New("not the comment author")
	ErrDuplicateReport = errors.New("comment already reported by this user")
	ErrNestedReply     = errors.New("replies cannot be nested")
)

// Registry is the in-memory comment state behind the development
// backend. It implements the documented backend semantics (waiting
// status on creation, like toggling, per-user report de-duplication,
// owner-only cascade delete) without any persistence.
type Registry struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
	topLevel map[string][]string               // article id -> top-level ids, newest first
	children map[string][]string               // parent id -> reply ids, oldest first
	votes    map[string]map[string]models.Vote // comment id -> voter email -> vote
	reports  map[string]map[string]bool        // comment id -> reporter email
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		comments: make(map[string]*models.Comment),
		topLevel: make(map[string][]string),
		children: make(map[string][]string),
		votes:    make(map[string]map[string]models.Vote),
		reports:  make(map[string]map[string]bool),
	}
}

// List returns the article's comment tree with vote counts and the
// viewer's own vote resolved.
func (r *Registry) List(articleID, viewerEmail string) []models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Comment, 0, len(r.topLevel[articleID]))
	for _, id := range r.topLevel[articleID] {
		node := r.view(id, viewerEmail)
		for _, rid := range r.children[id] {
			node.Replies = append(node.Replies, r.view(rid, viewerEmail))
		}
		out = append(out, node)
	}
	return out
}

// Create adds a new top-level comment with waiting status.
func (r *Registry) Create(articleID, readerName, readerEmail, content string) models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.newComment(articleID, "", readerName, readerEmail, content)
	r.topLevel[articleID] = append([]string{c.ID}, r.topLevel[articleID]...)
	return *c
}

// Reply adds a reply under a top-level comment. Replying to a reply is
// rejected: the tree is one level deep.
func (r *Registry) Reply(parentID, articleID, readerName, readerEmail, content string) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent, ok := r.comments[parentID]
	if !ok {
		return models.Comment{}, ErrNotFound
	}
	if parent.ParentID != "" {
		return models.Comment{}, ErrNestedReply
	}

	c := r.newComment(parent.ArticleID, parentID, readerName, readerEmail, content)
	r.children[parentID] = append(r.children[parentID], c.ID)
	return *c, nil
}

// Toggle applies like semantics: same vote again switches it off, the
// opposite vote replaces it. Returns the resulting authoritative counts.
func (r *Registry) Toggle(commentID, email string, vote models.Vote) (models.LikeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[commentID]; !ok {
		return models.LikeResult{}, ErrNotFound
	}

	voters := r.votes[commentID]
	if voters == nil {
		voters = make(map[string]models.Vote)
		r.votes[commentID] = voters
	}

	switch voters[email] {
	case vote:
		delete(voters, email)
	default:
		voters[email] = vote
	}

	likes, dislikes := r.count(commentID)
	current, ok := voters[email]
	if !ok {
		current = models.VoteNone
	}
	return models.LikeResult{Likes: likes, Dislikes: dislikes, LikeType: current}, nil
}

// Report records a report, rejecting duplicates per user per comment.
func (r *Registry) Report(commentID, email, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[commentID]; !ok {
		return ErrNotFound
	}

	reporters := r.reports[commentID]
	if reporters == nil {
		reporters = make(map[string]bool)
		r.reports[commentID] = reporters
	}
	if reporters[email] {
		return ErrDuplicateReport
	}
	reporters[email] = true
	return nil
}

// Delete removes the author's own comment, cascading over its replies.
func (r *Registry) Delete(commentID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.comments[commentID]
	if !ok {
		return ErrNotFound
	}
	if node.AuthorEmail != email {
		return ErrForbidden
	}

	if node.ParentID != "" {
		r.children[node.ParentID] = removeID(r.children[node.ParentID], commentID)
		r.drop(commentID)
		return nil
	}

	for _, rid := range r.children[commentID] {
		r.drop(rid)
	}
	delete(r.children, commentID)
	r.topLevel[node.ArticleID] = removeID(r.topLevel[node.ArticleID], commentID)
	r.drop(commentID)
	return nil
}

// SetStatus advances a comment's moderation status. This is the
// moderator-side hook; the client engine never calls it.
func (r *Registry) SetStatus(commentID string, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.comments[commentID]
	if !ok {
		return ErrNotFound
	}
	node.Status = status
	node.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Registry) newComment(articleID, parentID, readerName, readerEmail, content string) *models.Comment {
	now := time.Now().UTC()
	c := &models.Comment{
		ID:                uuid.NewString(),
		ArticleID:         articleID,
		ParentID:          parentID,
		AuthorEmail:       readerEmail,
		AuthorDisplayName: readerName,
		Content:           content,
		Status:            models.StatusWaiting,
		ViewerVote:        models.VoteNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.comments[c.ID] = c
	return c
}

// view builds the outward copy of a node with counts and viewer vote.
func (r *Registry) view(id, viewerEmail string) models.Comment {
	node := *r.comments[id]
	node.LikeCount, node.DislikeCount = r.count(id)
	node.ViewerVote = models.VoteNone
	if v, ok := r.votes[id][viewerEmail]; ok && viewerEmail != "" {
		node.ViewerVote = v
	}
	return node
}

func (r *Registry) count(id string) (likes, dislikes int) {
	for _, v := range r.votes[id] {
		switch v {
		case models.VoteLike:
			likes++
		case models.VoteDislike:
			dislikes++
		}
	}
	return likes, dislikes
}

func (r *Registry) drop(id string) {
	delete(r.comments, id)
	delete(r.votes, id)
	delete(r.reports, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
