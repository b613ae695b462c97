// Package store holds the per-article comment tree. Comments live in a
// single flat map keyed by id with ParentID back-references plus an
// ordered list of top-level ids, so every mutation has exactly one place
// to update. Views are assembled on demand into the one-level
// comment/reply shape consumers render.
package store

import (
	"fmt"
	"sync"

	"github.com/news-comment-engine/internal/models"
)

// Store is the comment tree for a single article. All mutating paths
// (initial fetch, submit, like, delete) write through the same store;
// last write wins.
type Store struct {
	mu        sync.RWMutex
	articleID string
	nodes     map[string]*models.Comment
	topLevel  []string            // ordered top-level ids, newest first
	children  map[string][]string // parent id -> ordered reply ids, oldest first
}

// New creates an empty store for the given article.
func New(articleID string) *Store {
	return &Store{
		articleID: articleID,
		nodes:     make(map[string]*models.Comment),
		children:  make(map[string][]string),
	}
}

// ArticleID returns the owning article id.
func (s *Store) ArticleID() string {
	return s.articleID
}

// Replace discards all state and loads a freshly fetched comment tree.
// Concurrent edits from other sessions are reconciled only this way,
// never merged.
func (s *Store) Replace(comments []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[string]*models.Comment)
	s.topLevel = s.topLevel[:0]
	s.children = make(map[string][]string)

	for i := range comments {
		c := comments[i]
		replies := c.Replies
		c.Replies = nil
		node := c
		s.nodes[c.ID] = &node
		s.topLevel = append(s.topLevel, c.ID)

		for j := range replies {
			r := replies[j]
			r.Replies = nil
			r.ParentID = c.ID
			reply := r
			s.nodes[r.ID] = &reply
			s.children[c.ID] = append(s.children[c.ID], r.ID)
		}
	}
}

// AddTopLevel prepends a new top-level comment.
func (s *Store) AddTopLevel(c models.Comment) error {
	if c.ParentID != "" {
		return fmt.Errorf("comment %s has a parent, use AddReply", c.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[c.ID]; ok {
		return fmt.Errorf("comment %s already present", c.ID)
	}
	c.Replies = nil
	s.nodes[c.ID] = &c
	s.topLevel = append([]string{c.ID}, s.topLevel...)
	return nil
}

// AddReply appends a reply to its parent's reply list. The parent must
// be a top-level comment: replies never nest further.
func (s *Store) AddReply(c models.Comment) error {
	if c.ParentID == "" {
		return fmt.Errorf("comment %s has no parent, use AddTopLevel", c.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.nodes[c.ParentID]
	if !ok {
		return fmt.Errorf("parent comment %s not found", c.ParentID)
	}
	if parent.ParentID != "" {
		return fmt.Errorf("parent comment %s is itself a reply", c.ParentID)
	}
	if _, ok := s.nodes[c.ID]; ok {
		return fmt.Errorf("comment %s already present", c.ID)
	}
	c.Replies = nil
	s.nodes[c.ID] = &c
	s.children[c.ParentID] = append(s.children[c.ParentID], c.ID)
	return nil
}

// ApplyVote writes the backend's authoritative counts and viewer vote
// onto a node verbatim. Counts are never incremented locally.
func (s *Store) ApplyVote(commentID string, result models.LikeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[commentID]
	if !ok {
		return fmt.Errorf("comment %s not found", commentID)
	}
	node.LikeCount = result.Likes
	node.DislikeCount = result.Dislikes
	node.ViewerVote = result.LikeType
	return nil
}

// Remove filters a comment out of whichever list currently holds it.
// Removing a top-level comment also drops its replies: once the parent
// is gone the replies are unreachable, so they are deleted rather than
// leaked.
func (s *Store) Remove(commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[commentID]
	if !ok {
		return fmt.Errorf("comment %s not found", commentID)
	}

	if node.ParentID != "" {
		s.children[node.ParentID] = removeID(s.children[node.ParentID], commentID)
		delete(s.nodes, commentID)
		return nil
	}

	for _, replyID := range s.children[commentID] {
		delete(s.nodes, replyID)
	}
	delete(s.children, commentID)
	s.topLevel = removeID(s.topLevel, commentID)
	delete(s.nodes, commentID)
	return nil
}

// Get returns a copy of a comment without its replies.
func (s *Store) Get(commentID string) (models.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[commentID]
	if !ok {
		return models.Comment{}, false
	}
	return *node, true
}

// TopLevel assembles the ordered view of top-level comments with their
// replies populated.
func (s *Store) TopLevel() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0, len(s.topLevel))
	for _, id := range s.topLevel {
		node := *s.nodes[id]
		replyIDs := s.children[id]
		if len(replyIDs) > 0 {
			node.Replies = make([]models.Comment, 0, len(replyIDs))
			for _, rid := range replyIDs {
				node.Replies = append(node.Replies, *s.nodes[rid])
			}
		}
		out = append(out, node)
	}
	return out
}

// Len returns the total number of stored comments including replies.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
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
