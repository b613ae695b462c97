package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/news-comment-engine/internal/models"
	"github.com/news-comment-engine/internal/store"
)

func comment(id, parentID string) models.Comment {
	return models.Comment{
		ID:          id,
		ArticleID:   "article-1",
		ParentID:    parentID,
		AuthorEmail: "reader@example.com",
		Content:     "content of " + id,
		Status:      models.StatusWaiting,
		ViewerVote:  models.VoteNone,
		CreatedAt:   time.Now(),
	}
}

func fetched() []models.Comment {
	c1 := comment("c1", "")
	c1.Replies = []models.Comment{comment("r1", "c1"), comment("r2", "c1")}
	c2 := comment("c2", "")
	return []models.Comment{c1, c2}
}

func TestReplace_BuildsTree(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	if s.Len() != 4 {
		t.Fatalf("Expected 4 nodes, got %d", s.Len())
	}

	top := s.TopLevel()
	if len(top) != 2 {
		t.Fatalf("Expected 2 top-level comments, got %d", len(top))
	}
	if top[0].ID != "c1" || top[1].ID != "c2" {
		t.Errorf("Expected order [c1 c2], got [%s %s]", top[0].ID, top[1].ID)
	}
	if len(top[0].Replies) != 2 {
		t.Fatalf("Expected 2 replies under c1, got %d", len(top[0].Replies))
	}
	if top[0].Replies[0].ID != "r1" || top[0].Replies[1].ID != "r2" {
		t.Errorf("Expected reply order [r1 r2], got [%s %s]", top[0].Replies[0].ID, top[0].Replies[1].ID)
	}
	if len(top[1].Replies) != 0 {
		t.Errorf("Expected no replies under c2, got %d", len(top[1].Replies))
	}
}

func TestAddTopLevel_Prepends(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	if err := s.AddTopLevel(comment("c3", "")); err != nil {
		t.Fatalf("AddTopLevel failed: %v", err)
	}

	top := s.TopLevel()
	if top[0].ID != "c3" {
		t.Errorf("Expected new comment at head, got %s", top[0].ID)
	}

	if err := s.AddTopLevel(comment("r9", "c1")); err == nil {
		t.Error("Expected error adding a reply via AddTopLevel")
	}
	if err := s.AddTopLevel(comment("c3", "")); err == nil {
		t.Error("Expected error adding a duplicate id")
	}
}

func TestAddReply_AppendsToParent(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	if err := s.AddReply(comment("r3", "c1")); err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}

	top := s.TopLevel()
	replies := top[0].Replies
	if len(replies) != 3 || replies[2].ID != "r3" {
		t.Fatalf("Expected r3 appended last, got %+v", replies)
	}
}

func TestAddReply_RejectsNesting(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	tests := []struct {
		name  string
		reply models.Comment
	}{
		{"reply to a reply", comment("r9", "r1")},
		{"missing parent", comment("r9", "ghost")},
		{"no parent id", comment("r9", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.AddReply(tt.reply); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestApplyVote_VerbatimFromBackend(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	// Counts come straight from the response, never incremented locally.
	result := models.LikeResult{Likes: 7, Dislikes: 3, LikeType: models.VoteDislike}
	if err := s.ApplyVote("r1", result); err != nil {
		t.Fatalf("ApplyVote failed: %v", err)
	}

	node, ok := s.Get("r1")
	if !ok {
		t.Fatal("r1 should exist")
	}
	if node.LikeCount != 7 || node.DislikeCount != 3 || node.ViewerVote != models.VoteDislike {
		t.Errorf("Expected 7/3/dislike, got %d/%d/%s", node.LikeCount, node.DislikeCount, node.ViewerVote)
	}

	if err := s.ApplyVote("ghost", result); err == nil {
		t.Error("Expected error for unknown comment")
	}
}

func TestRemove_ReplyLeavesSiblings(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	if err := s.Remove("r1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	top := s.TopLevel()
	if len(top) != 2 {
		t.Fatalf("Top-level list must be untouched, got %d entries", len(top))
	}
	replies := top[0].Replies
	if len(replies) != 1 || replies[0].ID != "r2" {
		t.Fatalf("Expected sibling r2 to survive, got %+v", replies)
	}
}

func TestRemove_TopLevelCascades(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())

	if err := s.Remove("c1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	top := s.TopLevel()
	if len(top) != 1 || top[0].ID != "c2" {
		t.Fatalf("Expected only c2 to remain, got %+v", top)
	}
	// Replies of the removed parent are deleted, not leaked.
	if s.Len() != 1 {
		t.Errorf("Expected 1 node after cascade, got %d", s.Len())
	}
	if _, ok := s.Get("r1"); ok {
		t.Error("r1 should have been cascade-removed")
	}
}

func TestReplace_DiscardsPreviousState(t *testing.T) {
	s := store.New("article-1")
	s.Replace(fetched())
	s.Replace([]models.Comment{comment("fresh", "")})

	if s.Len() != 1 {
		t.Fatalf("Expected 1 node after replace, got %d", s.Len())
	}
	if _, ok := s.Get("c1"); ok {
		t.Error("Old state must be discarded on replace")
	}
}

func BenchmarkTopLevel(b *testing.B) {
	s := store.New("article-1")
	seed := make([]models.Comment, 0, 100)
	for i := 0; i < 100; i++ {
		seed = append(seed, comment(fmt.Sprintf("c%03d", i), ""))
	}
	s.Replace(seed)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.TopLevel()
	}
}
