package models

import (
	"time"
)

// Status is the moderation lifecycle state of a comment. The submission
// pipeline always creates comments as waiting; only an external moderator
// action advances the status afterwards.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// ValidStatuses defines allowed comment statuses
var ValidStatuses = map[Status]bool{
	StatusWaiting:   true,
	StatusPublished: true,
	StatusRejected:  true,
}

// Vote is the viewer's own reaction to a comment. At most one of
// like/dislike is active at a time.
type Vote string

const (
	VoteNone    Vote = "none"
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
)

// Comment represents a comment on an article. Replies carry a ParentID
// referencing a top-level comment; replies never nest further, so Replies
// is populated only on top-level comments.
type Comment struct {
	ID                string    `json:"id"`
	ArticleID         string    `json:"news_id"`
	AuthorEmail       string    `json:"reader_email"`
	AuthorDisplayName string    `json:"reader_name"`
	Content           string    `json:"content"`
	ParentID          string    `json:"parent_id,omitempty"`
	Status            Status    `json:"status"`
	LikeCount         int       `json:"likes"`
	DislikeCount      int       `json:"dislikes"`
	ViewerVote        Vote      `json:"viewer_vote"`
	Replies           []Comment `json:"replies,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsReply reports whether the comment is a reply to a top-level comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != ""
}

// MaxContentLength is the maximum allowed comment length in runes,
// measured after trimming surrounding whitespace.
const MaxContentLength = 500
