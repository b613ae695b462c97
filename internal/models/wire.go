package models

// Envelope is the common response wrapper used by the comment backend.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CommentListData is the payload of GET /comments.
type CommentListData struct {
	Comments []Comment `json:"comments"`
}

// CommentListResponse is the full response of GET /comments.
type CommentListResponse struct {
	Envelope
	Data CommentListData `json:"data"`
}

// CommentData wraps a single created comment.
type CommentData struct {
	Comment Comment `json:"comment"`
}

// CommentResponse is the response of POST /comments and POST /comments/:id/reply.
type CommentResponse struct {
	Envelope
	Data CommentData `json:"data"`
}

// CreateCommentRequest is the payload of POST /comments and
// POST /comments/:id/reply.
type CreateCommentRequest struct {
	NewsID      string `json:"news_id"`
	Content     string `json:"content"`
	ReaderName  string `json:"reader_name"`
	ReaderEmail string `json:"reader_email"`
}

// LikeRequest is the payload of POST /comments/:id/likes.
type LikeRequest struct {
	UserEmail string `json:"user_email"`
	LikeType  Vote   `json:"like_type"`
}

// LikeResult carries the backend's authoritative counts after a toggle.
// LikeType is the viewer's resulting vote, "none" when toggled off.
type LikeResult struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	LikeType Vote `json:"like_type"`
}

// LikeResponse is the response of POST /comments/:id/likes.
type LikeResponse struct {
	Envelope
	Data LikeResult `json:"data"`
}

// ReportRequest is the payload of POST /comments/:id/report.
type ReportRequest struct {
	UserEmail string `json:"user_email"`
	Reason    string `json:"reason"`
}

// DeleteRequest is the payload of DELETE /comments/:id/delete.
type DeleteRequest struct {
	UserEmail string `json:"user_email"`
}

// Predefined report reasons. ReportReasonOther requires free-text detail.
const (
	ReportReasonSpam           = "spam"
	ReportReasonHarassment     = "harassment"
	ReportReasonHateSpeech     = "hate_speech"
	ReportReasonMisinformation = "misinformation"
	ReportReasonOther          = "other"
)

// ValidReportReasons defines the selectable report reasons.
var ValidReportReasons = map[string]bool{
	ReportReasonSpam:           true,
	ReportReasonHarassment:     true,
	ReportReasonHateSpeech:     true,
	ReportReasonMisinformation: true,
	ReportReasonOther:          true,
}

// MaxReportDetailLength caps the free-text detail of an "other" report.
const MaxReportDetailLength = 500
