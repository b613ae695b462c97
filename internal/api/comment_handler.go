package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/news-comment-engine/internal/models"
	"github.com/rs/zerolog"
)

// CommentHandler serves the comment endpoints of the collaborator
// backend contract against the in-memory registry.
type CommentHandler struct {
	registry *Registry
	log      zerolog.Logger
}

// NewCommentHandler creates a comment handler
func NewCommentHandler(registry *Registry, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		registry: registry,
		log:      log.With().Str("component", "comment_handler").Logger(),
	}
}

// ListComments handles GET /comments?newsId={id}[&user_email={email}]
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID := c.Query("newsId")
	if articleID == "" {
		badRequest(c, "newsId is required")
		return
	}

	comments := h.registry.List(articleID, c.Query("user_email"))
	c.JSON(http.StatusOK, models.CommentListResponse{
		Envelope: models.Envelope{Success: true},
		Data:     models.CommentListData{Comments: comments},
	})
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	req, ok := h.bindCreate(c)
	if !ok {
		return
	}

	created := h.registry.Create(req.NewsID, req.ReaderName, req.ReaderEmail, req.Content)
	h.log.Info().Str("comment_id", created.ID).Str("news_id", req.NewsID).Msg("Comment created")

	c.JSON(http.StatusCreated, models.CommentResponse{
		Envelope: models.Envelope{Success: true},
		Data:     models.CommentData{Comment: created},
	})
}

// CreateReply handles POST /comments/:id/reply
func (h *CommentHandler) CreateReply(c *gin.Context) {
	req, ok := h.bindCreate(c)
	if !ok {
		return
	}

	created, err := h.registry.Reply(c.Param("id"), req.NewsID, req.ReaderName, req.ReaderEmail, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CommentResponse{
		Envelope: models.Envelope{Success: true},
		Data:     models.CommentData{Comment: created},
	})
}

// ToggleLike handles POST /comments/:id/likes
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.UserEmail == "" {
		badRequest(c, "user_email is required")
		return
	}
	if req.LikeType != models.VoteLike && req.LikeType != models.VoteDislike {
		badRequest(c, "like_type must be 'like' or 'dislike'")
		return
	}

	result, err := h.registry.Toggle(c.Param("id"), req.UserEmail, req.LikeType)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LikeResponse{
		Envelope: models.Envelope{Success: true},
		Data:     result,
	})
}

// ReportComment handles POST /comments/:id/report
func (h *CommentHandler) ReportComment(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.UserEmail == "" || strings.TrimSpace(req.Reason) == "" {
		badRequest(c, "user_email and reason are required")
		return
	}

	if err := h.registry.Report(c.Param("id"), req.UserEmail, req.Reason); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "report submitted"})
}

// DeleteComment handles DELETE /comments/:id/delete
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.UserEmail == "" {
		badRequest(c, "user_email is required")
		return
	}

	if err := h.registry.Delete(c.Param("id"), req.UserEmail); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "comment deleted"})
}

// bindCreate validates the shared create/reply payload.
func (h *CommentHandler) bindCreate(c *gin.Context) (models.CreateCommentRequest, bool) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return req, false
	}

	req.Content = strings.TrimSpace(req.Content)
	switch {
	case req.NewsID == "":
		badRequest(c, "news_id is required")
	case req.ReaderEmail == "":
		badRequest(c, "reader_email is required")
	case req.Content == "":
		badRequest(c, "content is required")
	case utf8.RuneCountInString(req.Content) > models.MaxContentLength:
		badRequest(c, "content exceeds maximum length")
	default:
		return req, true
	}
	return req, false
}

// fail maps registry errors to response statuses.
func (h *CommentHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, models.Envelope{Success: false, Message: err.Error()})
	case errors.Is(err, ErrDuplicateReport):
		c.JSON(http.StatusConflict, models.Envelope{Success: false, Message: err.Error()})
	case errors.Is(err, ErrNestedReply):
		c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("Unexpected registry error")
		c.JSON(http.StatusInternalServerError, models.Envelope{Success: false, Message: "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: message})
}
