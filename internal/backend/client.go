// Package backend is the typed HTTP client for the comment API the
// platform backend exposes. The backend is the sole authority on
// persisted state: created comments, authoritative like counts and the
// viewer's resulting vote all come back in its responses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/news-comment-engine/internal/config"
	"github.com/news-comment-engine/internal/models"
	"github.com/rs/zerolog"
)

// Client defines the comment backend operations the engine consumes.
type Client interface {
	FetchComments(ctx context.Context, articleID, viewerEmail string) ([]models.Comment, error)
	CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error)
	CreateReply(ctx context.Context, parentID string, req models.CreateCommentRequest) (models.Comment, error)
	ToggleLike(ctx context.Context, commentID, userEmail string, likeType models.Vote) (models.LikeResult, error)
	Report(ctx context.Context, commentID, userEmail, reason string) error
	Delete(ctx context.Context, commentID, userEmail string) error
}

// httpClient is the concrete HTTP implementation of Client.
type httpClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a backend client from configuration
func NewClient(cfg *config.BackendConfig, log zerolog.Logger) Client {
	return &httpClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// FetchComments loads the article's comment tree. The viewer email is
// optional; when present the response resolves the viewer's own votes.
func (c *httpClient) FetchComments(ctx context.Context, articleID, viewerEmail string) ([]models.Comment, error) {
	q := url.Values{}
	q.Set("newsId", articleID)
	if viewerEmail != "" {
		q.Set("user_email", viewerEmail)
	}

	var out models.CommentListResponse
	if err := c.do(ctx, http.MethodGet, "/comments?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Comments, nil
}

// CreateComment posts a new top-level comment.
func (c *httpClient) CreateComment(ctx context.Context, req models.CreateCommentRequest) (models.Comment, error) {
	var out models.CommentResponse
	if err := c.do(ctx, http.MethodPost, "/comments", req, &out); err != nil {
		return models.Comment{}, err
	}
	return out.Data.Comment, nil
}

// CreateReply posts a reply under a top-level comment.
func (c *httpClient) CreateReply(ctx context.Context, parentID string, req models.CreateCommentRequest) (models.Comment, error) {
	var out models.CommentResponse
	if err := c.do(ctx, http.MethodPost, "/comments/"+parentID+"/reply", req, &out); err != nil {
		return models.Comment{}, err
	}
	return out.Data.Comment, nil
}

// ToggleLike sends a like/dislike toggle. The backend decides the
// toggle-off / switch semantics and returns the resulting counts.
func (c *httpClient) ToggleLike(ctx context.Context, commentID, userEmail string, likeType models.Vote) (models.LikeResult, error) {
	req := models.LikeRequest{UserEmail: userEmail, LikeType: likeType}

	var out models.LikeResponse
	if err := c.do(ctx, http.MethodPost, "/comments/"+commentID+"/likes", req, &out); err != nil {
		return models.LikeResult{}, err
	}
	return out.Data, nil
}

// Report files a report against a comment. Duplicate prevention is
// enforced server-side.
func (c *httpClient) Report(ctx context.Context, commentID, userEmail, reason string) error {
	req := models.ReportRequest{UserEmail: userEmail, Reason: reason}

	var out models.Envelope
	return c.do(ctx, http.MethodPost, "/comments/"+commentID+"/report", req, &out)
}

// Delete removes the viewer's own comment.
func (c *httpClient) Delete(ctx context.Context, commentID, userEmail string) error {
	req := models.DeleteRequest{UserEmail: userEmail}

	var out models.Envelope
	return c.do(ctx, http.MethodDelete, "/comments/"+commentID+"/delete", req, &out)
}

// do performs one request/response cycle. Transport failures and
// non-2xx statuses both surface as NetworkError; responses are decoded
// into out when it is non-nil.
func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Msg("Backend request failed")
		return &models.NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &models.NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}
