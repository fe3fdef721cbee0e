package remote

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/transfer"
	"github.com/go-resty/resty/v2"
)

// backendCookieName is the cookie the remote store issues at login.
const backendCookieName = "session"

// PostStore is the remote service that owns scheduled posts and OTP
// verification. Every call carries the captured session cookie.
type PostStore interface {
	Login(ctx context.Context, username, password string) error
	ListPosts(ctx context.Context) ([]models.ScheduledPost, error)
	SchedulePost(ctx context.Context, req *transfer.SchedulePostRequest) error
	DeletePost(ctx context.Context, postID int64) error
	VerifyOtp(ctx context.Context, code string, postID int64) error
	FetchImage(ctx context.Context, filename string) ([]byte, error)
	SessionCookie() string
	SetSessionCookie(value string)
}

type storeClient struct {
	http *resty.Client

	mu      sync.RWMutex
	session string
}

func NewStoreClient(baseURL string) PostStore {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	return &storeClient{http: c}
}

func (c *storeClient) SessionCookie() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *storeClient) SetSessionCookie(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = value
}

func (c *storeClient) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if s := c.SessionCookie(); s != "" {
		r.SetCookie(&http.Cookie{Name: backendCookieName, Value: s})
	}
	return r
}

func (c *storeClient) Login(ctx context.Context, username, password string) error {
	var out transfer.APIResponse
	resp, err := c.request(ctx).
		SetBody(transfer.LoginRequest{Username: username, Password: password}).
		SetResult(&out).
		SetError(&out).
		Post("/api/login")
	if err != nil {
		return &AuthError{Err: err}
	}
	if resp.IsError() || !out.Success {
		return &AuthError{Status: resp.StatusCode(), Message: out.ErrorText()}
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == backendCookieName {
			c.SetSessionCookie(cookie.Value)
			return nil
		}
	}
	slog.Warn("login succeeded but no session cookie was set")
	return nil
}

func (c *storeClient) ListPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	var out transfer.ScheduledPostsResponse
	resp, err := c.request(ctx).
		SetResult(&out).
		SetError(&out).
		Get("/api/scheduled-posts")
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if resp.IsError() || !out.Success {
		return nil, &FetchError{Status: resp.StatusCode(), Message: out.Error}
	}
	return out.Posts, nil
}

func (c *storeClient) SchedulePost(ctx context.Context, req *transfer.SchedulePostRequest) error {
	var out transfer.APIResponse
	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/api/schedule-post")
	if err != nil {
		return &SubmitError{Err: err}
	}
	if resp.IsError() || !out.Success {
		return &SubmitError{Status: resp.StatusCode(), Message: out.ErrorText()}
	}
	return nil
}

func (c *storeClient) DeletePost(ctx context.Context, postID int64) error {
	var out transfer.APIResponse
	resp, err := c.request(ctx).
		SetResult(&out).
		SetError(&out).
		Delete("/api/scheduled-post/" + strconv.FormatInt(postID, 10))
	if err != nil {
		return &DeleteError{Err: err}
	}
	if resp.IsError() || !out.Success {
		return &DeleteError{Status: resp.StatusCode(), Message: out.ErrorText()}
	}
	return nil
}

func (c *storeClient) VerifyOtp(ctx context.Context, code string, postID int64) error {
	var out transfer.APIResponse
	resp, err := c.request(ctx).
		SetBody(transfer.VerifyOtpRequest{Otp: code, PostID: postID}).
		SetResult(&out).
		SetError(&out).
		Post("/api/verify-scheduled-otp")
	if err != nil {
		return &OtpError{Err: err}
	}
	if resp.IsError() || !out.Success {
		return &OtpError{Status: resp.StatusCode(), Message: out.ErrorText()}
	}
	return nil
}

func (c *storeClient) FetchImage(ctx context.Context, filename string) ([]byte, error) {
	resp, err := c.request(ctx).
		SetQueryParam("filename", filename).
		Get("/api/get-image")
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{Status: resp.StatusCode(), Message: "image not found"}
	}
	return resp.Body(), nil
}
