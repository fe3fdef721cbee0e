package otp

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Verifier is the slice of the remote store the handler needs.
type Verifier interface {
	VerifyOtp(ctx context.Context, code string, postID int64) error
}

type State int

const (
	StateIdle State = iota
	StateOpen
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrEmptyCode   = errors.New("enter the OTP before submitting")
	ErrNoChallenge = errors.New("no OTP challenge is open")
	ErrSubmitting  = errors.New("OTP verification is already in progress")
)

// Challenge is a read-only snapshot of the handler state.
type Challenge struct {
	State  State  `json:"state"`
	PostID int64  `json:"post_id,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Handler drives the OTP confirmation sub-flow for a single post at a time.
// At most one challenge exists; opening another replaces it. A challenge
// that is submitting can be neither cancelled nor replaced, so at most one
// verification attempt is ever in flight per handler.
type Handler struct {
	verifier   Verifier
	onResolved func(ctx context.Context)

	mu      sync.Mutex
	state   State
	postID  int64
	code    string
	lastErr string
}

// NewHandler creates an idle handler. onResolved runs after the remote
// store accepts a code, typically to refresh the post registry; it may be
// nil.
func NewHandler(verifier Verifier, onResolved func(ctx context.Context)) *Handler {
	return &Handler{verifier: verifier, onResolved: onResolved}
}

// Open starts a challenge for the given post, discarding any challenge that
// is open but not yet submitting.
func (h *Handler) Open(postID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateSubmitting {
		return ErrSubmitting
	}
	h.state = StateOpen
	h.postID = postID
	h.code = ""
	h.lastErr = ""
	return nil
}

// SetCode records the user-entered code. The code is never auto-cleared on
// a failed attempt; the user corrects or clears it explicitly.
func (h *Handler) SetCode(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.state {
	case StateIdle:
		return ErrNoChallenge
	case StateSubmitting:
		return ErrSubmitting
	}
	h.code = code
	return nil
}

func (h *Handler) ClearCode() error {
	return h.SetCode("")
}

// Cancel discards an open challenge. A submitting challenge must wait for
// the in-flight result.
func (h *Handler) Cancel() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.state {
	case StateIdle:
		return ErrNoChallenge
	case StateSubmitting:
		return ErrSubmitting
	}
	h.reset()
	return nil
}

// Submit sends the entered code to the remote store. An empty code is
// rejected locally without a network call. On success the challenge closes
// and onResolved fires; on rejection the challenge returns to open with the
// server's message, code retained.
func (h *Handler) Submit(ctx context.Context) error {
	h.mu.Lock()
	switch h.state {
	case StateIdle:
		h.mu.Unlock()
		return ErrNoChallenge
	case StateSubmitting:
		h.mu.Unlock()
		return ErrSubmitting
	}
	code := strings.TrimSpace(h.code)
	if code == "" {
		h.mu.Unlock()
		return ErrEmptyCode
	}
	postID := h.postID
	h.state = StateSubmitting
	h.mu.Unlock()

	err := h.verifier.VerifyOtp(ctx, code, postID)

	h.mu.Lock()
	if err != nil {
		h.state = StateOpen
		h.lastErr = err.Error()
		h.mu.Unlock()
		return err
	}
	h.reset()
	h.mu.Unlock()

	if h.onResolved != nil {
		h.onResolved(ctx)
	}
	return nil
}

// Snapshot returns the current challenge for display.
func (h *Handler) Snapshot() Challenge {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Challenge{
		State:  h.state,
		PostID: h.postID,
		Code:   h.code,
		Error:  h.lastErr,
	}
}

// reset requires h.mu held.
func (h *Handler) reset() {
	h.state = StateIdle
	h.postID = 0
	h.code = ""
	h.lastErr = ""
}
