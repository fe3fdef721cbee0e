package models

import (
	"errors"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

// ScheduledTimeLayout is the wall-clock format the backend expects for
// scheduled_time. It is deliberately timezone-free (datetime-local value).
const ScheduledTimeLayout = "2006-01-02T15:04"

type ScheduledPost struct {
	ID            int64  `json:"id"`
	Caption       string `json:"caption"`
	ImageFilename string `json:"image_filename"`
	Platform      string `json:"platform"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"` // scheduled, completed, failed, otp_required
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Active reports whether the post still needs to be shown to the user.
func (p ScheduledPost) Active() bool {
	return p.Status != PostStatusCompleted
}

const (
	PostStatusScheduled   = "scheduled"
	PostStatusCompleted   = "completed"
	PostStatusFailed      = "failed"
	PostStatusOtpRequired = "otp_required"
)

const (
	PlatformInstagram = "instagram"
	PlatformLinkedin  = "linkedin"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
)

// PostDraft is a post the user is still composing. Only instagram is
// actionable today; other platform values are forwarded as-is.
type PostDraft struct {
	Caption       string    `json:"caption"`
	ImageFilename string    `json:"filename"`
	Platform      string    `json:"platform"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

var (
	ErrMissingCaption = errors.New("caption is required")
	ErrMissingTime    = errors.New("scheduled time is required")
	ErrTimeInPast     = errors.New("scheduled time must be in the future")
)

// Validate checks submittability. The wall clock is read at call time, not
// at draft creation, since the user may idle on the form.
func (d PostDraft) Validate() error {
	if err := v.ValidateStruct(&d, v.Field(&d.Caption, v.Required)); err != nil {
		return ErrMissingCaption
	}
	if d.ScheduledAt.IsZero() {
		return ErrMissingTime
	}
	if d.ScheduledAt.Before(time.Now()) {
		return ErrTimeInPast
	}
	return nil
}

// NewDraft returns an empty draft with the default platform selected.
func NewDraft() PostDraft {
	return PostDraft{Platform: PlatformInstagram}
}
