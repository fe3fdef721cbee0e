package transfer

import "github.com/SireeshaRagipati24/instagen-scheduler/internal/models"

type SchedulePostRequest struct {
	Caption       string `json:"caption"`
	Filename      string `json:"filename"`
	ScheduledTime string `json:"scheduled_time"`
	Platform      string `json:"platform"`
}

type ScheduledPostsResponse struct {
	Success bool                   `json:"success"`
	Posts   []models.ScheduledPost `json:"posts"`
	Error   string                 `json:"error,omitempty"`
}

type VerifyOtpRequest struct {
	Otp    string `json:"otp"`
	PostID int64  `json:"post_id"`
}

// APIResponse is the generic success/error envelope the backend uses for
// mutating endpoints. Login failures report through "message" instead of
// "error", hence both fields.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r APIResponse) ErrorText() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
