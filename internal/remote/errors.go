package remote

// One error type per remote operation. Message carries whatever text the
// backend provided; Error falls back to generic wording when it sent none.

type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "failed to load scheduled posts"
}

func (e *FetchError) Unwrap() error { return e.Err }

type SubmitError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "something went wrong"
}

func (e *SubmitError) Unwrap() error { return e.Err }

type DeleteError struct {
	Status  int
	Message string
	Err     error
}

func (e *DeleteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "failed to delete post"
}

func (e *DeleteError) Unwrap() error { return e.Err }

type OtpError struct {
	Status  int
	Message string
	Err     error
}

func (e *OtpError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid OTP, please try again"
}

func (e *OtpError) Unwrap() error { return e.Err }

type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "login failed"
}

func (e *AuthError) Unwrap() error { return e.Err }
