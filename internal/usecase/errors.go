package usecase

// UserError is a failure whose message is shown to the user verbatim.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func userError(msg string, cause error) error {
	return &UserError{Message: msg, Err: cause}
}

// ErrTokenNotConfigured is returned by every fetch when no credential is configured.
var ErrTokenNotConfigured = &UserError{
	Message: "GitHub token is not configured. Please check your environment variables.",
}

const (
	msgRateLimitExceeded = "GitHub API rate limit exceeded. Please try again later."
	msgInvalidResponse   = "Invalid response from GitHub API"
	msgNoGSOCRepos       = "No repositories found for GSOC organizations"
)
