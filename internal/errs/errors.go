package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUnauthorized     = Error("unauthorized")
	ErrInvalidToken     = Error("invalid token")
	ErrSessionRevoked   = Error("session revoked")
	ErrBoardNotFound    = Error("board not found")
	ErrProfileNotFound  = Error("profile not found")
	ErrNoSnapshot       = Error("no snapshot available")
	ErrEmptyImage       = Error("empty image")
	ErrNoObjectStore    = Error("object store not configured")
	ErrSaveInProgress   = Error("save already in progress")
	ErrNoImage          = Error("document has nothing to render")
	ErrControllerClosed = Error("autosave controller closed")
	ErrUnexpectedStatus = Error("unexpected response status")

	ErrMissingSessionSecret = Error("SESSION_SECRET is required")
)
