package errors

import "fmt"

var (
	ErrMissingSecret    = fmt.Errorf("missing secret")
	ErrInvalidAuthLevel = fmt.Errorf("invalid auth level")

	ErrDuplicateSessionName    = fmt.Errorf("duplicate session config name")
	ErrEmptyAppSequence        = fmt.Errorf("empty app sequence")
	ErrInvalidDemoParticipants = fmt.Errorf("num_demo_participants must be positive")
	ErrDuplicateRoom           = fmt.Errorf("duplicate room name")
	ErrDuplicateField          = fmt.Errorf("duplicate field name")
	ErrReservedField           = fmt.Errorf("field name is reserved")
	ErrInvalidLanguage         = fmt.Errorf("invalid language code")
	ErrInvalidCurrency         = fmt.Errorf("invalid currency code")
	ErrInvalidSettings         = fmt.Errorf("invalid settings")
	ErrUnknownSettingsField    = fmt.Errorf("unknown settings field")

	ErrUnknownSessionConfig = fmt.Errorf("unknown session config")
	ErrUnknownRoom          = fmt.Errorf("unknown room")
	ErrUndeclaredField      = fmt.Errorf("field is not declared")
	ErrSnapshotNotFound     = fmt.Errorf("snapshot not found")

	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password is not complex enough")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)
