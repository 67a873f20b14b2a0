package errors

// ErrorCode identifies a failure class. Shared codes live in codes.go;
// sensor, region and display codes are declared in their own packages.
type ErrorCode string

// Error is a coded error carrying optional context. The code survives
// wrapping, so callers can branch on it (torn region vs lost region,
// device missing vs write failed) without matching message text.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory creates coded errors
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
