package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig        ErrorCode = "invalid_configuration"
	ErrBindFlags            ErrorCode = "bind_flags_failed"
	ErrInvalidInterval      ErrorCode = "invalid_interval"
	ErrInvalidCyclesPerMode ErrorCode = "invalid_cycles_per_mode"
	ErrInvalidSensorSource  ErrorCode = "invalid_sensor_source"
	ErrInvalidTempUnit      ErrorCode = "invalid_temperature_unit"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp  ErrorCode = "init_app_failed"
	ErrMainLoop ErrorCode = "main_loop_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"
	ErrRetryExhausted  ErrorCode = "retry_exhausted"

	// Metrics errors
	ErrInitMetrics  ErrorCode = "init_metrics_failed"
	ErrServeMetrics ErrorCode = "serve_metrics_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:             "Internal error occurred",
	ErrInvalidArgument:      "Invalid argument provided",
	ErrUnavailable:          "Service unavailable",
	ErrInvalidConfig:        "Invalid configuration",
	ErrBindFlags:            "Failed to bind flags",
	ErrInvalidInterval:      "Invalid interval value",
	ErrInvalidCyclesPerMode: "Cycles per mode must be at least 1",
	ErrInvalidSensorSource:  "Unknown sensor source",
	ErrInvalidTempUnit:      "Unknown temperature unit",
	ErrInvalidLogLevel:      "Invalid log level",
	ErrInitFailed:           "Initialization failed",
	ErrShutdownFailed:       "Shutdown failed",
	ErrInitApp:              "Failed to initialize application",
	ErrMainLoop:             "Error in main loop",
	ErrOperationFailed:      "Operation failed",
	ErrTimeout:              "Operation timed out",
	ErrRetryExhausted:       "Retries exhausted",
	ErrInitMetrics:          "Failed to initialize metrics",
	ErrServeMetrics:         "Failed to serve metrics endpoint",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
