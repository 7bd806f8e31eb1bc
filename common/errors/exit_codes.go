package errors

type ExitCode int

const (
	// The replay ran but the schedule deviated from at least one expectation.
	TraceMismatchExitCode ExitCode = 1

	UsageFailureExitCode ExitCode = 64

	ConfigFailureExitCode ExitCode = 70

	TraceParseFailureExitCode ExitCode = 80
	TraceReadFailureExitCode  ExitCode = 81
)
