package gauges

import "fmt"

// Logger is the logging surface the client relies on: a single debug-level
// sink. Absence of a logger is a valid state, not an error.
type Logger interface {
	Debug(msg string)
}

// LogFormat renders the one debug line emitted per dispatched call.
type LogFormat func(op, baseURL string, status int) string

// DefaultLogFormat tags a call "successful" only when the status code is
// exactly 200; every other code, 2xx included, is reported with its value.
func DefaultLogFormat(op, baseURL string, status int) string {
	if status == 200 {
		return fmt.Sprintf("%s %s successful", op, baseURL)
	}
	return fmt.Sprintf("%s %s unsuccessful (%d)", op, baseURL, status)
}
