package gauges

import "fmt"

// InvalidMethodError reports a request built with an HTTP verb outside the
// set the Gauges API accepts. It is raised before any network I/O happens.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("gauges: invalid HTTP method %q (must be one of GET, POST, PUT, DELETE)", e.Method)
}
