package gauges

import (
	"fmt"
	"strconv"
)

// Params is the flat key → scalar value set attached to an outgoing request.
// Values keep their declared type (string or int) until the transport
// boundary, where they are rendered as query-string parameters.
type Params map[string]any

// queryValues renders params as query-string values.
func (p Params) queryValues() map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for key, val := range p {
		out[key] = renderScalar(val)
	}
	return out
}

func renderScalar(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// String returns a pointer to s, for filling optional parameter fields.
func String(s string) *string { return &s }

// Int returns a pointer to i, for filling optional parameter fields.
func Int(i int) *int { return &i }
