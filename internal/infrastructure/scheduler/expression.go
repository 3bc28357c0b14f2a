package scheduler

import (
	"fmt"
	"regexp"
	"time"
)

// Schedule expressions encode an absolute fire instant at second granularity,
// UTC: at(YYYY-MM-DDTHH:MM:SS).
const expressionLayout = "2006-01-02T15:04:05"

// pastTolerance is how far in the past a fire time may lie and still be
// accepted, absorbing clock skew between caller and engine.
const pastTolerance = time.Minute

var atExpressionRe = regexp.MustCompile(`^at\((\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})\)$`)

// AtExpression encodes an absolute instant as a one-shot schedule expression.
func AtExpression(t time.Time) string {
	return fmt.Sprintf("at(%s)", t.UTC().Format(expressionLayout))
}

// ParseExpression extracts the UTC fire instant from an at() expression.
func ParseExpression(expr string) (time.Time, error) {
	m := atExpressionRe.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected at(YYYY-MM-DDTHH:MM:SS)", ErrInvalidExpression, expr)
	}
	t, err := time.ParseInLocation(expressionLayout, m[1], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, expr, err)
	}
	return t, nil
}

// ValidateExpression parses expr and rejects fire instants earlier than
// now minus the past tolerance. It returns the fire instant on success.
func ValidateExpression(expr string, now time.Time) (time.Time, error) {
	fireAt, err := ParseExpression(expr)
	if err != nil {
		return time.Time{}, err
	}
	if fireAt.Before(now.Add(-pastTolerance)) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrPastFireTime, fireAt.Format(time.RFC3339))
	}
	return fireAt, nil
}
