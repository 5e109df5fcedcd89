package aitools

import (
	"encoding/json"
	"fmt"

	"boardsight/summary"
)

// DefaultContextItemLimit caps item lists serialized into model context.
const DefaultContextItemLimit = 50

// ResultInterceptor turns tool results into the text appended to the model
// context, trimming long item lists so large boards stay within budget.
type ResultInterceptor struct {
	limit int
}

// NewResultInterceptor creates an interceptor keeping at most limit items per
// list. Non-positive limits fall back to DefaultContextItemLimit.
func NewResultInterceptor(limit int) *ResultInterceptor {
	if limit <= 0 {
		limit = DefaultContextItemLimit
	}
	return &ResultInterceptor{limit: limit}
}

// Limit returns the per-list item cap.
func (i *ResultInterceptor) Limit() int {
	return i.limit
}

// Intercept serializes the trimmed view of result.
func (i *ResultInterceptor) Intercept(result summary.Result) string {
	b, err := json.Marshal(result.ForContext(i.limit))
	if err != nil {
		return ErrorContent(fmt.Errorf("encode result: %w", err))
	}
	return string(b)
}

// ErrorContent is the context text recorded for a failed tool call.
func ErrorContent(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}
