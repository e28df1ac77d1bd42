package llm

import "context"

type purposeKey struct{}

// PurposeExplanation labels calls that explain a quiz answer.
const PurposeExplanation = "explanation"

// WithPurpose labels calls made with ctx in the request log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
