package response

// ErrorBody is the body of every rejection: a human-readable error plus optional
// top-level fields such as issues or versions.
type ErrorBody map[string]any

const (
	// DefaultErrorMessage is the only text an unexpected failure ever exposes.
	DefaultErrorMessage = "Internal server error"

	errorKey = "error"
)

func newErrorBody(message string, details map[string]any) ErrorBody {
	body := make(ErrorBody, len(details)+1)
	for k, v := range details {
		body[k] = v
	}
	body[errorKey] = message
	return body
}
