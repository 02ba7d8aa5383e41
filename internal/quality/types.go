package quality

// Config tunes the gate. Zero values fall back to the defaults below.
type Config struct {
	Threshold          float64 // minimum passing score
	MinLength          int     // characters after trimming
	DuplicateThreshold float64 // similarity at or above which content is a near copy
}

const (
	DefaultThreshold          = 60
	DefaultMinLength          = 50
	DefaultDuplicateThreshold = 0.97

	maxScore = 100
)

// Penalties per issue.
const (
	penaltyTooShort        = 40
	penaltyNoHeading       = 15
	penaltySingleParagraph = 10
	penaltyUnbalancedFence = 20
	penaltyPlaceholder     = 15
	penaltyShouting        = 15
	penaltyBrokenLink      = 10
	penaltyRepeatedLines   = 15
	penaltyNearDuplicate   = 30
)

// RunInput is the body under review and, optionally, the current content of
// the document it targets.
type RunInput struct {
	Content   string
	Reference string
}

// Result is the gate verdict. Issues is empty when nothing was penalised.
type Result struct {
	Passed bool
	Issues []string
	Score  float64
}
