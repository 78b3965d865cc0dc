package domain

// WarningCode identifies a non-fatal condition found while solving.
type WarningCode string

const (
	// WarnDegenerateLeadingCoefficient is raised when the x^11 coefficient is zero
	// and the polynomial is solved at a lower degree.
	WarnDegenerateLeadingCoefficient WarningCode = "degenerate_leading_coefficient"
)

// Warning is a non-fatal diagnostic attached to a solve result.
type Warning struct {
	Code    WarningCode
	Message string
}
