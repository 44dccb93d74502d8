package models

import "strings"

// MatchStatus represents the state of an item's catalog reconciliation
type MatchStatus int

const (
	// MatchPending means no catalog candidate has been confirmed yet.
	MatchPending MatchStatus = iota
	// MatchMatched means a catalog candidate was accepted and its metadata merged.
	MatchMatched
	// MatchNotFound means every retry path was exhausted without a candidate.
	// Reserved for a follow-up reconciliation path; the single-item pipeline
	// never produces it.
	MatchNotFound
	// MatchFailed means the catalog lookup itself errored.
	MatchFailed
)

// String returns the string representation of the match status
func (s MatchStatus) String() string {
	switch s {
	case MatchMatched:
		return "matched"
	case MatchNotFound:
		return "not_found"
	case MatchFailed:
		return "failed"
	default:
		return "pending"
	}
}

// ParseMatchStatus converts a match status string to MatchStatus enum
func ParseMatchStatus(statusStr string) MatchStatus {
	switch strings.ToLower(statusStr) {
	case "matched":
		return MatchMatched
	case "not_found":
		return MatchNotFound
	case "failed":
		return MatchFailed
	default:
		return MatchPending
	}
}

// MarshalJSON implements json.Marshaler interface
func (s MatchStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *MatchStatus) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*s = ParseMatchStatus(str)
	return nil
}

// HealthStatus represents the runtime health of a registered provider
type HealthStatus int

const (
	// HealthActive is the normal serving state.
	HealthActive HealthStatus = iota
	// HealthDegraded is reached after repeated consecutive failures. Advisory:
	// a degraded provider is still queried by aggregate operations.
	HealthDegraded
	// HealthDisabled excludes the provider from all aggregate operations.
	// Reserved for registration failure or explicit operator action.
	HealthDisabled
)

// String returns the string representation of the health status
func (s HealthStatus) String() string {
	switch s {
	case HealthDegraded:
		return "degraded"
	case HealthDisabled:
		return "disabled"
	default:
		return "active"
	}
}

// ParseHealthStatus converts a health status string to HealthStatus enum
func ParseHealthStatus(statusStr string) HealthStatus {
	switch strings.ToLower(statusStr) {
	case "degraded":
		return HealthDegraded
	case "disabled":
		return HealthDisabled
	default:
		return HealthActive
	}
}

// MarshalJSON implements json.Marshaler interface
func (s HealthStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *HealthStatus) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*s = ParseHealthStatus(str)
	return nil
}
