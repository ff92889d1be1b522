package models

// ProfileVersion is the format version stamped on newly created profiles
const ProfileVersion = 2

// Profile is a completed questionnaire. It is never mutated after it has been
// encoded; edits produce a new Profile and a new token.
type Profile struct {
	Version   int      `json:"version"`
	Name      string   `json:"name,omitempty"`
	Scenario  Scenario `json:"type,omitempty"`
	Answers   []int    `json:"answers"`
	Timestamp int64    `json:"timestamp"`
}

// Normalized applies the legacy scenario default. This is the only place the
// default is derived; everything downstream reads Scenario directly.
func (p Profile) Normalized() Profile {
	if p.Scenario == "" {
		p.Scenario = DefaultScenario
	}
	return p
}

// DisplayName returns the profile name or the given fallback.
func (p Profile) DisplayName(fallback string) string {
	if p.Name != "" {
		return p.Name
	}
	return fallback
}
