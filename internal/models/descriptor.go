package models

import "time"

// ProviderDescriptor is the identity and capability metadata of one source.
// Immutable after registration; owned by the registry for the process lifetime.
type ProviderDescriptor struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Kinds     []ContentKind `json:"kinds"`
	Languages []Language    `json:"languages"`
	BaseURL   string        `json:"baseUrl"`
	Priority  int           `json:"priority"`
	Enabled   bool          `json:"enabled"`
}

// ProviderHealth is the mutable runtime state paired 1:1 with a descriptor.
// Mutated on every call outcome; never destroyed while the process runs.
type ProviderHealth struct {
	Status      HealthStatus `json:"status"`
	ErrorCount  int          `json:"errorCount"`
	LastError   string       `json:"lastError,omitempty"`
	LastChecked time.Time    `json:"lastChecked"`
}
