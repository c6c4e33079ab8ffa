package domain

import "time"

// RunRecord is the persisted outcome of one target run.
type RunRecord struct {
	Target     string    `json:"target,omitzero"`
	Success    bool      `json:"success"`
	ExitCode   int       `json:"exit_code"`
	FailedStep int       `json:"failed_step"`
	// Fingerprint hashes the target definition at the time of the run so a
	// recorded outcome can be flagged as stale once the definition changes.
	Fingerprint string    `json:"fingerprint,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
