// Package diagnostic provides the failure taxonomy of a verification run
// and the helpers that turn recovered panics into categorized failures.
//
// Key capabilities:
//   - Categorized failures that keep the original fault as cause
//   - Classification of panics raised by equality and hash methods
//   - %% message formatting that survives panicking String methods
//   - YAML and terminal rendering of a run's outcome
package diagnostic
