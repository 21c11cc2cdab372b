// Package validation provides common validation utilities for configuration
// parameters across the handoff library.
//
// Every function returns a *errors.ValidationError, which matches
// errors.ErrInvalidConfiguration under errors.Is, so constructors can report
// bad configuration uniformly.
package validation
