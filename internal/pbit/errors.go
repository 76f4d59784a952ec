package pbit

import (
	"fmt"
)

// ValidationError names the offending member and its defect.
type ValidationError struct {
	Member string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("package member %s: %s", e.Member, e.Reason)
}
