package domain

import "strings"

// ValidationIssue describes a single violated input rule.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationIssues is the full list of rules violated by one input. It is
// always complete: validation never stops at the first failure, so the
// caller can correct every field in a single round trip.
type ValidationIssues []ValidationIssue

func (v ValidationIssues) Error() string {
	msgs := make([]string, len(v))
	for i, issue := range v {
		msgs[i] = issue.Field + ": " + issue.Message
	}
	return strings.Join(msgs, "; ")
}

// Issue appends a violation and returns the extended list.
func (v ValidationIssues) Issue(field, message string) ValidationIssues {
	return append(v, ValidationIssue{Field: field, Message: message})
}

// OrNil returns the list as an error, or nil when nothing was violated.
func (v ValidationIssues) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
