// Package records defines the contact record types shared by every
// source and by the reconciler.
package records

import "sort"

// Record is a single contact as held by one side of the sync.
// The email key lives in the Set, not in the Record itself.
// UpdatedAt is kept as the raw string from the source; parsing is the
// timestamp package's job.
type Record struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

// Set is the complete keyed collection of Records from one source for
// one run. Built once per source, never mutated afterwards.
type Set map[string]Record

// Emails returns the set's keys in ascending lexicographic order.
func (s Set) Emails() []string {
	emails := make([]string, 0, len(s))
	for email := range s {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// Union returns the sorted union of keys across both sets.
func Union(a, b Set) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for email := range a {
		seen[email] = struct{}{}
	}
	for email := range b {
		seen[email] = struct{}{}
	}
	emails := make([]string, 0, len(seen))
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}
