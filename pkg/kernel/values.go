package kernel

import "strings"

// Email is a candidate contact address. Validation is intentionally shallow:
// the extractor already applies an RFC-shaped pattern, this only guards
// against obviously broken values reaching storage.
type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }
func (e Email) IsValid() bool  { return strings.Contains(string(e), "@") }

// Normalize lowercases the address for case-insensitive comparisons.
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

type Phone string

func (p Phone) String() string { return string(p) }
func (p Phone) IsEmpty() bool  { return string(p) == "" }

// Location is a free-form "City, Region" style location string.
type Location string

func (l Location) String() string { return string(l) }
func (l Location) IsEmpty() bool  { return string(l) == "" }
