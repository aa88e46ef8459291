// Package keys canonicalizes product identifiers and variation names so that
// values typed or exported differently by independent documents compare equal.
//
// Every component that computes or consumes a join key goes through this
// package; joins are made on Key values only, never on raw cell text.
package keys

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ID is a canonical product identifier.
type ID string

// Name is a canonical variation name.
type Name string

// floatArtifact matches ids that went through a float column (12345.0).
var floatArtifact = regexp.MustCompile(`^\p{Nd}+\.0$`)

// CanonicalID trims raw and removes a trailing ".0" float artifact from a run
// of digits. Any other non-blank value passes through trimmed. It reports
// false for blank input.
//
// Leading zeros are kept only when present in raw; ids already coerced to a
// number upstream cannot be recovered here.
func CanonicalID(raw string) (ID, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if floatArtifact.MatchString(s) {
		s = s[:len(s)-2]
	}
	return ID(s), true
}

// CanonicalName applies NFKC (folding full-width forms, including U+3000),
// collapses every whitespace run to a single ASCII space and trims. It
// reports false when nothing is left.
func CanonicalName(raw string) (Name, bool) {
	s := norm.NFKC.String(raw)
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
	if s == "" {
		return "", false
	}
	return Name(s), true
}

// IsNumeric reports whether the id consists of decimal digits only.
func (id ID) IsNumeric() bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Key is the composite join key of a product variation.
type Key struct {
	ProductID     ID
	VariationName Name
}

// NewKey canonicalizes both parts and reports false when either is absent.
func NewKey(rawID, rawName string) (Key, bool) {
	id, ok := CanonicalID(rawID)
	if !ok {
		return Key{}, false
	}
	name, ok := CanonicalName(rawName)
	if !ok {
		return Key{}, false
	}
	return Key{ProductID: id, VariationName: name}, true
}

// Compare orders keys by product id, then variation name, by code point.
func (k Key) Compare(o Key) int {
	switch {
	case k.ProductID < o.ProductID:
		return -1
	case k.ProductID > o.ProductID:
		return 1
	case k.VariationName < o.VariationName:
		return -1
	case k.VariationName > o.VariationName:
		return 1
	}
	return 0
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.ProductID, k.VariationName)
}
