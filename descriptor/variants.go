// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"strings"

	"github.com/btcsuite/descwallet/scripts"
)

// Variants is the set of categories a generator produces descriptors for.
// Bit n is set when scripts.Category(n) is enabled.
type Variants uint8

// variantCodes maps categories to their notation character, in the order
// they are rendered.
var variantCodes = []struct {
	category scripts.Category
	code     byte
}{
	{scripts.Bare, 'B'},
	{scripts.Hashed, 'H'},
	{scripts.Nested, 'N'},
	{scripts.SegWit, 'S'},
	{scripts.Taproot, 'T'},
}

// NewVariants returns the set of the given categories.  Values outside the
// enumeration are ignored.
func NewVariants(categories ...scripts.Category) Variants {
	var v Variants
	for _, c := range categories {
		v = v.With(c)
	}
	return v
}

// With returns a copy of the set that also contains c.
func (v Variants) With(c scripts.Category) Variants {
	if !c.IsValid() {
		return v
	}
	return v | 1<<c
}

// Has returns whether c is in the set.
func (v Variants) Has(c scripts.Category) bool {
	return c.IsValid() && v&(1<<c) != 0
}

// IsEmpty returns whether no category is enabled.
func (v Variants) IsEmpty() bool {
	return v == 0
}

// HasWitness returns whether any enabled category needs witness data.
func (v Variants) HasWitness() bool {
	for _, c := range v.Categories() {
		if c.IsWitness() {
			return true
		}
	}
	return false
}

// Categories returns the enabled categories in canonical order.
func (v Variants) Categories() []scripts.Category {
	var categories []scripts.Category
	for _, vc := range variantCodes {
		if v.Has(vc.category) {
			categories = append(categories, vc.category)
		}
	}
	return categories
}

// String returns the notation of the set, one character per enabled
// category in canonical order.
func (v Variants) String() string {
	var b strings.Builder
	for _, vc := range variantCodes {
		if v.Has(vc.category) {
			b.WriteByte(vc.code)
		}
	}
	return b.String()
}

// ParseVariants parses the variant notation.  Codes are case insensitive and
// may come in any order, but each at most once.
func ParseVariants(s string) (Variants, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrVariantsParse)
	}

	var v Variants
	for i := 0; i < len(s); i++ {
		c, ok := categoryForCode(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: unknown code %q", ErrVariantsParse,
				s[i])
		}
		if v.Has(c) {
			return 0, fmt.Errorf("%w: duplicate code %q",
				ErrVariantsParse, s[i])
		}
		v = v.With(c)
	}

	return v, nil
}

func categoryForCode(code byte) (scripts.Category, bool) {
	if code >= 'a' && code <= 'z' {
		code -= 'a' - 'A'
	}
	for _, vc := range variantCodes {
		if code == vc.code {
			return vc.category, true
		}
	}
	return 0, false
}
