// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import "fmt"

// Category is the commitment strategy used to turn a lock script or a public
// key into an output script.
type Category uint8

const (
	// Bare publishes the lock script (or P2PK script) as is.
	Bare Category = iota

	// Hashed commits to the lock script with P2SH (or to the key with
	// P2PKH).
	Hashed

	// Nested commits to a v0 witness program which itself is wrapped in
	// P2SH.
	Nested

	// SegWit commits to the lock script (or key) with a native v0 witness
	// program.
	SegWit

	// Taproot is reserved for taproot outputs.  No conversion in this
	// package produces it yet.
	Taproot
)

// Categories is the full set of categories in their canonical order.
var Categories = []Category{Bare, Hashed, Nested, SegWit, Taproot}

// String returns a human readable name of the category.
func (c Category) String() string {
	switch c {
	case Bare:
		return "bare"
	case Hashed:
		return "hashed"
	case Nested:
		return "nested"
	case SegWit:
		return "segwit"
	case Taproot:
		return "taproot"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// IsValid returns whether the category is one of the enumerated values.
func (c Category) IsValid() bool {
	return c <= Taproot
}

// IsWitness returns whether outputs of this category are spent with witness
// data.
func (c Category) IsWitness() bool {
	return c == Nested || c == SegWit || c == Taproot
}
