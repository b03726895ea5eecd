// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"errors"
	"fmt"

	"github.com/btcsuite/descwallet/scripts"
)

var (
	// ErrGeneratorParse is returned when the compact generator notation
	// is malformed.
	ErrGeneratorParse = errors.New("malformed generator notation")

	// ErrVariantsParse is returned when the variant codes of a generator
	// can't be parsed.
	ErrVariantsParse = errors.New("malformed variants")

	// ErrTemplateParse is returned when a template expression can't be
	// parsed.
	ErrTemplateParse = errors.New("malformed template")

	// ErrHardenedIndex is returned when an index falls into the hardened
	// derivation range.
	ErrHardenedIndex = errors.New("index is in the hardened range")

	// ErrNoVariants is returned when a generator is built without any
	// enabled category.
	ErrNoVariants = errors.New("generator has no variants")

	// ErrTemplateInvariant is returned when a template breaks a promise
	// it made at construction, such as a single key template failing to
	// produce its key.
	ErrTemplateInvariant = errors.New("template invariant violated")

	// ErrWrongNetwork is returned when an extended key of a template
	// belongs to another network than the one derived for.
	ErrWrongNetwork = errors.New("extended key is for another network")
)

// DerivationError is returned when a template fails to produce the lock
// script of a requested category.
type DerivationError struct {
	// Index is the derivation index that was requested.
	Index UnhardenedIndex

	// Category is the category the lock script was requested for.
	Category scripts.Category

	// Err is the error returned by the template.
	Err error
}

// Error implements the error interface.
func (e *DerivationError) Error() string {
	return fmt.Sprintf("unable to derive %v lock script at index %v: %v",
		e.Category, e.Index, e.Err)
}

// Unwrap returns the template error.
func (e *DerivationError) Unwrap() error {
	return e.Err
}
