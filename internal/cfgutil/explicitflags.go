// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"errors"
	"strings"
)

// ErrEmptyValue is returned when a flag is explicitly set to an empty value.
var ErrEmptyValue = errors.New("empty flag value")

// ExplicitString is a string flag that records whether it was set on the
// command line, so a default can be told apart from the same value given by
// the user.  It implements flags.Marshaler and flags.Unmarshaler.
type ExplicitString struct {
	Value         string
	explicitlySet bool
}

// NewExplicitString creates a string flag with the provided default value.
func NewExplicitString(defaultValue string) *ExplicitString {
	return &ExplicitString{Value: defaultValue}
}

// ExplicitlySet returns whether the flag was given on the command line.
func (e *ExplicitString) ExplicitlySet() bool { return e.explicitlySet }

// MarshalFlag implements the flags.Marshaler interface.
func (e *ExplicitString) MarshalFlag() (string, error) { return e.Value, nil }

// UnmarshalFlag implements the flags.Unmarshaler interface.  Surrounding
// whitespace is dropped and an empty value is rejected.
func (e *ExplicitString) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}

	e.Value = value
	e.explicitlySet = true
	return nil
}
