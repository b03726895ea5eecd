// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrIncorrectOpcode indicates an attempt to create a witness version
	// from an integer or opcode outside of the OP_0..OP_16 range.
	ErrIncorrectOpcode ErrorCode = iota

	// ErrUnsupportedCategory indicates a conversion that would need a
	// taproot script path.  Those are not derivable yet.
	ErrUnsupportedCategory

	// ErrUnknownCategory indicates a category value that is not one of
	// the enumerated categories.
	ErrUnknownCategory

	// ErrUncompressedKey indicates that an uncompressed public key was
	// used in a segwit or nested segwit context.
	ErrUncompressedKey

	// ErrInvalidKey indicates that the provided bytes are not a valid
	// serialized public key.
	ErrInvalidKey

	// ErrScriptBuild indicates that the script builder rejected one of
	// the pushes, typically because an element is too large.
	ErrScriptBuild

	// ErrNotWitnessProgram indicates that a pubkey script was expected to
	// be a witness program but is not.
	ErrNotWitnessProgram

	// ErrMalformedRecord indicates that a serialized script set could not
	// be decoded.
	ErrMalformedRecord
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrIncorrectOpcode:     "ErrIncorrectOpcode",
	ErrUnsupportedCategory: "ErrUnsupportedCategory",
	ErrUnknownCategory:     "ErrUnknownCategory",
	ErrUncompressedKey:     "ErrUncompressedKey",
	ErrInvalidKey:          "ErrInvalidKey",
	ErrScriptBuild:         "ErrScriptBuild",
	ErrNotWitnessProgram:   "ErrNotWitnessProgram",
	ErrMalformedRecord:     "ErrMalformedRecord",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while converting
// between script layers.  The caller can use type assertions or IsError to
// determine the specific kind of failure:
//
//  1. ErrorCode is the kind of failure
//  2. Description is a human-readable description of the issue
//  3. Err is the underlying error, if any
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is an Error with a matching error code.
// Wrapped errors are inspected as well.
func IsError(err error, code ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == code
}

// unsupportedTaproot is returned by every conversion asked for a taproot
// form.
func unsupportedTaproot(what string) Error {
	return scriptError(ErrUnsupportedCategory, fmt.Sprintf("%s can't be "+
		"derived for the taproot category", what), nil)
}

// unknownCategory is returned for category values outside the enumeration.
func unknownCategory(c Category) Error {
	return scriptError(ErrUnknownCategory, fmt.Sprintf("unknown category "+
		"%d", uint8(c)), nil)
}
