// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Witness is the witness stack of a transaction input as defined by BIP-141.
type Witness [][]byte

// WitnessFromTx copies a wire witness stack.
func WitnessFromTx(w wire.TxWitness) Witness {
	stack := make(Witness, 0, len(w))
	for _, e := range w {
		stack = append(stack, append([]byte{}, e...))
	}
	return stack
}

// TxWitness returns a copy of the stack in its wire form.
func (w Witness) TxWitness() wire.TxWitness {
	return wire.TxWitness(w.Clone())
}

// Clone returns a deep copy of the stack.
func (w Witness) Clone() Witness {
	if w == nil {
		return nil
	}
	return WitnessFromTx(wire.TxWitness(w))
}

// Equal reports whether both stacks hold the same elements in the same
// order.
func (w Witness) Equal(o Witness) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if !bytes.Equal(w[i], o[i]) {
			return false
		}
	}
	return true
}

// String renders the stack with one hex encoded element per line.
func (w Witness) String() string {
	var b strings.Builder
	b.WriteString("[\n")
	for _, e := range w {
		b.WriteString(hex.EncodeToString(e))
		b.WriteByte('\n')
	}
	b.WriteString("]\n")
	return b.String()
}

// WitnessProgram is the data pushed after the version opcode of a segwit
// output.  For version 0 its length tells a key hash (20 bytes) from a
// script hash (32 bytes).
type WitnessProgram []byte

// WitnessProgramFromWPKH returns the program of a P2WPKH output.
func WitnessProgramFromWPKH(h WPubkeyHash) WitnessProgram {
	return append(WitnessProgram{}, h[:]...)
}

// WitnessProgramFromWSH returns the program of a P2WSH output.
func WitnessProgramFromWSH(h WScriptHash) WitnessProgram {
	return append(WitnessProgram{}, h[:]...)
}

// Equal reports whether both programs have identical bytes.
func (p WitnessProgram) Equal(o WitnessProgram) bool { return equal(p, o) }

// String returns the hex encoding of the program.
func (p WitnessProgram) String() string { return toHex(p) }

// WitnessProgram extracts the version and program of a segwit output.
func (s PubkeyScript) WitnessProgram() (WitnessVersion, WitnessProgram,
	error) {

	if !txscript.IsWitnessProgram(s) {
		return 0, nil, scriptError(ErrNotWitnessProgram, fmt.Sprintf(
			"script %x is not a witness program", []byte(s)), nil)
	}

	version, prog, err := txscript.ExtractWitnessProgramInfo(s)
	if err != nil {
		return 0, nil, scriptError(ErrNotWitnessProgram, "unable to "+
			"extract witness program", err)
	}

	v, err := NewWitnessVersion(version)
	if err != nil {
		return 0, nil, err
	}

	return v, WitnessProgram(clone(prog)), nil
}

// WitnessVersion is the version of a witness program: the first opcode of a
// segwit output, one of OP_0..OP_16.
type WitnessVersion uint8

// The seventeen possible witness versions.  Only v0 and v1 have consensus
// meaning today.
const (
	WitnessV0 WitnessVersion = iota
	WitnessV1
	WitnessV2
	WitnessV3
	WitnessV4
	WitnessV5
	WitnessV6
	WitnessV7
	WitnessV8
	WitnessV9
	WitnessV10
	WitnessV11
	WitnessV12
	WitnessV13
	WitnessV14
	WitnessV15
	WitnessV16
)

// NewWitnessVersion returns the witness version for an integer in the
// range 0-16.
func NewWitnessVersion(v int) (WitnessVersion, error) {
	if v < int(WitnessV0) || v > int(WitnessV16) {
		return 0, scriptError(ErrIncorrectOpcode, fmt.Sprintf(
			"witness version %d out of range", v), nil)
	}
	return WitnessVersion(v), nil
}

// WitnessVersionFromOpcode returns the witness version pushed by one of the
// OP_0..OP_16 opcodes.
func WitnessVersionFromOpcode(op byte) (WitnessVersion, error) {
	switch {
	case op == txscript.OP_0:
		return WitnessV0, nil

	case op >= txscript.OP_1 && op <= txscript.OP_16:
		return WitnessVersion(op - (txscript.OP_1 - 1)), nil

	default:
		return 0, scriptError(ErrIncorrectOpcode, fmt.Sprintf(
			"opcode 0x%02x is not a witness version", op), nil)
	}
}

// IsValid returns whether the version is one of v0..v16.  Versions built by
// NewWitnessVersion and WitnessVersionFromOpcode always are.
func (v WitnessVersion) IsValid() bool {
	return v <= WitnessV16
}

// Opcode returns the opcode pushing the version.  It fails for versions
// above v16.
func (v WitnessVersion) Opcode() (byte, error) {
	switch {
	case v == WitnessV0:
		return txscript.OP_0, nil

	case !v.IsValid():
		return 0, scriptError(ErrIncorrectOpcode, fmt.Sprintf(
			"witness version %d has no opcode", uint8(v)), nil)

	default:
		return byte(v) + (txscript.OP_1 - 1), nil
	}
}

// String returns the version as "v<n>".
func (v WitnessVersion) String() string {
	return fmt.Sprintf("v%d", uint8(v))
}
