// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"
)

// LockScript is a script whose knowledge is required for spending some
// specific transaction output.  It is the deepest nested layer and contains
// no hash of another script or of a public key.
type LockScript []byte

// PubkeyScript is the content of the scriptPubKey field of a transaction
// output.
type PubkeyScript []byte

// SigScript is the content of the signature script field of a transaction
// input.
type SigScript []byte

// RedeemScript is the script committed to by a P2SH output.  It is revealed
// as the last push of the signature script.
type RedeemScript []byte

// WitnessScript is the equivalent of RedeemScript for witness outputs.
// Unlike RedeemScript it is committed to with a single SHA256.
type WitnessScript []byte

// TapScript is any valid leaf script of a taproot tree (BIP-342).
type TapScript []byte

// program is the constraint satisfied by every script wrapper in this
// package.  The helpers below give all of them the same byte-wise
// comparison and rendering.
type program interface {
	~[]byte
}

func equal[P program](a, b P) bool {
	return bytes.Equal(a, b)
}

func compare[P program](a, b P) int {
	return bytes.Compare(a, b)
}

func clone[P program](p P) P {
	if p == nil {
		return nil
	}
	c := make(P, len(p))
	copy(c, p)
	return c
}

// disasm renders the script as one line of opcodes.  A script that fails to
// parse renders the parsed prefix followed by an error marker.
func disasm[P program](p P) string {
	s, _ := txscript.DisasmString(p)
	return s
}

func toHex[P program](p P) string {
	return hex.EncodeToString(p)
}

// Equal reports whether both scripts have identical bytes.
func (s LockScript) Equal(o LockScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s LockScript) Compare(o LockScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s LockScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s LockScript) String() string { return disasm(s) }

// Equal reports whether both scripts have identical bytes.
func (s PubkeyScript) Equal(o PubkeyScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s PubkeyScript) Compare(o PubkeyScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s PubkeyScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s PubkeyScript) String() string { return disasm(s) }

// Equal reports whether both scripts have identical bytes.
func (s SigScript) Equal(o SigScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s SigScript) Compare(o SigScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s SigScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s SigScript) String() string { return disasm(s) }

// Equal reports whether both scripts have identical bytes.
func (s RedeemScript) Equal(o RedeemScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s RedeemScript) Compare(o RedeemScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s RedeemScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s RedeemScript) String() string { return disasm(s) }

// Equal reports whether both scripts have identical bytes.
func (s WitnessScript) Equal(o WitnessScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s WitnessScript) Compare(o WitnessScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s WitnessScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s WitnessScript) String() string { return disasm(s) }

// Equal reports whether both scripts have identical bytes.
func (s TapScript) Equal(o TapScript) bool { return equal(s, o) }

// Compare orders scripts by their bytes.
func (s TapScript) Compare(o TapScript) int { return compare(s, o) }

// Hex returns the hex encoding of the script bytes.
func (s TapScript) Hex() string { return toHex(s) }

// String returns the disassembly of the script.
func (s TapScript) String() string { return disasm(s) }

// RedeemScript reinterprets the lock script as the script committed to by a
// P2SH output.
func (s LockScript) RedeemScript() RedeemScript {
	return RedeemScript(clone(s))
}

// WitnessScript reinterprets the lock script as the script committed to by
// a v0 witness program.
func (s LockScript) WitnessScript() WitnessScript {
	return WitnessScript(clone(s))
}

// LockScript returns the lock script the witness script was built from.
func (s WitnessScript) LockScript() LockScript {
	return LockScript(clone(s))
}

// LockScript returns the pubkey script as a lock script if it does not
// commit to a hash, that is for P2PK, bare multisig and custom scripts.  The
// second return value is false for P2PKH, P2SH and witness outputs.
func (s PubkeyScript) LockScript() (LockScript, bool) {
	switch txscript.GetScriptClass(s) {
	case txscript.PubKeyTy, txscript.MultiSigTy, txscript.NonStandardTy:
		return LockScript(clone(s)), true
	default:
		return nil, false
	}
}

// pushData returns a script that pushes every element in order, using the
// minimal encoding for each push.  Elements above the consensus push limit
// are rejected.
func pushData(elements ...[]byte) ([]byte, error) {
	b := txscript.NewScriptBuilder()
	for _, e := range elements {
		b.AddData(e)
	}
	script, err := b.Script()
	if err != nil {
		return nil, scriptError(ErrScriptBuild, "unable to push "+
			"script data", err)
	}
	return script, nil
}
