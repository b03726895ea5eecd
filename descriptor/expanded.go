// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/descwallet/scripts"
)

// Expanded is a concrete descriptor produced by a Generator for one
// category.  It is one of Pk, Pkh, ShWpkh, Wpkh, Bare, Sh, ShWsh or Wsh.
type Expanded interface {
	// Category returns the category the descriptor belongs to.
	Category() scripts.Category

	// PubkeyScript returns the output script of the descriptor.
	PubkeyScript() scripts.PubkeyScript

	// Scripts returns the output script together with the input side
	// reveal of the descriptor.
	Scripts() (*scripts.ScriptSet, error)

	// String returns the descriptor in output descriptor style.
	String() string

	isExpanded()
}

// Compile time assertions that every form is an Expanded.
var (
	_ Expanded = Pk{}
	_ Expanded = Pkh{}
	_ Expanded = ShWpkh{}
	_ Expanded = Wpkh{}
	_ Expanded = Bare{}
	_ Expanded = Sh{}
	_ Expanded = ShWsh{}
	_ Expanded = Wsh{}
)

// Pk pays to a public key with a bare P2PK output.
type Pk struct {
	Key scripts.PublicKey
}

// Pkh pays to the hash of a public key with a P2PKH output.
type Pkh struct {
	Key scripts.PublicKey
}

// ShWpkh pays to a P2WPKH program wrapped in P2SH.  Its key is always
// committed to compressed.
type ShWpkh struct {
	Key *btcec.PublicKey
}

// Wpkh pays to a native P2WPKH program.  Its key is always committed to
// compressed.
type Wpkh struct {
	Key *btcec.PublicKey
}

// Bare publishes a script as the output script.
type Bare struct {
	Script scripts.PubkeyScript
}

// Sh pays to the hash of a redeem script with a P2SH output.
type Sh struct {
	Script scripts.RedeemScript
}

// ShWsh pays to a P2WSH program wrapped in P2SH.
type ShWsh struct {
	Script scripts.WitnessScript
}

// Wsh pays to a native P2WSH program.
type Wsh struct {
	Script scripts.WitnessScript
}

func (Pk) isExpanded()     {}
func (Pkh) isExpanded()    {}
func (ShWpkh) isExpanded() {}
func (Wpkh) isExpanded()   {}
func (Bare) isExpanded()   {}
func (Sh) isExpanded()     {}
func (ShWsh) isExpanded()  {}
func (Wsh) isExpanded()    {}

// Category returns scripts.Bare.
func (Pk) Category() scripts.Category { return scripts.Bare }

// Category returns scripts.Hashed.
func (Pkh) Category() scripts.Category { return scripts.Hashed }

// Category returns scripts.Nested.
func (ShWpkh) Category() scripts.Category { return scripts.Nested }

// Category returns scripts.SegWit.
func (Wpkh) Category() scripts.Category { return scripts.SegWit }

// Category returns scripts.Bare.
func (Bare) Category() scripts.Category { return scripts.Bare }

// Category returns scripts.Hashed.
func (Sh) Category() scripts.Category { return scripts.Hashed }

// Category returns scripts.Nested.
func (ShWsh) Category() scripts.Category { return scripts.Nested }

// Category returns scripts.SegWit.
func (Wsh) Category() scripts.Category { return scripts.SegWit }

// PubkeyScript returns the P2PK output of the key.
func (d Pk) PubkeyScript() scripts.PubkeyScript {
	return scripts.P2PK(d.Key)
}

// PubkeyScript returns the P2PKH output of the key.
func (d Pkh) PubkeyScript() scripts.PubkeyScript {
	return scripts.P2PKH(d.Key.PubkeyHash())
}

// PubkeyScript returns the P2SH output wrapping the P2WPKH program of the
// key.
func (d ShWpkh) PubkeyScript() scripts.PubkeyScript {
	redeem := scripts.RedeemScript(scripts.P2WPKH(
		scripts.WPubkeyHashOf(d.Key),
	))
	return scripts.P2SH(redeem.ScriptHash())
}

// PubkeyScript returns the P2WPKH output of the key.
func (d Wpkh) PubkeyScript() scripts.PubkeyScript {
	return scripts.P2WPKH(scripts.WPubkeyHashOf(d.Key))
}

// PubkeyScript returns a copy of the script.
func (d Bare) PubkeyScript() scripts.PubkeyScript {
	return append(scripts.PubkeyScript{}, d.Script...)
}

// PubkeyScript returns the P2SH output of the redeem script.
func (d Sh) PubkeyScript() scripts.PubkeyScript {
	return scripts.P2SH(d.Script.ScriptHash())
}

// PubkeyScript returns the P2SH output wrapping the P2WSH program of the
// witness script.
func (d ShWsh) PubkeyScript() scripts.PubkeyScript {
	redeem := scripts.RedeemScript(d.Script.ToP2WSH())
	return scripts.P2SH(redeem.ScriptHash())
}

// PubkeyScript returns the P2WSH output of the witness script.
func (d Wsh) PubkeyScript() scripts.PubkeyScript {
	return d.Script.ToP2WSH()
}

// Scripts returns the P2PK script set, spent with an empty sig script.
func (d Pk) Scripts() (*scripts.ScriptSet, error) {
	return d.Key.ToScripts(scripts.Bare)
}

// Scripts returns the P2PKH script set revealing the key.
func (d Pkh) Scripts() (*scripts.ScriptSet, error) {
	return d.Key.ToScripts(scripts.Hashed)
}

// Scripts returns the nested P2WPKH script set.
func (d ShWpkh) Scripts() (*scripts.ScriptSet, error) {
	return scripts.CompressedKey(d.Key).ToScripts(scripts.Nested)
}

// Scripts returns the P2WPKH script set carrying the key in the witness.
func (d Wpkh) Scripts() (*scripts.ScriptSet, error) {
	return scripts.CompressedKey(d.Key).ToScripts(scripts.SegWit)
}

// Scripts returns the script set of the bare script.
func (d Bare) Scripts() (*scripts.ScriptSet, error) {
	return scripts.LockScript(d.Script).ToScripts(scripts.Bare)
}

// Scripts returns the P2SH script set pushing the redeem script.  It fails
// if the redeem script is too large to be pushed.
func (d Sh) Scripts() (*scripts.ScriptSet, error) {
	return scripts.LockScript(d.Script).ToScripts(scripts.Hashed)
}

// Scripts returns the nested P2WSH script set.
func (d ShWsh) Scripts() (*scripts.ScriptSet, error) {
	return d.Script.LockScript().ToScripts(scripts.Nested)
}

// Scripts returns the P2WSH script set carrying the witness script.
func (d Wsh) Scripts() (*scripts.ScriptSet, error) {
	return d.Script.LockScript().ToScripts(scripts.SegWit)
}

// String returns "pk(KEY)" with the key in its serialization form.
func (d Pk) String() string {
	return fmt.Sprintf("pk(%v)", d.Key)
}

// String returns "pkh(KEY)" with the key in its serialization form.
func (d Pkh) String() string {
	return fmt.Sprintf("pkh(%v)", d.Key)
}

// String returns "sh(wpkh(KEY))".
func (d ShWpkh) String() string {
	return fmt.Sprintf("sh(wpkh(%x))", d.Key.SerializeCompressed())
}

// String returns "wpkh(KEY)".
func (d Wpkh) String() string {
	return fmt.Sprintf("wpkh(%x)", d.Key.SerializeCompressed())
}

// String returns "bare(SCRIPT)" with the script hex encoded.
func (d Bare) String() string {
	return "bare(" + hex.EncodeToString(d.Script) + ")"
}

// String returns "sh(SCRIPT)" with the redeem script hex encoded.
func (d Sh) String() string {
	return "sh(" + hex.EncodeToString(d.Script) + ")"
}

// String returns "sh(wsh(SCRIPT))".
func (d ShWsh) String() string {
	return "sh(wsh(" + hex.EncodeToString(d.Script) + "))"
}

// String returns "wsh(SCRIPT)".
func (d Wsh) String() string {
	return "wsh(" + hex.EncodeToString(d.Script) + ")"
}
