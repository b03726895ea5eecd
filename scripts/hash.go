// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// PubkeyHash is the HASH160 of a serialized public key as committed to by a
// P2PKH output.
type PubkeyHash [20]byte

// WPubkeyHash is the HASH160 of a compressed public key as committed to by a
// P2WPKH witness program.
type WPubkeyHash [20]byte

// ScriptHash is the HASH160 of a redeem script as committed to by a P2SH
// output.
type ScriptHash [20]byte

// WScriptHash is the SHA256 of a witness script as committed to by a P2WSH
// witness program.
type WScriptHash [32]byte

// String returns the hex encoding of the hash.
func (h PubkeyHash) String() string { return hex.EncodeToString(h[:]) }

// String returns the hex encoding of the hash.
func (h WPubkeyHash) String() string { return hex.EncodeToString(h[:]) }

// String returns the hex encoding of the hash.
func (h ScriptHash) String() string { return hex.EncodeToString(h[:]) }

// String returns the hex encoding of the hash.
func (h WScriptHash) String() string { return hex.EncodeToString(h[:]) }

// ScriptHash returns the HASH160 of the redeem script.
func (s RedeemScript) ScriptHash() ScriptHash {
	var h ScriptHash
	copy(h[:], btcutil.Hash160(s))
	return h
}

// ScriptHash returns the SHA256 of the witness script.
func (s WitnessScript) ScriptHash() WScriptHash {
	var h WScriptHash
	copy(h[:], chainhash.HashB(s))
	return h
}

// ToP2WSH returns the native v0 witness output committing to the script.
func (s WitnessScript) ToP2WSH() PubkeyScript {
	return P2WSH(s.ScriptHash())
}

// WPubkeyHashOf returns the witness key hash of a key.  Keys of this type
// always serialize compressed, so unlike PublicKey.WPubkeyHash this can't
// fail.
func WPubkeyHashOf(key *btcec.PublicKey) WPubkeyHash {
	var h WPubkeyHash
	copy(h[:], btcutil.Hash160(key.SerializeCompressed()))
	return h
}

// The standard templates below only push fixed size hashes or keys, which
// the builder never rejects.

// P2PK returns a pay-to-pubkey output script for the key.
func P2PK(key PublicKey) PubkeyScript {
	script, _ := txscript.NewScriptBuilder().
		AddData(key.Serialize()).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	return script
}

// P2PKH returns a pay-to-pubkey-hash output script.
func P2PKH(h PubkeyHash) PubkeyScript {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(h[:]).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	return script
}

// P2SH returns a pay-to-script-hash output script.
func P2SH(h ScriptHash) PubkeyScript {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(h[:]).
		AddOp(txscript.OP_EQUAL).
		Script()
	return script
}

// P2WPKH returns a native v0 pay-to-witness-pubkey-hash output script.
func P2WPKH(h WPubkeyHash) PubkeyScript {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(h[:]).
		Script()
	return script
}

// P2WSH returns a native v0 pay-to-witness-script-hash output script.
func P2WSH(h WScriptHash) PubkeyScript {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(h[:]).
		Script()
	return script
}
