// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PublicKey is a secp256k1 public key together with the serialization form
// it is committed to in scripts.  Legacy outputs may use uncompressed keys,
// witness outputs require compressed ones.
type PublicKey struct {
	// Key is the curve point.
	Key *btcec.PublicKey

	// Compressed selects the 33 byte serialization.
	Compressed bool
}

// NewPublicKey wraps the key with the given serialization form.
func NewPublicKey(key *btcec.PublicKey, compressed bool) PublicKey {
	return PublicKey{Key: key, Compressed: compressed}
}

// CompressedKey wraps a raw secp256k1 key.  Raw keys carry no serialization
// preference and are always committed to compressed.
func CompressedKey(key *secp256k1.PublicKey) PublicKey {
	return NewPublicKey(key, true)
}

// ParsePublicKey parses a 33 byte compressed or 65 byte uncompressed key and
// remembers its serialization form.
func ParsePublicKey(b []byte) (PublicKey, error) {
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return PublicKey{}, scriptError(ErrInvalidKey, "unable to "+
			"parse public key", err)
	}

	return NewPublicKey(
		key, len(b) == btcec.PubKeyBytesLenCompressed,
	), nil
}

// Serialize returns the key in its serialization form.
func (k PublicKey) Serialize() []byte {
	if k.Compressed {
		return k.Key.SerializeCompressed()
	}
	return k.Key.SerializeUncompressed()
}

// PubkeyHash returns the HASH160 of the serialized key.
func (k PublicKey) PubkeyHash() PubkeyHash {
	var h PubkeyHash
	copy(h[:], btcutil.Hash160(k.Serialize()))
	return h
}

// WPubkeyHash returns the witness key hash.  Witness programs may only
// commit to compressed keys, so an uncompressed key is an error.
func (k PublicKey) WPubkeyHash() (WPubkeyHash, error) {
	if !k.Compressed {
		return WPubkeyHash{}, scriptError(ErrUncompressedKey,
			"uncompressed public key used in witness script", nil)
	}
	return WPubkeyHashOf(k.Key), nil
}

// Equal reports whether both keys are the same point with the same
// serialization form.
func (k PublicKey) Equal(o PublicKey) bool {
	if k.Key == nil || o.Key == nil {
		return k.Key == o.Key && k.Compressed == o.Compressed
	}
	return k.Compressed == o.Compressed && k.Key.IsEqual(o.Key)
}

// String returns the hex encoding of the serialized key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k.Serialize())
}
