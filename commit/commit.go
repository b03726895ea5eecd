// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package commit manages the PSBT proprietary keys that carry pay-to-contract
// and tapret commitment data between wallets.  Only the key layout is
// handled here; embedding a commitment into a key or script is left to the
// signer.
package commit

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"
)

const (
	// P2CPrefix is the proprietary key prefix of pay-to-contract fields.
	P2CPrefix = "P2C"

	// TapretPrefix is the proprietary key prefix of tapret fields.
	TapretPrefix = "TAPRET"

	// InP2CTweak is the input subtype holding a pay-to-contract tweak,
	// keyed by the public key it applies to.
	InP2CTweak = 0

	// OutTapretHost marks an output able to host a tapret commitment.
	OutTapretHost = 0

	// OutTapretCommitment is the output subtype holding the tapret
	// commitment.
	OutTapretCommitment = 1

	// OutTapretProof is the output subtype holding the tapret proof.
	OutTapretProof = 2

	// proprietaryType is the BIP-174 key type of proprietary fields.
	proprietaryType = 0xfc

	// TweakSize is the size of a pay-to-contract tweak.
	TweakSize = 32
)

var (
	// ErrNotTapretHost is returned when tapret data is set on an output
	// that was not marked as a tapret host.
	ErrNotTapretHost = errors.New("output is not a tapret host")

	// ErrInvalidTweak is returned when a stored tweak has the wrong size.
	ErrInvalidTweak = errors.New("invalid pay-to-contract tweak")
)

// ProprietaryKey builds the BIP-174 proprietary key made of the key type,
// the compact size prefixed identifier, the compact size subtype and the key
// data.
func ProprietaryKey(prefix string, subtype uint64, keyData []byte) []byte {
	var b bytes.Buffer
	b.WriteByte(proprietaryType)

	// Writes to a bytes.Buffer never fail.
	_ = wire.WriteVarInt(&b, 0, uint64(len(prefix)))
	b.WriteString(prefix)
	_ = wire.WriteVarInt(&b, 0, subtype)
	b.Write(keyData)

	return b.Bytes()
}

// findUnknown returns the value stored under key, if any.
func findUnknown(unknowns []*psbt.Unknown, key []byte) ([]byte, bool) {
	for _, u := range unknowns {
		if bytes.Equal(u.Key, key) {
			return u.Value, true
		}
	}
	return nil, false
}

// setUnknown stores value under key, replacing any earlier value.
func setUnknown(unknowns []*psbt.Unknown, key,
	value []byte) []*psbt.Unknown {

	for _, u := range unknowns {
		if bytes.Equal(u.Key, key) {
			u.Value = value
			return unknowns
		}
	}
	return append(unknowns, &psbt.Unknown{Key: key, Value: value})
}

// SetP2CTweak records the pay-to-contract tweak applied to the key on the
// input.
func SetP2CTweak(in *psbt.PInput, key *btcec.PublicKey,
	tweak [TweakSize]byte) {

	k := ProprietaryKey(P2CPrefix, InP2CTweak, key.SerializeCompressed())
	in.Unknowns = setUnknown(in.Unknowns, k, tweak[:])
}

// P2CTweak returns the pay-to-contract tweak recorded for the key on the
// input.
func P2CTweak(in *psbt.PInput, key *btcec.PublicKey) ([TweakSize]byte, bool,
	error) {

	var tweak [TweakSize]byte

	k := ProprietaryKey(P2CPrefix, InP2CTweak, key.SerializeCompressed())
	value, ok := findUnknown(in.Unknowns, k)
	if !ok {
		return tweak, false, nil
	}
	if len(value) != TweakSize {
		return tweak, false, fmt.Errorf("%w: %d bytes", ErrInvalidTweak,
			len(value))
	}

	copy(tweak[:], value)
	return tweak, true, nil
}

// SetTapretHost marks the output as able to host a tapret commitment.
func SetTapretHost(out *psbt.POutput) {
	k := ProprietaryKey(TapretPrefix, OutTapretHost, nil)
	out.Unknowns = setUnknown(out.Unknowns, k, nil)
}

// IsTapretHost returns whether the output was marked as a tapret host.
func IsTapretHost(out *psbt.POutput) bool {
	_, ok := findUnknown(
		out.Unknowns, ProprietaryKey(TapretPrefix, OutTapretHost, nil),
	)
	return ok
}

// SetTapretCommitment records the tapret commitment of a host output.
func SetTapretCommitment(out *psbt.POutput, commitment []byte) error {
	return setTapretField(out, OutTapretCommitment, commitment)
}

// TapretCommitment returns the tapret commitment of the output.
func TapretCommitment(out *psbt.POutput) ([]byte, bool) {
	return findUnknown(
		out.Unknowns, ProprietaryKey(TapretPrefix, OutTapretCommitment,
			nil),
	)
}

// SetTapretProof records the proof of the tapret commitment of a host
// output.
func SetTapretProof(out *psbt.POutput, proof []byte) error {
	return setTapretField(out, OutTapretProof, proof)
}

// TapretProof returns the tapret proof of the output.
func TapretProof(out *psbt.POutput) ([]byte, bool) {
	return findUnknown(
		out.Unknowns, ProprietaryKey(TapretPrefix, OutTapretProof, nil),
	)
}

func setTapretField(out *psbt.POutput, subtype uint64, value []byte) error {
	if !IsTapretHost(out) {
		return ErrNotTapretHost
	}

	k := ProprietaryKey(TapretPrefix, subtype, nil)
	out.Unknowns = setUnknown(
		out.Unknowns, k, append([]byte(nil), value...),
	)
	return nil
}
