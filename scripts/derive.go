// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"github.com/lightningnetwork/lnd/fn/v2"
)

// LockScriptDeriver is implemented by producers that can build the bottom
// layer script for a category.  Only key types implement it: a LockScript is
// its own lock script.
type LockScriptDeriver interface {
	// ToLockScript returns the lock script committing to the producer
	// under the given category.
	ToLockScript(c Category) (LockScript, error)
}

// PubkeyScriptDeriver is implemented by producers that can build the script
// published in a transaction output.
type PubkeyScriptDeriver interface {
	// ToPubkeyScript returns the output script for the category.
	ToPubkeyScript(c Category) (PubkeyScript, error)
}

// ScriptsDeriver is implemented by producers that can build every script of
// a spend: the output script and the input side reveal.
type ScriptsDeriver interface {
	PubkeyScriptDeriver

	// ToSigScript returns the signature script revealing the committed
	// pre-image, without any signatures.
	ToSigScript(c Category) (SigScript, error)

	// ToWitness returns the witness stack revealing the committed
	// pre-image.  It is None for categories spent without witness data.
	ToWitness(c Category) (fn.Option[Witness], error)
}

// Compile time assertions for the producers in this package.
var (
	_ ScriptsDeriver    = LockScript(nil)
	_ ScriptsDeriver    = PublicKey{}
	_ LockScriptDeriver = PublicKey{}
)

// ToScripts builds the complete script set of a producer for the category.
func ToScripts(d ScriptsDeriver, c Category) (*ScriptSet, error) {
	pkScript, err := d.ToPubkeyScript(c)
	if err != nil {
		return nil, err
	}
	sigScript, err := d.ToSigScript(c)
	if err != nil {
		return nil, err
	}
	witness, err := d.ToWitness(c)
	if err != nil {
		return nil, err
	}

	log.Tracef("Derived %v script set: %v", c, pkScript)

	return &ScriptSet{
		PubkeyScript: pkScript,
		SigScript:    sigScript,
		Witness:      witness,
	}, nil
}

// ToPubkeyScript commits to the lock script.  Nested commits twice: the v0
// witness program is itself hashed into a P2SH output.
func (s LockScript) ToPubkeyScript(c Category) (PubkeyScript, error) {
	switch c {
	case Bare:
		return PubkeyScript(clone(s)), nil

	case Hashed:
		return P2SH(s.RedeemScript().ScriptHash()), nil

	case SegWit:
		return s.WitnessScript().ToP2WSH(), nil

	case Nested:
		redeem := RedeemScript(s.WitnessScript().ToP2WSH())
		return P2SH(redeem.ScriptHash()), nil

	case Taproot:
		return nil, unsupportedTaproot("pubkey script")

	default:
		return nil, unknownCategory(c)
	}
}

// ToSigScript pushes the pre-image of the hash the output commits to.
func (s LockScript) ToSigScript(c Category) (SigScript, error) {
	switch c {
	case Bare, SegWit:
		return SigScript{}, nil

	case Hashed:
		return pushData(s)

	case Nested:
		return pushData(s.WitnessScript().ToP2WSH())

	case Taproot:
		return nil, unsupportedTaproot("sig script")

	default:
		return nil, unknownCategory(c)
	}
}

// ToWitness carries the witness script for the witness categories.
func (s LockScript) ToWitness(c Category) (fn.Option[Witness], error) {
	switch c {
	case Bare, Hashed:
		return fn.None[Witness](), nil

	case SegWit, Nested:
		return fn.Some(Witness{clone(s)}), nil

	case Taproot:
		return fn.None[Witness](), unsupportedTaproot("witness")

	default:
		return fn.None[Witness](), unknownCategory(c)
	}
}

// ToScripts builds the complete script set for the category.
func (s LockScript) ToScripts(c Category) (*ScriptSet, error) {
	return ToScripts(s, c)
}

// ToLockScript returns the standard single key script for the category.
// For SegWit and Nested the key must be compressed.
func (k PublicKey) ToLockScript(c Category) (LockScript, error) {
	switch c {
	case Bare:
		return LockScript(P2PK(k)), nil

	case Hashed:
		return LockScript(P2PKH(k.PubkeyHash())), nil

	case SegWit:
		h, err := k.WPubkeyHash()
		if err != nil {
			return nil, err
		}
		return LockScript(P2WPKH(h)), nil

	case Nested:
		redeem, err := k.nestedRedeemScript()
		if err != nil {
			return nil, err
		}
		return LockScript(P2SH(redeem.ScriptHash())), nil

	case Taproot:
		return nil, unsupportedTaproot("lock script")

	default:
		return nil, unknownCategory(c)
	}
}

// ToPubkeyScript publishes the lock script of the key unchanged.
func (k PublicKey) ToPubkeyScript(c Category) (PubkeyScript, error) {
	lock, err := k.ToLockScript(c)
	if err != nil {
		return nil, err
	}
	return PubkeyScript(lock), nil
}

// ToSigScript returns the key reveal for P2PKH, the P2WPKH redeem script for
// Nested and an empty script otherwise.
func (k PublicKey) ToSigScript(c Category) (SigScript, error) {
	switch c {
	case Bare:
		return SigScript{}, nil

	case SegWit:
		if _, err := k.WPubkeyHash(); err != nil {
			return nil, err
		}
		return SigScript{}, nil

	case Hashed:
		return pushData(k.Serialize())

	case Nested:
		redeem, err := k.nestedRedeemScript()
		if err != nil {
			return nil, err
		}
		return pushData(redeem)

	case Taproot:
		return nil, unsupportedTaproot("sig script")

	default:
		return nil, unknownCategory(c)
	}
}

// ToWitness carries the serialized key for the witness categories.
func (k PublicKey) ToWitness(c Category) (fn.Option[Witness], error) {
	switch c {
	case Bare, Hashed:
		return fn.None[Witness](), nil

	case SegWit, Nested:
		if _, err := k.WPubkeyHash(); err != nil {
			return fn.None[Witness](), err
		}
		return fn.Some(Witness{k.Serialize()}), nil

	case Taproot:
		return fn.None[Witness](), unsupportedTaproot("witness")

	default:
		return fn.None[Witness](), unknownCategory(c)
	}
}

// ToScripts builds the complete script set for the category.
func (k PublicKey) ToScripts(c Category) (*ScriptSet, error) {
	return ToScripts(k, c)
}

// nestedRedeemScript is the P2WPKH program a Nested output wraps in P2SH.
func (k PublicKey) nestedRedeemScript() (RedeemScript, error) {
	h, err := k.WPubkeyHash()
	if err != nil {
		return nil, err
	}
	return RedeemScript(P2WPKH(h)), nil
}
