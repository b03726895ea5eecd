// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package descriptor expands a key template into the family of output
descriptors a wallet watches for a derivation index.

A Generator pairs a Template with a set of Variants.  For every enabled
category it produces one Expanded descriptor: single key templates give the
compact key forms (pk, pkh, sh(wpkh), wpkh), every other template gives the
script forms (bare, sh, sh(wsh), wsh) built from the template's lock script.

Generators have a compact text form, the variant codes followed by the
template in angle brackets:

	BHS<pk(0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798)>
	NS<sortedmulti(2,xpub.../0/*,xpub.../0/*)>

Variant codes are B (bare), H (hashed), N (nested), S (segwit) and
T (taproot).  Taproot is accepted but never produces a descriptor yet.
*/
package descriptor
