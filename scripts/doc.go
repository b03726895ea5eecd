// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package scripts gives distinct types to the logical layers of Bitcoin script.

Consensus does not distinguish a script found in an output from one found in
an input, a redeem script or a witness script: they are all byte sequences
formatted as opcodes and pushes. Logically they are very different though,
since some layers only commit to the hash of a nested layer while others
carry the full source of the script. Mixing them up produces outputs that
can never be spent.

This package models the layers as separate types:

  - LockScript: the bottom layer, a script that contains no commitment to
    any other script or key hash.
  - PubkeyScript: whatever is in the scriptPubKey field of a TxOut.
  - SigScript: whatever is in the signature script field of a TxIn.
  - RedeemScript: the script committed to by a P2SH hash.
  - WitnessScript: the script committed to by a segwit v0 program hash.
  - TapScript: a taproot leaf script.
  - Witness: the witness stack of an input.
  - WitnessProgram: the data push following the version of a segwit output.

The relation between the layers is:

	LockScript -+-> (PubkeyScript + RedeemScript) -+-> SigScript
	            |                                  +-> WitnessScript
	            +-> PubkeyScript
	            |
	            +-> TapScript (not derivable yet)

	PubkeyScript --?--> LockScript (P2PK and custom scripts only)

A LockScript or a PublicKey is turned into the other layers according to a
Category: Bare publishes the script itself, Hashed wraps it in P2SH, SegWit
commits to it with a v0 witness program and Nested wraps that witness
program in P2SH. Taproot is reserved; every conversion asked to produce a
taproot form fails with ErrUnsupportedCategory.

ScriptSet bundles the output and input parts produced for one category and
can move input data between the signature script and the witness with
Transmutate.
*/
package scripts
