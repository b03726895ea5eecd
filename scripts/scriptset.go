// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// ScriptSet holds the scripts of both sides of a spend: the output script
// and the input side data that reveals what it commits to.
type ScriptSet struct {
	// PubkeyScript is the script of the output being spent.
	PubkeyScript PubkeyScript

	// SigScript is the signature script of the spending input.  It is
	// empty for native witness spends.
	SigScript SigScript

	// Witness is the witness stack of the spending input, if the spend
	// uses one.
	Witness fn.Option[Witness]
}

// HasWitness returns whether the set carries witness data.
func (s *ScriptSet) HasWitness() bool {
	return s.Witness.IsSome()
}

// IsWitnessSH returns whether the set spends a P2SH wrapped witness program,
// that is both a signature script and a witness are present.
func (s *ScriptSet) IsWitnessSH() bool {
	return len(s.SigScript) > 0 && s.HasWitness()
}

// Transmutate moves the input data of the set between the signature script
// and the witness.  With useWitness every data push of the signature script
// becomes a witness element, otherwise every witness element becomes a push.
//
// It returns false and leaves the set untouched if the set already has the
// requested form, if it is a P2SH wrapped witness spend, or if the elements
// can't be pushed into a script.
//
// Small integer opcodes count as data pushes: OP_1NEGATE becomes the element
// 0x81 and OP_1 through OP_16 become the one byte element of their value, so
// moving the data back into a signature script restores it.  Every other non
// push opcode of the signature script is dropped.
func (s *ScriptSet) Transmutate(useWitness bool) bool {
	if s.IsWitnessSH() || s.HasWitness() == useWitness {
		return false
	}

	if useWitness {
		s.Witness = fn.Some(sigScriptPushes(s.SigScript))
		s.SigScript = SigScript{}
		return true
	}

	b := txscript.NewScriptBuilder()
	for _, e := range s.Witness.UnsafeFromSome() {
		b.AddFullData(e)
	}
	sigScript, err := b.Script()
	if err != nil {
		log.Debugf("Unable to move witness into sig script: %v", err)
		return false
	}

	s.SigScript = sigScript
	s.Witness = fn.None[Witness]()
	return true
}

// sigScriptPushes returns the data pushed by the signature script in order.
// Small integer opcodes are returned as the single byte they push, so pushing
// the elements again with a canonical builder yields the same script.
func sigScriptPushes(script SigScript) Witness {
	stack := Witness{}
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		switch {
		case op <= txscript.OP_PUSHDATA4:
			stack = append(stack, append([]byte{}, tokenizer.Data()...))

		case op == txscript.OP_1NEGATE:
			stack = append(stack, []byte{0x81})

		case op >= txscript.OP_1 && op <= txscript.OP_16:
			stack = append(stack, []byte{op - (txscript.OP_1 - 1)})

		default:
			log.Tracef("Dropping opcode 0x%02x from sig script", op)
		}
	}
	if err := tokenizer.Err(); err != nil {
		log.Debugf("Sig script parsed partially: %v", err)
	}
	return stack
}

// Equal reports whether both sets hold identical scripts and witness.
func (s *ScriptSet) Equal(o *ScriptSet) bool {
	if s == nil || o == nil {
		return s == o
	}
	if !s.PubkeyScript.Equal(o.PubkeyScript) ||
		!s.SigScript.Equal(o.SigScript) ||
		s.HasWitness() != o.HasWitness() {

		return false
	}

	empty := Witness(nil)
	return s.Witness.UnwrapOr(empty).Equal(o.Witness.UnwrapOr(empty))
}

// Clone returns a deep copy of the set.
func (s *ScriptSet) Clone() *ScriptSet {
	return &ScriptSet{
		PubkeyScript: clone(s.PubkeyScript),
		SigScript:    clone(s.SigScript),
		Witness:      fn.MapOption(Witness.Clone)(s.Witness),
	}
}

// String renders the set as the signature script, the witness and the
// output script separated by spaces.
func (s *ScriptSet) String() string {
	witness := fn.MapOptionZ(s.Witness, Witness.String)
	return fmt.Sprintf("%v %s %v", s.SigScript, witness, s.PubkeyScript)
}
