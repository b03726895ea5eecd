// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Address returns the address encoding the output script on the network.
// Only P2PKH, P2SH and segwit outputs have one; the result is None for P2PK,
// bare multisig and non-standard scripts.
func (s PubkeyScript) Address(params *chaincfg.Params) fn.Option[btcutil.Address] {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(s, params)
	if err != nil || len(addrs) != 1 {
		return fn.None[btcutil.Address]()
	}

	switch class {
	case txscript.PubKeyHashTy, txscript.ScriptHashTy,
		txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy,
		txscript.WitnessV1TaprootTy:

		return fn.Some(addrs[0])

	default:
		return fn.None[btcutil.Address]()
	}
}

// PubkeyScriptFromAddress returns the output script paying to the address.
func PubkeyScriptFromAddress(addr btcutil.Address) (PubkeyScript, error) {
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, scriptError(ErrScriptBuild, "unable to build "+
			"output script for address", err)
	}
	return script, nil
}
