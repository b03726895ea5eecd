// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcwallet/wallet/txsizes"
)

// witnessVSize is the virtual size of a P2WPKH spending witness, rounded up.
const witnessVSize = (txsizes.RedeemP2WPKHInputWitnessWeight +
	blockchain.WitnessScaleFactor - 1) / blockchain.WitnessScaleFactor

// EstimateInputVSize returns the worst case virtual size of an input
// spending the output of a single key descriptor.  Script descriptors and
// uncompressed keys have no fixed spending size and report false.
func EstimateInputVSize(d Expanded) (int, bool) {
	switch d := d.(type) {
	case Pkh:
		if !d.Key.Compressed {
			return 0, false
		}
		return txsizes.RedeemP2PKHInputSize, true

	case ShWpkh:
		return txsizes.RedeemNestedP2WPKHInputSize + witnessVSize, true

	case Wpkh:
		return txsizes.RedeemP2WPKHInputSize + witnessVSize, true

	default:
		return 0, false
	}
}
