// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Params groups the chain parameters of a network with the name of its
// directory below the application data directory.
type Params struct {
	*chaincfg.Params

	// DataDirName is the directory holding the files of the network.
	DataDirName string
}

// MainNetParams contains the parameters of the main network.
var MainNetParams = Params{
	Params:      &chaincfg.MainNetParams,
	DataDirName: "mainnet",
}

// TestNet3Params contains the parameters of the test network (version 3).
var TestNet3Params = Params{
	Params:      &chaincfg.TestNet3Params,
	DataDirName: "testnet3",
}

// SigNetParams contains the parameters of the default signet.
var SigNetParams = Params{
	Params:      &chaincfg.SigNetParams,
	DataDirName: "signet",
}

// SimNetParams contains the parameters of the simulation test network.
var SimNetParams = Params{
	Params:      &chaincfg.SimNetParams,
	DataDirName: "simnet",
}

// RegressionNetParams contains the parameters of the regression test
// network.
var RegressionNetParams = Params{
	Params:      &chaincfg.RegressionNetParams,
	DataDirName: "regtest",
}

// Select returns the network enabled by the flags, main network when none
// is set.  Enabling more than one network is an error.
func Select(testnet, signet, simnet, regtest bool) (*Params, error) {
	active := &MainNetParams
	count := 0
	for _, n := range []struct {
		enabled bool
		params  *Params
	}{
		{testnet, &TestNet3Params},
		{signet, &SigNetParams},
		{simnet, &SimNetParams},
		{regtest, &RegressionNetParams},
	} {
		if n.enabled {
			active = n.params
			count++
		}
	}

	if count > 1 {
		return nil, fmt.Errorf("the testnet, signet, simnet and regtest " +
			"networks can't be used together")
	}
	return active, nil
}
