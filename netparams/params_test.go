// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSelect checks the network chosen for the flags.
func TestSelect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name                            string
		testnet, signet, simnet, regtst bool
		expected                        *Params
	}{
		{name: "default", expected: &MainNetParams},
		{name: "testnet", testnet: true, expected: &TestNet3Params},
		{name: "signet", signet: true, expected: &SigNetParams},
		{name: "simnet", simnet: true, expected: &SimNetParams},
		{name: "regtest", regtst: true, expected: &RegressionNetParams},
		{name: "two networks", testnet: true, regtst: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			params, err := Select(
				tc.testnet, tc.signet, tc.simnet, tc.regtst,
			)
			if tc.expected == nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Same(t, tc.expected, params)
		})
	}
}
