// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// MaxUnhardenedIndex is the largest index a template can be derived at.
const MaxUnhardenedIndex = UnhardenedIndex(hdkeychain.HardenedKeyStart - 1)

// UnhardenedIndex is a BIP-32 child index below the hardened range.  Values
// of this type are always valid.
type UnhardenedIndex uint32

// NewUnhardenedIndex returns the index, or ErrHardenedIndex if i is in the
// hardened range.
func NewUnhardenedIndex(i uint32) (UnhardenedIndex, error) {
	if i >= hdkeychain.HardenedKeyStart {
		return 0, fmt.Errorf("%w: %d", ErrHardenedIndex, i)
	}
	return UnhardenedIndex(i), nil
}

// ParseUnhardenedIndex parses a decimal index.
func ParseUnhardenedIndex(s string) (UnhardenedIndex, error) {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return NewUnhardenedIndex(uint32(i))
}

// Uint32 returns the index as a child number.
func (i UnhardenedIndex) Uint32() uint32 {
	return uint32(i)
}

// String returns the decimal index.
func (i UnhardenedIndex) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
