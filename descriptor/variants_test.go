// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"testing"

	"github.com/btcsuite/descwallet/scripts"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParseVariants checks the variant notation parser.
func TestParseVariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		notation string
		expected Variants
		valid    bool
	}{{
		name:     "single",
		notation: "S",
		expected: NewVariants(scripts.SegWit),
		valid:    true,
	}, {
		name:     "all",
		notation: "BHNST",
		expected: NewVariants(scripts.Categories...),
		valid:    true,
	}, {
		name:     "any order and case",
		notation: "sHb",
		expected: NewVariants(scripts.Bare, scripts.Hashed,
			scripts.SegWit),
		valid: true,
	}, {
		name:     "empty",
		notation: "",
	}, {
		name:     "duplicate",
		notation: "BHb",
	}, {
		name:     "unknown",
		notation: "BX",
	}, {
		name:     "space",
		notation: "B H",
	}}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := ParseVariants(tc.notation)
			if !tc.valid {
				require.ErrorIs(t, err, ErrVariantsParse)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

// TestVariantsString checks that the notation is rendered in canonical order
// and parses back to the same set.
func TestVariantsString(t *testing.T) {
	t.Parallel()

	v := NewVariants(scripts.SegWit, scripts.Bare, scripts.Nested)
	require.Equal(t, "BNS", v.String())
	require.Equal(t, []scripts.Category{
		scripts.Bare, scripts.Nested, scripts.SegWit,
	}, v.Categories())

	rapid.Check(t, func(t *rapid.T) {
		v := Variants(rapid.IntRange(1, 31).Draw(t, "variants"))

		parsed, err := ParseVariants(v.String())
		require.NoError(t, err)
		require.Equal(t, v, parsed)
	})
}

// TestVariantsMembership checks the set operations.
func TestVariantsMembership(t *testing.T) {
	t.Parallel()

	var v Variants
	require.True(t, v.IsEmpty())
	require.False(t, v.HasWitness())

	v = v.With(scripts.Hashed).With(scripts.Category(42))
	require.False(t, v.IsEmpty())
	require.True(t, v.Has(scripts.Hashed))
	require.False(t, v.Has(scripts.Bare))
	require.False(t, v.Has(scripts.Category(42)))
	require.False(t, v.HasWitness())

	require.True(t, v.With(scripts.Nested).HasWitness())
}

// TestUnhardenedIndex checks the bounds of the index type.
func TestUnhardenedIndex(t *testing.T) {
	t.Parallel()

	idx, err := NewUnhardenedIndex(0x7fffffff)
	require.NoError(t, err)
	require.Equal(t, MaxUnhardenedIndex, idx)
	require.Equal(t, "2147483647", idx.String())

	_, err = NewUnhardenedIndex(0x80000000)
	require.ErrorIs(t, err, ErrHardenedIndex)

	idx, err = ParseUnhardenedIndex("42")
	require.NoError(t, err)
	require.Equal(t, uint32(42), idx.Uint32())

	_, err = ParseUnhardenedIndex("2147483648")
	require.ErrorIs(t, err, ErrHardenedIndex)

	_, err = ParseUnhardenedIndex("-1")
	require.Error(t, err)
}
