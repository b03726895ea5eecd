// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"context"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var errTestTemplate = errors.New("test template failure")

// failingTemplate is a template that can't derive some categories.
type failingTemplate struct {
	failFor scripts.Category
}

func (f *failingTemplate) DeriveLockScript(_ UnhardenedIndex,
	c scripts.Category) (scripts.LockScript, error) {

	if c == f.failFor {
		return nil, errTestTemplate
	}
	return scripts.LockScript{0x51}, nil
}

func (f *failingTemplate) String() string { return "failing()" }

// brokenSingleKey is a single key template that never produces its key.
type brokenSingleKey struct {
	failingTemplate
}

func (b *brokenSingleKey) DerivePublicKey(UnhardenedIndex) (scripts.PublicKey,
	error) {

	return scripts.PublicKey{}, errTestTemplate
}

func mustParseGenerator(t require.TestingT, s string) *Generator {
	g, err := ParseGenerator(s)
	require.NoError(t, err)
	return g
}

// expandedStrings renders a descriptor map for comparison.
func expandedStrings(m map[scripts.Category]Expanded) map[scripts.Category]string {
	s := make(map[scripts.Category]string, len(m))
	for c, d := range m {
		s[c] = d.String() + " " + d.PubkeyScript().Hex()
	}
	return s
}

// TestParseGeneratorErrors checks that malformed notations fail without a
// partial generator.
func TestParseGeneratorErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		notation string
	}{
		{"unbalanced", "HS<"},
		{"no template", "HS"},
		{"empty", ""},
		{"no variants", "<pk(" + testKeyG + ")>"},
		{"unknown variant", "HX<pk(" + testKeyG + ")>"},
		{"duplicate variant", "HH<pk(" + testKeyG + ")>"},
		{"trailing characters", "HS<pk(" + testKeyG + ")>x"},
		{"bad template", "HS<pk(zz)>"},
		{"empty template", "HS<>"},
		{"uncompressed nested", "N<pk(" + testKeyGUncompressed + ")>"},
		{"uncompressed segwit multi",
			"S<multi(1," + testKeyG + "," + testKeyGUncompressed + ")>"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g, err := ParseGenerator(tc.notation)
			require.ErrorIs(t, err, ErrGeneratorParse)
			require.Nil(t, g)
		})
	}
}

// TestNewGenerator checks the construction invariants of a generator.
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tmpl, err := NewSingleSig(testKeyGUncompressed)
	require.NoError(t, err)

	_, err = NewGenerator(nil, NewVariants(scripts.Bare))
	require.Error(t, err)

	_, err = NewGenerator(tmpl, 0)
	require.ErrorIs(t, err, ErrNoVariants)

	_, err = NewGenerator(tmpl, NewVariants(scripts.SegWit))
	require.True(t, scripts.IsError(err, scripts.ErrUncompressedKey))

	_, err = NewGenerator(tmpl, NewVariants(scripts.Bare, scripts.Taproot))
	require.True(t, scripts.IsError(err, scripts.ErrUncompressedKey))

	g, err := NewGenerator(tmpl, NewVariants(scripts.Bare, scripts.Hashed))
	require.NoError(t, err)

	descriptors, err := g.Descriptors(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, map[scripts.Category]string{
		scripts.Bare:   "pk(" + testKeyGUncompressed + ")",
		scripts.Hashed: "pkh(" + testKeyGUncompressed + ")",
	}, map[scripts.Category]string{
		scripts.Bare:   descriptors[scripts.Bare].String(),
		scripts.Hashed: descriptors[scripts.Hashed].String(),
	})
}

// TestSingleSigDescriptors checks that a single key generator produces the
// compact key descriptors for exactly the requested categories.
func TestSingleSigDescriptors(t *testing.T) {
	t.Parallel()

	g := mustParseGenerator(t, "BHS<pk("+testKeyG+")>")

	descriptors, err := g.Descriptors(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	key, err := scripts.ParsePublicKey(hexToBytes(testKeyG))
	require.NoError(t, err)

	require.IsType(t, Pk{}, descriptors[scripts.Bare])
	require.True(t, key.Equal(descriptors[scripts.Bare].(Pk).Key))

	require.IsType(t, Pkh{}, descriptors[scripts.Hashed])
	require.True(t, key.Equal(descriptors[scripts.Hashed].(Pkh).Key))

	require.IsType(t, Wpkh{}, descriptors[scripts.SegWit])
	require.True(t, key.Key.IsEqual(descriptors[scripts.SegWit].(Wpkh).Key))

	require.NotContains(t, descriptors, scripts.Nested)
	require.NotContains(t, descriptors, scripts.Taproot)

	pkScripts, err := g.PubkeyScripts(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, scripts.PubkeyScript(hexToBytes(
		"0014"+testKeyHash,
	)), pkScripts[scripts.SegWit])
	require.Equal(t, scripts.PubkeyScript(hexToBytes(
		"76a914"+testKeyHash+"88ac",
	)), pkScripts[scripts.Hashed])
}

// TestMultiSigDescriptors checks that other templates go through lock
// script derivation and produce script descriptors.
func TestMultiSigDescriptors(t *testing.T) {
	t.Parallel()

	g := mustParseGenerator(
		t, "BHNS<sortedmulti(1,"+testKey2G+","+testKeyG+")>",
	)

	descriptors, err := g.Descriptors(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, descriptors, 4)

	lock, err := g.Template().DeriveLockScript(3, scripts.Bare)
	require.NoError(t, err)

	require.Equal(t, Bare{Script: scripts.PubkeyScript(lock)},
		descriptors[scripts.Bare])
	require.Equal(t, Sh{Script: lock.RedeemScript()},
		descriptors[scripts.Hashed])
	require.Equal(t, ShWsh{Script: lock.WitnessScript()},
		descriptors[scripts.Nested])
	require.Equal(t, Wsh{Script: lock.WitnessScript()},
		descriptors[scripts.SegWit])
}

// TestTaprootSkipped checks that taproot never shows up in the result.
func TestTaprootSkipped(t *testing.T) {
	t.Parallel()

	g := mustParseGenerator(t, "T<pk("+testKeyG+")>")
	descriptors, err := g.Descriptors(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, descriptors)

	g = mustParseGenerator(t, "BT<multi(1,"+testKeyG+")>")
	descriptors, err = g.Descriptors(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	require.Contains(t, descriptors, scripts.Bare)
}

// TestDescriptorsErrors checks the failures of descriptor derivation.
func TestDescriptorsErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	g, err := NewGenerator(
		&failingTemplate{failFor: scripts.Nested},
		NewVariants(scripts.Bare, scripts.Nested, scripts.SegWit),
	)
	require.NoError(t, err)

	_, err = g.Descriptors(ctx, 7)
	require.ErrorIs(t, err, errTestTemplate)

	derr, ok := IsDerivationError(err)
	require.True(t, ok)
	require.Equal(t, UnhardenedIndex(7), derr.Index)
	require.Equal(t, scripts.Nested, derr.Category)

	_, err = g.PubkeyScripts(ctx, 7)
	require.ErrorIs(t, err, errTestTemplate)

	broken, err := NewGenerator(
		&brokenSingleKey{}, NewVariants(scripts.Bare),
	)
	require.NoError(t, err)
	_, err = broken.Descriptors(ctx, 0)
	require.ErrorIs(t, err, ErrTemplateInvariant)
	require.ErrorIs(t, err, errTestTemplate)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = g.Descriptors(canceled, 0)
	require.ErrorIs(t, err, context.Canceled)
}

// TestGeneratorNotationRoundTrip checks that the notation of a generator
// parses back to an equal generator.
func TestGeneratorNotationRoundTrip(t *testing.T) {
	t.Parallel()

	templates := []string{
		"pk(" + testKeyG + ")",
		"pk(" + testXPub + "/0/*)",
		"multi(2," + testKeyG + "," + testKey2G + "," + testKey3G + ")",
		"sortedmulti(1," + testXPub + "/0/*," + testXPub + "/1/*)",
	}

	rapid.Check(t, func(t *rapid.T) {
		v := Variants(rapid.IntRange(1, 31).Draw(t, "variants"))
		tmpl := rapid.SampledFrom(templates).Draw(t, "template")

		g := mustParseGenerator(t, v.String()+"<"+tmpl+">")
		require.Equal(t, v, g.Variants())

		parsed := mustParseGenerator(t, g.String())
		require.True(t, g.Equal(parsed), "%v != %v", g, parsed)
		require.Equal(t, g.String(), parsed.String())
	})

	g := mustParseGenerator(t, "sh<pk("+testKeyG+")>")
	require.Equal(t, "HS<pk("+testKeyG+")>", g.String())
}

// TestDescriptorsDeterministic checks that repeated derivations agree and
// that the result holds exactly the requested categories.
func TestDescriptorsDeterministic(t *testing.T) {
	t.Parallel()

	templates := []string{
		"pk(" + testXPub + "/0/*)",
		"sortedmulti(2," + testXPub + "/0/*," + testXPub + "/1/*)",
	}

	rapid.Check(t, func(t *rapid.T) {
		v := Variants(rapid.IntRange(1, 31).Draw(t, "variants"))
		tmpl := rapid.SampledFrom(templates).Draw(t, "template")
		idx := UnhardenedIndex(
			rapid.Uint32Range(0, 1000).Draw(t, "index"),
		)

		g := mustParseGenerator(t, v.String()+"<"+tmpl+">")

		first, err := g.Descriptors(context.Background(), idx)
		require.NoError(t, err)
		second, err := g.Descriptors(context.Background(), idx)
		require.NoError(t, err)
		require.Equal(t, expandedStrings(first),
			expandedStrings(second), spew.Sdump(first, second))

		for _, c := range scripts.Categories {
			expected := v.Has(c) && c != scripts.Taproot
			_, ok := first[c]
			require.Equal(t, expected, ok, "category %v", c)
			if ok {
				require.Equal(t, c, first[c].Category())
			}
		}
	})
}

// TestDescriptorsRange checks that a window of indices is derived in order.
func TestDescriptorsRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := mustParseGenerator(t, "BNS<pk("+testXPub+"/0/*)>")

	derived, err := g.DescriptorsRange(ctx, 5, 20)
	require.NoError(t, err)
	require.Len(t, derived, 20)

	for i, d := range derived {
		idx := UnhardenedIndex(5 + i)
		require.Equal(t, idx, d.Index)

		expected, err := g.Descriptors(ctx, idx)
		require.NoError(t, err)
		require.Equal(t, expandedStrings(expected),
			expandedStrings(d.Descriptors))
	}

	derived, err = g.DescriptorsRange(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, derived)

	_, err = g.DescriptorsRange(ctx, MaxUnhardenedIndex, 2)
	require.ErrorIs(t, err, ErrHardenedIndex)

	last, err := g.DescriptorsRange(ctx, MaxUnhardenedIndex, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)

	failing, err := NewGenerator(
		&failingTemplate{failFor: scripts.Hashed},
		NewVariants(scripts.Hashed),
	)
	require.NoError(t, err)
	_, err = failing.DescriptorsRange(ctx, 0, 10)
	require.ErrorIs(t, err, errTestTemplate)
}

// TestCheckNet checks that extended keys are only accepted on their own
// network while fixed keys are accepted everywhere.
func TestCheckNet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		notation string
		params   *chaincfg.Params
		valid    bool
	}{{
		name:     "xpub on mainnet",
		notation: "S<pk(" + testXPub + "/0/*)>",
		params:   &chaincfg.MainNetParams,
		valid:    true,
	}, {
		name:     "xpub on testnet",
		notation: "S<pk(" + testXPub + "/0/*)>",
		params:   &chaincfg.TestNet3Params,
	}, {
		name:     "xpub on regtest",
		notation: "BH<multi(1," + testKeyG + "," + testXPub + "/*)>",
		params:   &chaincfg.RegressionNetParams,
	}, {
		name:     "fixed keys on testnet",
		notation: "BH<multi(1," + testKeyG + "," + testKey2G + ")>",
		params:   &chaincfg.TestNet3Params,
		valid:    true,
	}, {
		name:     "custom template",
		notation: "",
		params:   &chaincfg.SigNetParams,
		valid:    true,
	}}

	for _, tc := range testCases {
		var g *Generator
		if tc.notation == "" {
			var err error
			g, err = NewGenerator(
				&failingTemplate{}, NewVariants(scripts.Bare),
			)
			require.NoError(t, err)
		} else {
			g = mustParseGenerator(t, tc.notation)
		}

		err := g.CheckNet(tc.params)
		if tc.valid {
			require.NoError(t, err, tc.name)
			continue
		}
		require.ErrorIs(t, err, ErrWrongNetwork, tc.name)
	}
}
