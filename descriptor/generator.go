// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/lightningnetwork/lnd/fn/v2"
	"golang.org/x/sync/errgroup"
)

// Generator expands a template into one descriptor per enabled category for
// any unhardened index.  Generators are immutable and safe for concurrent
// use.
type Generator struct {
	template Template
	variants Variants
}

// NewGenerator pairs a template with the categories to generate.  Templates
// holding uncompressed keys can't be combined with witness categories.
func NewGenerator(t Template, v Variants) (*Generator, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil template", ErrTemplateParse)
	}
	if v.IsEmpty() {
		return nil, ErrNoVariants
	}

	ck, ok := t.(compressedKeyer)
	if ok && v.HasWitness() && !ck.compressedOnly() {
		return nil, scripts.Error{
			ErrorCode: scripts.ErrUncompressedKey,
			Description: fmt.Sprintf("template %v holds an "+
				"uncompressed key and can't generate %v "+
				"descriptors", t, v),
		}
	}

	return &Generator{template: t, variants: v}, nil
}

// ParseGenerator parses the compact notation VARIANTS<TEMPLATE>, for example
// "HS<pk(02...)>".
func ParseGenerator(s string) (*Generator, error) {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return nil, fmt.Errorf("%w: missing '<' in %q",
			ErrGeneratorParse, s)
	}
	end := strings.IndexByte(s[open:], '>')
	if end < 0 {
		return nil, fmt.Errorf("%w: missing '>' in %q",
			ErrGeneratorParse, s)
	}
	end += open
	if end != len(s)-1 {
		return nil, fmt.Errorf("%w: trailing characters %q",
			ErrGeneratorParse, s[end+1:])
	}

	v, err := ParseVariants(s[:open])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneratorParse, err)
	}
	t, err := ParseTemplate(s[open+1 : end])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneratorParse, err)
	}

	g, err := NewGenerator(t, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneratorParse, err)
	}
	return g, nil
}

// Template returns the template of the generator.
func (g *Generator) Template() Template {
	return g.template
}

// Variants returns the enabled categories.
func (g *Generator) Variants() Variants {
	return g.variants
}

// String returns the compact notation of the generator.
func (g *Generator) String() string {
	return g.variants.String() + "<" + g.template.String() + ">"
}

// Equal returns whether both generators have the same variants and
// templates with the same expression.
func (g *Generator) Equal(o *Generator) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.variants == o.variants &&
		g.template.String() == o.template.String()
}

// CheckNet returns ErrWrongNetwork if the template holds an extended key
// of another network than params.  Testnet, signet and regtest share their
// extended key versions.
func (g *Generator) CheckNet(params *chaincfg.Params) error {
	t, ok := g.template.(netKeyer)
	if !ok {
		return nil
	}
	return t.checkNet(params)
}

// Descriptors derives the descriptor of every enabled category at the index.
// Categories that are not enabled are absent from the result.  Taproot is
// not generated yet and is skipped even when enabled.
func (g *Generator) Descriptors(ctx context.Context,
	idx UnhardenedIndex) (map[scripts.Category]Expanded, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Single key templates produce the compact key descriptors, so their
	// key is derived once and shared by every category.
	singleKey := fn.None[scripts.PublicKey]()
	if t, ok := g.template.(SingleKeyTemplate); ok {
		key, err := t.DerivePublicKey(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to derive key of %v "+
				"at index %v: %w", ErrTemplateInvariant, t, idx,
				err)
		}
		singleKey = fn.Some(key)
	}

	descriptors := make(map[scripts.Category]Expanded)
	for _, c := range g.variants.Categories() {
		if c == scripts.Taproot {
			log.Debugf("Skipping taproot descriptor of %v at "+
				"index %v", g, idx)
			continue
		}

		var (
			d   Expanded
			err error
		)
		if singleKey.IsSome() {
			d, err = keyDescriptor(singleKey.UnsafeFromSome(), c)
		} else {
			d, err = g.scriptDescriptor(idx, c)
		}
		if err != nil {
			return nil, &DerivationError{
				Index:    idx,
				Category: c,
				Err:      err,
			}
		}

		descriptors[c] = d
	}

	log.Tracef("Derived %d descriptors of %v at index %v",
		len(descriptors), g, idx)

	return descriptors, nil
}

// keyDescriptor returns the single key descriptor of the category.
func keyDescriptor(key scripts.PublicKey, c scripts.Category) (Expanded,
	error) {

	switch c {
	case scripts.Bare:
		return Pk{Key: key}, nil

	case scripts.Hashed:
		return Pkh{Key: key}, nil
	}

	if !key.Compressed {
		return nil, scripts.Error{
			ErrorCode: scripts.ErrUncompressedKey,
			Description: fmt.Sprintf("uncompressed key %v can't be "+
				"used in %v descriptors", key, c),
		}
	}

	switch c {
	case scripts.Nested:
		return ShWpkh{Key: key.Key}, nil

	case scripts.SegWit:
		return Wpkh{Key: key.Key}, nil
	}

	return nil, scripts.Error{
		ErrorCode:   scripts.ErrUnknownCategory,
		Description: fmt.Sprintf("no key descriptor for %v", c),
	}
}

// scriptDescriptor derives the lock script of the template and wraps it in
// the script descriptor of the category.
func (g *Generator) scriptDescriptor(idx UnhardenedIndex,
	c scripts.Category) (Expanded, error) {

	lock, err := g.template.DeriveLockScript(idx, c)
	if err != nil {
		return nil, err
	}

	switch c {
	case scripts.Bare:
		return Bare{Script: scripts.PubkeyScript(lock)}, nil

	case scripts.Hashed:
		return Sh{Script: lock.RedeemScript()}, nil

	case scripts.Nested:
		return ShWsh{Script: lock.WitnessScript()}, nil

	case scripts.SegWit:
		return Wsh{Script: lock.WitnessScript()}, nil
	}

	return nil, scripts.Error{
		ErrorCode:   scripts.ErrUnknownCategory,
		Description: fmt.Sprintf("no script descriptor for %v", c),
	}
}

// PubkeyScripts derives the output script of every enabled category at the
// index.
func (g *Generator) PubkeyScripts(ctx context.Context,
	idx UnhardenedIndex) (map[scripts.Category]scripts.PubkeyScript, error) {

	descriptors, err := g.Descriptors(ctx, idx)
	if err != nil {
		return nil, err
	}

	pkScripts := make(map[scripts.Category]scripts.PubkeyScript,
		len(descriptors))
	for c, d := range descriptors {
		pkScripts[c] = d.PubkeyScript()
	}
	return pkScripts, nil
}

// Derived holds the descriptors generated at one index.
type Derived struct {
	Index       UnhardenedIndex
	Descriptors map[scripts.Category]Expanded
}

// DescriptorsRange derives the descriptors of count consecutive indices
// starting at from.  Indices are derived concurrently and returned in
// order.  The first failure cancels the remaining work and is returned.
func (g *Generator) DescriptorsRange(ctx context.Context, from UnhardenedIndex,
	count uint32) ([]Derived, error) {

	if count == 0 {
		return nil, nil
	}
	last := uint64(from) + uint64(count) - 1
	if last > uint64(MaxUnhardenedIndex) {
		return nil, fmt.Errorf("%w: range %v+%d ends at %d",
			ErrHardenedIndex, from, count, last)
	}

	results := make([]Derived, count)

	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.SetLimit(runtime.NumCPU())

	for i := uint32(0); i < count; i++ {
		idx := from + UnhardenedIndex(i)
		errGroup.Go(func() error {
			descriptors, err := g.Descriptors(ctx, idx)
			if err != nil {
				return err
			}
			results[i] = Derived{Index: idx, Descriptors: descriptors}
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// IsDerivationError returns whether err was raised while deriving a lock
// script, and if so the failed index and category.
func IsDerivationError(err error) (*DerivationError, bool) {
	var derr *DerivationError
	if errors.As(err, &derr) {
		return derr, true
	}
	return nil, false
}
