// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package descriptor

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// MaxMultiSigKeys is the largest number of keys a multisig template may
// hold, the consensus limit of OP_CHECKMULTISIG.
const MaxMultiSigKeys = txscript.MaxPubKeysPerMultiSig

// Template derives the lock script of a wallet for an index.
type Template interface {
	// DeriveLockScript returns the lock script at the index for the
	// category.  It fails for categories the template can't produce.
	DeriveLockScript(idx UnhardenedIndex,
		c scripts.Category) (scripts.LockScript, error)

	// String returns the template expression.  Parsing it yields an
	// equal template.
	String() string
}

// SingleKeyTemplate is a template for single signature wallets.  Generators
// use its key directly to produce the compact key descriptors.
type SingleKeyTemplate interface {
	Template

	// DerivePublicKey returns the key at the index.
	DerivePublicKey(idx UnhardenedIndex) (scripts.PublicKey, error)
}

// keyExpr is a key of a template: either a fixed public key or an extended
// public key derived along a path ending in the index.
type keyExpr struct {
	// text is the expression as written.
	text string

	fixed fn.Option[scripts.PublicKey]

	xpub *hdkeychain.ExtendedKey
	path []uint32
}

// parseKeyExpr parses a hex encoded public key or an extended public key
// followed by unhardened path steps and a final "/*" wildcard.
func parseKeyExpr(s string) (*keyExpr, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty key", ErrTemplateParse)
	}

	if !strings.Contains(s, "/") && len(s)%2 == 0 {
		if b, err := hex.DecodeString(s); err == nil {
			key, err := scripts.ParsePublicKey(b)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrTemplateParse,
					err)
			}
			return &keyExpr{text: s, fixed: fn.Some(key)}, nil
		}
	}

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[len(parts)-1] != "*" {
		return nil, fmt.Errorf("%w: extended key %q must end with /*",
			ErrTemplateParse, s)
	}

	xpub, err := hdkeychain.NewKeyFromString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}
	if xpub.IsPrivate() {
		return nil, fmt.Errorf("%w: extended private keys are not "+
			"allowed", ErrTemplateParse)
	}

	var path []uint32
	for _, step := range parts[1 : len(parts)-1] {
		n, err := parseCanonicalUint(step)
		if err != nil {
			return nil, err
		}
		if n > uint64(MaxUnhardenedIndex) {
			return nil, fmt.Errorf("%w: hardened path step %q",
				ErrTemplateParse, step)
		}
		path = append(path, uint32(n))
	}

	return &keyExpr{text: s, xpub: xpub, path: path}, nil
}

// derive returns the key at the index.  Fixed keys are the same for every
// index; keys derived from an extended key are always compressed.
func (k *keyExpr) derive(idx UnhardenedIndex) (scripts.PublicKey, error) {
	if k.fixed.IsSome() {
		return k.fixed.UnsafeFromSome(), nil
	}

	child := k.xpub
	for _, step := range k.path {
		var err error
		child, err = child.Derive(step)
		if err != nil {
			return scripts.PublicKey{}, err
		}
	}
	child, err := child.Derive(idx.Uint32())
	if err != nil {
		return scripts.PublicKey{}, err
	}

	pub, err := child.ECPubKey()
	if err != nil {
		return scripts.PublicKey{}, err
	}
	return scripts.CompressedKey(pub), nil
}

// checkNet fails if the key is an extended key of another network.  Fixed
// keys are valid on every network.
func (k *keyExpr) checkNet(params *chaincfg.Params) error {
	if k.xpub == nil || k.xpub.IsForNet(params) {
		return nil
	}
	return fmt.Errorf("%w: %s is not a %s key", ErrWrongNetwork,
		k.xpub, params.Name)
}

// isCompressed returns whether every derived key serializes compressed.
func (k *keyExpr) isCompressed() bool {
	return k.fixed.UnwrapOr(scripts.PublicKey{Compressed: true}).Compressed
}

// SingleSig is the pk(KEY) template.  Its lock script for a category is the
// standard single key script of that category.
type SingleSig struct {
	key *keyExpr
}

// NewSingleSig parses the key expression of a single signature template.
func NewSingleSig(key string) (*SingleSig, error) {
	k, err := parseKeyExpr(key)
	if err != nil {
		return nil, err
	}
	return &SingleSig{key: k}, nil
}

// DerivePublicKey returns the key at the index.
func (s *SingleSig) DerivePublicKey(idx UnhardenedIndex) (scripts.PublicKey,
	error) {

	return s.key.derive(idx)
}

// DeriveLockScript returns the single key lock script of the category.
func (s *SingleSig) DeriveLockScript(idx UnhardenedIndex,
	c scripts.Category) (scripts.LockScript, error) {

	key, err := s.key.derive(idx)
	if err != nil {
		return nil, err
	}
	return key.ToLockScript(c)
}

func (s *SingleSig) compressedOnly() bool {
	return s.key.isCompressed()
}

func (s *SingleSig) checkNet(params *chaincfg.Params) error {
	return s.key.checkNet(params)
}

// String returns "pk(KEY)".
func (s *SingleSig) String() string {
	return "pk(" + s.key.text + ")"
}

// MultiSig is the multi(K,KEY,...) template, or sortedmulti(K,KEY,...) with
// the keys of every index sorted as required by BIP-67.
type MultiSig struct {
	threshold int
	keys      []*keyExpr
	sorted    bool
}

// NewMultiSig builds a threshold template over the key expressions.
func NewMultiSig(threshold int, sorted bool, keys ...string) (*MultiSig,
	error) {

	if len(keys) == 0 || len(keys) > MaxMultiSigKeys {
		return nil, fmt.Errorf("%w: %d keys, expected 1 to %d",
			ErrTemplateParse, len(keys), MaxMultiSigKeys)
	}
	if threshold < 1 || threshold > len(keys) {
		return nil, fmt.Errorf("%w: threshold %d out of range 1-%d",
			ErrTemplateParse, threshold, len(keys))
	}

	m := &MultiSig{threshold: threshold, sorted: sorted}
	for _, key := range keys {
		k, err := parseKeyExpr(key)
		if err != nil {
			return nil, err
		}
		m.keys = append(m.keys, k)
	}
	return m, nil
}

// DeriveLockScript returns the OP_CHECKMULTISIG script of the keys at the
// index.  The script is the same for every category, but witness categories
// require every key to be compressed.
func (m *MultiSig) DeriveLockScript(idx UnhardenedIndex,
	c scripts.Category) (scripts.LockScript, error) {

	switch {
	case c == scripts.Taproot:
		return nil, scripts.Error{
			ErrorCode: scripts.ErrUnsupportedCategory,
			Description: "multisig templates can't be derived for " +
				"the taproot category",
		}

	case !c.IsValid():
		return nil, scripts.Error{
			ErrorCode:   scripts.ErrUnknownCategory,
			Description: fmt.Sprintf("unknown category %d", uint8(c)),
		}
	}

	keys := make([][]byte, 0, len(m.keys))
	for _, k := range m.keys {
		key, err := k.derive(idx)
		if err != nil {
			return nil, err
		}
		if c.IsWitness() && !key.Compressed {
			return nil, scripts.Error{
				ErrorCode: scripts.ErrUncompressedKey,
				Description: fmt.Sprintf("uncompressed key %v "+
					"used in %v multisig", key, c),
			}
		}
		keys = append(keys, key.Serialize())
	}

	if m.sorted {
		sort.Slice(keys, func(i, j int) bool {
			return bytes.Compare(keys[i], keys[j]) < 0
		})
	}

	b := txscript.NewScriptBuilder().AddInt64(int64(m.threshold))
	for _, key := range keys {
		b.AddData(key)
	}
	script, err := b.AddInt64(int64(len(keys))).
		AddOp(txscript.OP_CHECKMULTISIG).
		Script()
	if err != nil {
		return nil, scripts.Error{
			ErrorCode:   scripts.ErrScriptBuild,
			Description: "unable to build multisig script",
			Err:         err,
		}
	}

	return script, nil
}

func (m *MultiSig) compressedOnly() bool {
	for _, k := range m.keys {
		if !k.isCompressed() {
			return false
		}
	}
	return true
}

func (m *MultiSig) checkNet(params *chaincfg.Params) error {
	for _, k := range m.keys {
		if err := k.checkNet(params); err != nil {
			return err
		}
	}
	return nil
}

// String returns "multi(K,KEY,...)" or "sortedmulti(K,KEY,...)".
func (m *MultiSig) String() string {
	var b strings.Builder
	if m.sorted {
		b.WriteString("sortedmulti(")
	} else {
		b.WriteString("multi(")
	}
	b.WriteString(strconv.Itoa(m.threshold))
	for _, k := range m.keys {
		b.WriteByte(',')
		b.WriteString(k.text)
	}
	b.WriteByte(')')
	return b.String()
}

// compressedKeyer is implemented by templates that know up front whether
// every key they derive serializes compressed.
type compressedKeyer interface {
	compressedOnly() bool
}

// netKeyer is implemented by templates holding keys bound to a network.
type netKeyer interface {
	checkNet(params *chaincfg.Params) error
}

// Compile time assertions for the templates of this package.
var (
	_ SingleKeyTemplate = (*SingleSig)(nil)
	_ Template          = (*MultiSig)(nil)
	_ compressedKeyer   = (*SingleSig)(nil)
	_ compressedKeyer   = (*MultiSig)(nil)
	_ netKeyer          = (*SingleSig)(nil)
	_ netKeyer          = (*MultiSig)(nil)
)
