// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	// testKeyCompressed is the generator point, the public key of the
	// private key 1.
	testKeyCompressed = hexToBytes("0279be667ef9dcbbac55a06295ce870b07029" +
		"bfcdb2dce28d959f2815b16f81798")

	testKeyUncompressed = hexToBytes("0479be667ef9dcbbac55a06295ce870b070" +
		"29bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108" +
		"a8fd17b448a68554199c47d08ffb10d4b8")

	// testKeyHash is the HASH160 of testKeyCompressed.
	testKeyHash = hexToBytes("751e76e8199196d454941c45d1b3a323f1433bd6")

	// testP2PKScript is a P2PK script for testKeyCompressed and
	// testP2PKScriptHash its SHA256.
	testP2PKScript = hexToBytes("210279be667ef9dcbbac55a06295ce870b07029b" +
		"fcdb2dce28d959f2815b16f81798ac")
	testP2PKScriptHash = hexToBytes("1863143c14c5166804bd19203356da136c98" +
		"5678cd4d27a1b8c6329604903262")
)

func mustParseKey(t *testing.T, b []byte) PublicKey {
	t.Helper()

	key, err := ParsePublicKey(b)
	require.NoError(t, err)
	return key
}

// TestPublicKeyScripts checks the scripts derived from a compressed key for
// every category.
func TestPublicKeyScripts(t *testing.T) {
	t.Parallel()

	key := mustParseKey(t, testKeyCompressed)
	p2wpkh := append([]byte{txscript.OP_0, txscript.OP_DATA_20},
		testKeyHash...)
	nestedHash := btcutil.Hash160(p2wpkh)

	testCases := []struct {
		name      string
		category  Category
		pkScript  []byte
		sigScript []byte
		witness   Witness
	}{{
		name:      "bare",
		category:  Bare,
		pkScript:  testP2PKScript,
		sigScript: []byte{},
	}, {
		name:     "hashed",
		category: Hashed,
		pkScript: hexToBytes("76a914751e76e8199196d454941c45d1b3a323f14" +
			"33bd688ac"),
		sigScript: append([]byte{txscript.OP_DATA_33},
			testKeyCompressed...),
	}, {
		name:     "nested",
		category: Nested,
		pkScript: append(append([]byte{txscript.OP_HASH160,
			txscript.OP_DATA_20}, nestedHash...), txscript.OP_EQUAL),
		sigScript: append([]byte{txscript.OP_DATA_22}, p2wpkh...),
		witness:   Witness{testKeyCompressed},
	}, {
		name:      "segwit",
		category:  SegWit,
		pkScript:  p2wpkh,
		sigScript: []byte{},
		witness:   Witness{testKeyCompressed},
	}}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lock, err := key.ToLockScript(tc.category)
			require.NoError(t, err)
			require.Equal(t, tc.pkScript, []byte(lock))

			set, err := key.ToScripts(tc.category)
			require.NoError(t, err)
			require.Equal(t, tc.pkScript, []byte(set.PubkeyScript))
			require.Equal(t, tc.sigScript, []byte(set.SigScript))
			require.Equal(t, tc.witness != nil, set.HasWitness())
			set.Witness.WhenSome(func(w Witness) {
				require.True(t, tc.witness.Equal(w))
			})
		})
	}
}

// TestUncompressedKeyInWitness checks that an uncompressed key is accepted
// for legacy categories and rejected with an error for witness ones.
func TestUncompressedKeyInWitness(t *testing.T) {
	t.Parallel()

	key := mustParseKey(t, testKeyUncompressed)
	require.False(t, key.Compressed)

	set, err := key.ToScripts(Bare)
	require.NoError(t, err)
	require.Equal(
		t, append(append([]byte{txscript.OP_DATA_65},
			testKeyUncompressed...), txscript.OP_CHECKSIG),
		[]byte(set.PubkeyScript),
	)

	set, err = key.ToScripts(Hashed)
	require.NoError(t, err)
	require.Equal(
		t, P2PKH(key.PubkeyHash()), set.PubkeyScript,
	)
	uncompressedHash := key.PubkeyHash()
	require.NotEqual(t, testKeyHash, uncompressedHash[:])

	for _, c := range []Category{Nested, SegWit} {
		_, err := key.ToLockScript(c)
		require.True(t, IsError(err, ErrUncompressedKey), c)

		_, err = key.ToPubkeyScript(c)
		require.True(t, IsError(err, ErrUncompressedKey), c)

		_, err = key.ToSigScript(c)
		require.True(t, IsError(err, ErrUncompressedKey), c)

		_, err = key.ToWitness(c)
		require.True(t, IsError(err, ErrUncompressedKey), c)

		_, err = key.ToScripts(c)
		require.True(t, IsError(err, ErrUncompressedKey), c)
	}
}

// TestTaprootUnsupported checks that every conversion rejects the taproot
// category instead of falling back to another one.
func TestTaprootUnsupported(t *testing.T) {
	t.Parallel()

	key := mustParseKey(t, testKeyCompressed)
	lock := LockScript(testP2PKScript)

	_, err := key.ToLockScript(Taproot)
	require.True(t, IsError(err, ErrUnsupportedCategory))

	producers := []ScriptsDeriver{key, lock}
	for _, p := range producers {
		_, err := p.ToPubkeyScript(Taproot)
		require.True(t, IsError(err, ErrUnsupportedCategory))

		_, err = p.ToSigScript(Taproot)
		require.True(t, IsError(err, ErrUnsupportedCategory))

		w, err := p.ToWitness(Taproot)
		require.True(t, IsError(err, ErrUnsupportedCategory))
		require.True(t, w.IsNone())

		set, err := ToScripts(p, Taproot)
		require.True(t, IsError(err, ErrUnsupportedCategory))
		require.Nil(t, set)
	}
}

// TestUnknownCategory checks that values outside the enumeration are
// rejected.
func TestUnknownCategory(t *testing.T) {
	t.Parallel()

	key := mustParseKey(t, testKeyCompressed)
	lock := LockScript(testP2PKScript)
	bogus := Category(42)

	require.False(t, bogus.IsValid())
	require.Equal(t, "unknown(42)", bogus.String())

	_, err := key.ToLockScript(bogus)
	require.True(t, IsError(err, ErrUnknownCategory))

	_, err = ToScripts(key, bogus)
	require.True(t, IsError(err, ErrUnknownCategory))

	_, err = ToScripts(lock, bogus)
	require.True(t, IsError(err, ErrUnknownCategory))
}

// TestLockScriptScripts checks the scripts derived from a lock script for
// every category against known vectors.
func TestLockScriptScripts(t *testing.T) {
	t.Parallel()

	lock := LockScript(testP2PKScript)
	p2wsh := append([]byte{txscript.OP_0, txscript.OP_DATA_32},
		testP2PKScriptHash...)

	set, err := lock.ToScripts(Bare)
	require.NoError(t, err)
	require.Equal(t, testP2PKScript, []byte(set.PubkeyScript))
	require.Empty(t, set.SigScript)
	require.False(t, set.HasWitness())

	set, err = lock.ToScripts(SegWit)
	require.NoError(t, err)
	require.Equal(t, p2wsh, []byte(set.PubkeyScript))
	require.Empty(t, set.SigScript)
	require.True(t, set.Witness.UnsafeFromSome().Equal(
		Witness{testP2PKScript},
	))

	set, err = lock.ToScripts(Nested)
	require.NoError(t, err)
	require.Equal(
		t, P2SH(RedeemScript(p2wsh).ScriptHash()), set.PubkeyScript,
	)
	require.Equal(
		t, append([]byte{txscript.OP_DATA_34}, p2wsh...),
		[]byte(set.SigScript),
	)
	require.True(t, set.IsWitnessSH())

	set, err = lock.ToScripts(Hashed)
	require.NoError(t, err)
	require.Equal(
		t, txscript.ScriptHashTy,
		txscript.GetScriptClass(set.PubkeyScript),
	)
	require.Equal(
		t, append([]byte{byte(len(testP2PKScript))}, testP2PKScript...),
		[]byte(set.SigScript),
	)
	require.False(t, set.HasWitness())
}

// lastPush returns the data of the final push of a script.
func lastPush(t *rapid.T, script []byte) []byte {
	var data []byte
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		data = tokenizer.Data()
	}
	require.NoError(t, tokenizer.Err())
	return data
}

// TestCommitmentMatchesReveal checks that for random lock scripts the hash
// embedded in the output script is the hash of the pre-image revealed by
// the input side.
func TestCommitmentMatchesReveal(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		// Single byte scripts may be pushed as small integer opcodes,
		// so start at two bytes to always get a data push.
		lock := LockScript(rapid.SliceOfN(
			rapid.Byte(), 2, txscript.MaxScriptElementSize,
		).Draw(t, "lock"))

		// Hashed: the sig script reveals the lock script which hashes
		// to the P2SH commitment.
		set, err := lock.ToScripts(Hashed)
		require.NoError(t, err)
		revealed := lastPush(t, set.SigScript)
		require.Equal(t, []byte(lock), revealed)
		require.Equal(
			t, btcutil.Hash160(revealed), []byte(set.PubkeyScript[2:22]),
		)

		// SegWit: the witness reveals the lock script which hashes to
		// the witness program.
		set, err = lock.ToScripts(SegWit)
		require.NoError(t, err)
		version, program, err := set.PubkeyScript.WitnessProgram()
		require.NoError(t, err)
		require.Equal(t, WitnessV0, version)
		witness := set.Witness.UnsafeFromSome()
		require.Len(t, witness, 1)
		require.Equal(t, chainhash.HashB(witness[0]), []byte(program))

		// Nested: both layers must match.
		set, err = lock.ToScripts(Nested)
		require.NoError(t, err)
		redeem := lastPush(t, set.SigScript)
		require.Equal(
			t, btcutil.Hash160(redeem), []byte(set.PubkeyScript[2:22]),
		)
		_, program, err = PubkeyScript(redeem).WitnessProgram()
		require.NoError(t, err)
		witness = set.Witness.UnsafeFromSome()
		require.Equal(t, chainhash.HashB(witness[0]), []byte(program))
	})
}

// TestCompressedKey checks that raw secp256k1 keys always commit compressed.
func TestCompressedKey(t *testing.T) {
	t.Parallel()

	parsed := mustParseKey(t, testKeyUncompressed)
	key := CompressedKey(parsed.Key)
	require.True(t, key.Compressed)
	require.Equal(t, testKeyCompressed, key.Serialize())

	h, err := key.WPubkeyHash()
	require.NoError(t, err)
	require.Equal(t, testKeyHash, h[:])
	require.Equal(t, WPubkeyHashOf(parsed.Key), h)

	require.False(t, key.Equal(parsed))
	require.True(t, key.Equal(mustParseKey(t, testKeyCompressed)))
}

// TestParsePublicKeyInvalid checks that garbage key bytes are rejected.
func TestParsePublicKeyInvalid(t *testing.T) {
	t.Parallel()

	_, err := ParsePublicKey([]byte{0x02, 0x01})
	require.True(t, IsError(err, ErrInvalidKey))
}

// TestPubkeyScriptLockScript checks that only output scripts that don't
// commit to a hash are their own lock script.
func TestPubkeyScriptLockScript(t *testing.T) {
	t.Parallel()

	key := mustParseKey(t, testKeyCompressed)
	wpkh, err := key.WPubkeyHash()
	require.NoError(t, err)

	multisig, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(testKeyCompressed).
		AddOp(txscript.OP_1).
		AddOp(txscript.OP_CHECKMULTISIG).
		Script()
	require.NoError(t, err)

	nullData, err := txscript.NullDataScript([]byte{0x01, 0x02})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		script PubkeyScript
		ok     bool
	}{
		{"p2pk", P2PK(key), true},
		{"bare multisig", multisig, true},
		{"non-standard", PubkeyScript{txscript.OP_TRUE}, true},
		{"p2pkh", P2PKH(key.PubkeyHash()), false},
		{"p2sh", P2SH(RedeemScript(testP2PKScript).ScriptHash()), false},
		{"p2wpkh", P2WPKH(wpkh), false},
		{"p2wsh", WitnessScript(testP2PKScript).ToP2WSH(), false},
		{"op_return", nullData, false},
	}

	for _, tc := range testCases {
		lock, ok := tc.script.LockScript()
		require.Equal(t, tc.ok, ok, tc.name)
		if !ok {
			require.Nil(t, lock, tc.name)
			continue
		}
		require.Equal(t, []byte(tc.script), []byte(lock), tc.name)

		// The lock script doesn't alias the output script.
		lock[0] ^= 0xff
		require.NotEqual(t, []byte(tc.script), []byte(lock), tc.name)
	}
}
