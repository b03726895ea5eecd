// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package watchstore keeps the output scripts generated for a wallet in a
// walletdb database, so outputs paying to the wallet can be recognised and
// spent with the recorded script set.
package watchstore

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/btcsuite/descwallet/descriptor"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/lightningnetwork/lnd/fn/v2"
)

var (
	// rootBucketKey is the top level bucket of the store.
	rootBucketKey = []byte("watchstore")

	// scriptsBucketKey is the nested bucket mapping output scripts to
	// their entries.
	scriptsBucketKey = []byte("watched-scripts")

	// generatorKey holds the notation of the generator the store was
	// first recorded for.
	generatorKey = []byte("generator")
)

var (
	// ErrScriptNotFound is returned when an output script is not watched.
	ErrScriptNotFound = errors.New("script not found")

	// ErrCorruptRecord is returned when a stored entry can't be decoded.
	ErrCorruptRecord = errors.New("corrupt watch store record")

	// ErrGeneratorMismatch is returned when descriptors of a generator are
	// recorded in a store that belongs to another generator.
	ErrGeneratorMismatch = errors.New("store belongs to another generator")
)

// entryHeaderSize is the size of the category and index that prefix every
// serialized entry.
const entryHeaderSize = 1 + 4

// Entry is a watched output script together with where it was derived from.
type Entry struct {
	// Category is the category of the descriptor.
	Category scripts.Category

	// Index is the derivation index of the descriptor.
	Index descriptor.UnhardenedIndex

	// Scripts is the script set spending the output.
	Scripts *scripts.ScriptSet
}

// Store is a walletdb backed index of generated output scripts.
type Store struct {
	db walletdb.DB
}

// Open creates the buckets of the store if needed and returns it.
func Open(db walletdb.DB) (*Store, error) {
	err := walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		root, err := tx.CreateTopLevelBucket(rootBucketKey)
		if err != nil {
			return err
		}
		_, err = root.CreateBucketIfNotExists(scriptsBucketKey)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create watch store: %w", err)
	}

	return &Store{db: db}, nil
}

// Generator returns the notation of the generator the store was recorded
// for, or None for an empty store.
func (s *Store) Generator() (fn.Option[string], error) {
	notation := fn.None[string]()
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		v := tx.ReadBucket(rootBucketKey).Get(generatorKey)
		if v != nil {
			notation = fn.Some(string(v))
		}
		return nil
	})
	return notation, err
}

// Record stores one entry per descriptor derived by the generator at the
// index.  All entries are written in a single transaction.
func (s *Store) Record(gen *descriptor.Generator, idx descriptor.UnhardenedIndex,
	descriptors map[scripts.Category]descriptor.Expanded) error {

	type record struct {
		key, value []byte
	}

	// Script sets are built before the transaction is opened.
	records := make([]record, 0, len(descriptors))
	for c, d := range descriptors {
		set, err := d.Scripts()
		if err != nil {
			return err
		}
		value, err := serializeEntry(&Entry{
			Category: c,
			Index:    idx,
			Scripts:  set,
		})
		if err != nil {
			return err
		}
		records = append(records, record{
			key:   d.PubkeyScript(),
			value: value,
		})
	}

	notation := []byte(gen.String())
	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		root := tx.ReadWriteBucket(rootBucketKey)

		stored := root.Get(generatorKey)
		switch {
		case stored == nil:
			err := root.Put(generatorKey, notation)
			if err != nil {
				return err
			}

		case string(stored) != string(notation):
			return fmt.Errorf("%w: %s", ErrGeneratorMismatch, stored)
		}

		bucket := root.NestedReadWriteBucket(scriptsBucketKey)
		for _, r := range records {
			if err := bucket.Put(r.key, r.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debugf("Recorded %d scripts of %v at index %v", len(records),
		gen, idx)

	return nil
}

// Lookup returns the entry of the output script.
func (s *Store) Lookup(pkScript scripts.PubkeyScript) (*Entry, error) {
	var entry *Entry
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		bucket := tx.ReadBucket(rootBucketKey).
			NestedReadBucket(scriptsBucketKey)

		v := bucket.Get(pkScript)
		if v == nil {
			return fmt.Errorf("%w: %v", ErrScriptNotFound,
				pkScript.Hex())
		}

		var err error
		entry, err = deserializeEntry(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ForEach calls f for every watched output script.  Iteration stops at the
// first error, which is returned.
func (s *Store) ForEach(f func(scripts.PubkeyScript, *Entry) error) error {
	return walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		bucket := tx.ReadBucket(rootBucketKey).
			NestedReadBucket(scriptsBucketKey)

		return bucket.ForEach(func(k, v []byte) error {
			entry, err := deserializeEntry(v)
			if err != nil {
				return err
			}
			pkScript := append(scripts.PubkeyScript(nil), k...)
			return f(pkScript, entry)
		})
	})
}

// serializeEntry returns category || index || TLV(scripts), with the index
// in little endian.
func serializeEntry(e *Entry) ([]byte, error) {
	set, err := scripts.EncodeScriptSet(e.Scripts)
	if err != nil {
		return nil, err
	}

	v := make([]byte, entryHeaderSize, entryHeaderSize+len(set))
	v[0] = byte(e.Category)
	binary.LittleEndian.PutUint32(v[1:entryHeaderSize], e.Index.Uint32())
	return append(v, set...), nil
}

func deserializeEntry(v []byte) (*Entry, error) {
	if len(v) < entryHeaderSize {
		return nil, fmt.Errorf("%w: %d byte entry", ErrCorruptRecord,
			len(v))
	}

	c := scripts.Category(v[0])
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: category %d", ErrCorruptRecord,
			v[0])
	}
	idx, err := descriptor.NewUnhardenedIndex(
		binary.LittleEndian.Uint32(v[1:entryHeaderSize]),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	set, err := scripts.DecodeScriptSet(v[entryHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	return &Entry{Category: c, Index: idx, Scripts: set}, nil
}
