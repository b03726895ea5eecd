// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command descgen expands a descriptor generator over a window of indices
// and prints, for every index and category, the descriptor, its output
// script and its address.  With --watchdb the scripts are also recorded in a
// wallet database.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcwallet/walletdb"
	_ "github.com/btcsuite/btcwallet/walletdb/bdb"
	"github.com/btcsuite/descwallet/descriptor"
	"github.com/btcsuite/descwallet/internal/cfgutil"
	"github.com/btcsuite/descwallet/netparams"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/btcsuite/descwallet/watchstore"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/fn/v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, activeNet, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			return err
		}
		defer logRotator.Close()
	}
	setLogLevels(cfg.logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var store *watchstore.Store
	if cfg.WatchDB != "" {
		db, err := openWatchDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		store, err = watchstore.Open(db)
		if err != nil {
			return err
		}
	}

	gen, err := resolveGenerator(cfg, store)
	if err != nil {
		return err
	}
	if err := gen.CheckNet(activeNet.Params); err != nil {
		return err
	}
	log.Infof("Deriving %d indices from %d of %v on %s", cfg.Count,
		cfg.From, gen, activeNet.Name)

	derived, err := gen.DescriptorsRange(
		ctx, descriptor.UnhardenedIndex(cfg.From), cfg.Count,
	)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, d := range derived {
		for _, c := range scripts.Categories {
			expanded, ok := d.Descriptors[c]
			if !ok {
				continue
			}
			writeDescriptor(w, activeNet, d.Index, expanded)
		}

		if store == nil {
			continue
		}
		if err := store.Record(gen, d.Index, d.Descriptors); err != nil {
			return err
		}
	}

	return w.Flush()
}

// openWatchDB opens the watch database, creating it if it doesn't exist.
func openWatchDB(cfg *config) (walletdb.DB, error) {
	exists, err := cfgutil.FileExists(cfg.WatchDB)
	if err != nil {
		return nil, err
	}
	if exists {
		return walletdb.Open(
			"bdb", cfg.WatchDB, true, cfg.DBTimeout, false,
		)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.WatchDB), 0700); err != nil {
		return nil, err
	}
	log.Infof("Creating watch database %s", cfg.WatchDB)
	return walletdb.Create("bdb", cfg.WatchDB, true, cfg.DBTimeout, false)
}

// resolveGenerator returns the generator of the command line, or the one
// recorded in the watch store when none was given.
func resolveGenerator(cfg *config,
	store *watchstore.Store) (*descriptor.Generator, error) {

	if cfg.Generator.ExplicitlySet() {
		return descriptor.ParseGenerator(cfg.Generator.Value)
	}

	recorded, err := store.Generator()
	if err != nil {
		return nil, err
	}
	notation, err := recorded.UnwrapOrErr(fmt.Errorf("%s records no "+
		"generator, set one with --generator", cfg.WatchDB))
	if err != nil {
		return nil, err
	}

	log.Debugf("Using generator %s recorded in %s", notation, cfg.WatchDB)
	return descriptor.ParseGenerator(notation)
}

// writeDescriptor prints one line: index, category, descriptor, output
// script and address, "-" for outputs without an address.
func writeDescriptor(w io.Writer, net *netparams.Params,
	idx descriptor.UnhardenedIndex, d descriptor.Expanded) {

	pkScript := d.PubkeyScript()
	addr := fn.MapOption(func(a btcutil.Address) string {
		return a.EncodeAddress()
	})(pkScript.Address(net.Params)).UnwrapOr("-")

	fmt.Fprintf(w, "%v %v %v %s %s\n", idx, d.Category(), d,
		pkScript.Hex(), addr)
}
