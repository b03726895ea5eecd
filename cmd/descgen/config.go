// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog"
	"github.com/btcsuite/descwallet/descriptor"
	"github.com/btcsuite/descwallet/internal/cfgutil"
	"github.com/btcsuite/descwallet/netparams"
	"github.com/jessevdk/go-flags"
)

const (
	defaultLogFilename = "descgen.log"
	defaultDebugLevel  = "warn"
	defaultCount       = 20
	defaultDBTimeout   = time.Minute
)

var defaultLogDir = filepath.Join(btcutil.AppDataDir("descgen", false), "logs")

// config holds the command line options.
type config struct {
	TestNet3 bool `long:"testnet" description:"Use the test bitcoin network (version 3)"`
	SigNet   bool `long:"signet" description:"Use the signet test network"`
	SimNet   bool `long:"simnet" description:"Use the simulation bitcoin network"`
	RegTest  bool `long:"regtest" description:"Use the regression test network"`

	Generator *cfgutil.ExplicitString `short:"g" long:"generator" description:"Generator notation, for example BHS<pk(xpub.../0/*)>; defaults to the generator recorded in --watchdb"`
	From      uint32                  `long:"from" description:"First index to derive"`
	Count     uint32                  `short:"n" long:"count" description:"Number of indices to derive"`

	WatchDB   string        `long:"watchdb" description:"Record the derived scripts in this wallet database, created if missing"`
	DBTimeout time.Duration `long:"dbtimeout" description:"Timeout for obtaining the watch database lock"`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	LogDir     string `long:"logdir" description:"Directory to write the log file to; empty to log to stdout only"`

	// Set by loadConfig.
	logLevel btclog.Level
}

// loadConfig parses and validates the command line and returns the config
// with the active network.
func loadConfig(args []string) (*config, *netparams.Params, error) {
	cfg := config{
		Generator:  cfgutil.NewExplicitString(""),
		Count:      defaultCount,
		DBTimeout:  defaultDBTimeout,
		DebugLevel: defaultDebugLevel,
		LogDir:     defaultLogDir,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, nil, err
	}

	activeNet, err := netparams.Select(
		cfg.TestNet3, cfg.SigNet, cfg.SimNet, cfg.RegTest,
	)
	if err != nil {
		return nil, nil, err
	}

	level, ok := btclog.LevelFromString(cfg.DebugLevel)
	if !ok {
		return nil, nil, fmt.Errorf("invalid debug level %q",
			cfg.DebugLevel)
	}
	cfg.logLevel = level

	if !cfg.Generator.ExplicitlySet() && cfg.WatchDB == "" {
		return nil, nil, errors.New("a generator is required unless " +
			"--watchdb names a database that records one")
	}

	if cfg.Count == 0 {
		return nil, nil, errors.New("count must be positive")
	}
	if _, err := descriptor.NewUnhardenedIndex(cfg.From); err != nil {
		return nil, nil, err
	}
	if cfg.DBTimeout <= 0 {
		return nil, nil, errors.New("dbtimeout must be positive")
	}

	if cfg.WatchDB != "" {
		cfg.WatchDB = cleanAndExpandPath(cfg.WatchDB)
	}
	if cfg.LogDir != "" {
		cfg.LogDir = filepath.Join(
			cleanAndExpandPath(cfg.LogDir), activeNet.DataDirName,
		)
	}

	return &cfg, activeNet, nil
}

// cleanAndExpandPath expands environment variables and a leading ~ in the
// path and cleans the result.
func cleanAndExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}
