// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/descwallet/build"
	"github.com/btcsuite/descwallet/descriptor"
	"github.com/btcsuite/descwallet/scripts"
	"github.com/btcsuite/descwallet/watchstore"
	"github.com/jrick/logrotate/rotator"
)

const (
	// maxLogFileSize is the size in KB at which the log file is rolled.
	maxLogFileSize = 10 * 1024

	// maxLogRolls is the number of rolled log files kept.
	maxLogRolls = 3
)

// Loggers per subsystem.  All of them write to backendLog, which writes to
// stdout and, once initLogRotator is called, to the log file.
var (
	logWriter = &build.LogWriter{}

	backendLog = btclog.NewBackend(logWriter)

	// logRotator is closed on shutdown when a log file is used.
	logRotator *rotator.Rotator

	log     = build.NewSubLogger("DGEN", backendLog.Logger)
	scrpLog = build.NewSubLogger("SCRP", backendLog.Logger)
	descLog = build.NewSubLogger("DESC", backendLog.Logger)
	wstrLog = build.NewSubLogger("WSTR", backendLog.Logger)
)

func init() {
	scripts.UseLogger(scrpLog)
	descriptor.UseLogger(descLog)
	watchstore.UseLogger(wstrLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"DGEN": log,
	"SCRP": scrpLog,
	"DESC": descLog,
	"WSTR": wstrLog,
}

// initLogRotator writes the log to logFile as well, rolling it over in the
// same directory.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	r, err := rotator.New(logFile, maxLogFileSize, false, maxLogRolls)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		if err := r.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr, "failed to run file rotator: %v\n",
				err)
		}
	}()

	logWriter.RotatorPipe = pw
	logRotator = r
	return nil
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(level btclog.Level) {
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
