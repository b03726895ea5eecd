// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package build

import (
	"io"
	"os"

	"github.com/btcsuite/btclog"
)

// LogType is an indicating the type of logging specified by the build flag.
type LogType byte

const (
	// LogTypeNone indicates no logging.
	LogTypeNone LogType = iota

	// LogTypeStdOut all logging is written directly to stdout.
	LogTypeStdOut

	// LogTypeDefault logs to both stdout and a given io.PipeWriter.
	LogTypeDefault
)

// String returns a human readable identifier for the logging type.
func (t LogType) String() string {
	switch t {
	case LogTypeNone:
		return "none"
	case LogTypeStdOut:
		return "stdout"
	case LogTypeDefault:
		return "default"
	default:
		return "unknown"
	}
}

// LogWriter is the writer of the log backend.  The "stdlog" and "nolog"
// build flags select where it writes; by default it writes to stdout and,
// once set, to RotatorPipe.
type LogWriter struct {
	// RotatorPipe is the write end of the pipe read by the log file
	// rotator.  It is nil until a log file is configured.
	RotatorPipe *io.PipeWriter
}

// NewSubLogger returns the logger of a subsystem.  Production builds and
// default logging use genSubLogger, which usually is the Logger method of
// the shared backend.  Development builds logging to stdout get a logger of
// their own at LogLevel.  A nil genSubLogger disables the subsystem.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	switch {
	case Deployment == Production, LoggingType == LogTypeDefault:
		if genSubLogger != nil {
			return genSubLogger(subsystem)
		}

	case LoggingType == LogTypeStdOut:
		logger := btclog.NewBackend(os.Stdout).Logger(subsystem)

		level, _ := btclog.LevelFromString(LogLevel)
		logger.SetLevel(level)

		return logger
	}

	return btclog.Disabled
}
