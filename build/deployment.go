// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package build

// DeploymentType selects the logging setup compiled into the binary.
type DeploymentType byte

const (
	// Development builds honor the LoggingType build flag, so tests can
	// log straight to stdout.
	Development DeploymentType = iota

	// Production builds always log through the backend of the caller.
	Production
)

// String returns a human readable name for a deployment type.
func (d DeploymentType) String() string {
	switch d {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
