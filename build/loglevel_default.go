//go:build !nolog

package build

// LogLevel specifies the level of loggers created for stdout only builds.
var LogLevel = "info"
