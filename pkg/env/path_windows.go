//go:build windows

package env

// PathDelimiter separates entries of PathVar.
const PathDelimiter = ";"
