//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package main

import (
	"os"
)

// isTerminal always prompts where terminal modes cannot be queried.
func isTerminal(file *os.File) bool {
	return true
}
