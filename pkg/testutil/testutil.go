// Package testutil provides testing utilities for Vireo
package testutil

import (
	"bufio"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// Reader wraps a string in the buffered reader the text deserialization
// contract expects.
func Reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
