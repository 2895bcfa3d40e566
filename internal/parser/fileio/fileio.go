// Package fileio opens source files for a single sequential pass.
package fileio

import (
	"fmt"
	"os"
)

// Open opens path read-only and hints the kernel that it will be read once,
// front to back.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	adviseSequential(f)
	return f, nil
}
