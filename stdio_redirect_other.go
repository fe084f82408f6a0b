//go:build !unix

package main

import "os"

// redirectStdIO only swaps the os.Stdout/os.Stderr variables here; runtime
// panic output still goes to the original stderr.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
