//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
)

// Write runs one writing session with the local template generator.
func Write() error {
	return runCLI("write", "--local")
}

// Archive zips the writing directories into a timestamped backup.
func Archive() error {
	return runCLI("archive")
}

// Reindex rebuilds the draft search index from the saves directory.
func Reindex() error {
	return runCLI("index", "build")
}

// runCLI executes the CLI through go run so targets work without a built binary.
func runCLI(args ...string) error {
	cmdArgs := append([]string{"run", cmdPkg}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go run %s: %w", cmdPkg, err)
	}
	return nil
}
