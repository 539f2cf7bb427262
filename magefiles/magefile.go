//go:build mage

// Package main contains Mage build targets for outparse.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "outparse"
	cmdPkg     = "./cmd/outparse"
	manPkg     = "./cmd/outparse-manpage"
	versionPkg = "github.com/arthur-debert/outparse/internal/version"
)

// ldflags stamps version information from git into the binary
func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	date, err := sh.Output("date", "-u", "+%Y-%m-%dT%H:%M:%SZ")
	if err != nil {
		date = "unknown"
	}
	return strings.Join([]string{
		"-X " + versionPkg + ".Version=" + version,
		"-X " + versionPkg + ".Commit=" + commit,
		"-X " + versionPkg + ".Date=" + date,
	}, " ")
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Man writes the man page to bin/outparse.1.
func Man() error {
	page, err := sh.Output("go", "run", manPkg)
	if err != nil {
		return fmt.Errorf("generating man page: %w", err)
	}
	out := filepath.Join(binDir, binName+".1")
	if err := os.WriteFile(out, []byte(page+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// Check runs lint and tests.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
