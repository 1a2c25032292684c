//go:build stave

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the cogs-eval and cogs-lf binaries.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_Eval, Build_LF)
	return nil
}

// Build_Eval compiles the cogs-eval binary with version information.
func Build_Eval() error {
	st.Deps(Init)
	return buildBinary("cogs-eval")
}

// Build_LF compiles the cogs-lf binary with version information.
func Build_LF() error {
	st.Deps(Init)
	return buildBinary("cogs-lf")
}

func buildBinary(name string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"cogs-eval",
		"cogs-lf",
		"report.json",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install installs cogs-eval and cogs-lf into GOBIN with version
// information.
func Install() error {
	st.Deps(Init)
	return sh.RunV("go", "install", "-ldflags", buildLdflags(), "./cmd/cogs-eval", "./cmd/cogs-lf")
}

// Eval namespace for evaluation runs on local data.
type Eval st.Namespace

// Run evaluates COGS_SYSTEM against COGS_GOLD (default data/test.tsv),
// printing per-sentence scores.
func (Eval) Run() error {
	st.Deps(Build_Eval)

	system := os.Getenv("COGS_SYSTEM")
	if system == "" {
		return fmt.Errorf("COGS_SYSTEM must name a system output file")
	}
	return sh.RunV("./bin/cogs-eval",
		"--gold", envOr("COGS_GOLD", "data/test.tsv"),
		"--system", system,
		"--verbose",
	)
}

// Gen evaluates COGS_SYSTEM against the generalization split
// (COGS_GEN, default data/gen.tsv) and writes report.json.
func (Eval) Gen() error {
	st.Deps(Build_Eval)

	system := os.Getenv("COGS_SYSTEM")
	if system == "" {
		return fmt.Errorf("COGS_SYSTEM must name a system output file")
	}
	return sh.RunV("./bin/cogs-eval",
		"--gold", envOr("COGS_GEN", "data/gen.tsv"),
		"--system", system,
		"--report", "report.json",
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}
