//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary   = "bin/objgate"
	wireDir  = "./internal/app"
	docsDir  = "cmd/server/docs"
	minioCtr = "objgate-minio"
)

// Local MinIO settings used by Dev and Minio.
var devEnv = map[string]string{
	"OBJGATE_LOG_LEVEL":                 "debug",
	"OBJGATE_LOG_FORMAT":                "text",
	"OBJGATE_STORAGE_DRIVER":            "minio",
	"OBJGATE_STORAGE_ENDPOINT":          "localhost:9000",
	"OBJGATE_STORAGE_USE_SSL":           "false",
	"OBJGATE_STORAGE_CREDENTIALS":       "static",
	"OBJGATE_STORAGE_ACCESS_KEY_ID":     "minioadmin",
	"OBJGATE_STORAGE_SECRET_ACCESS_KEY": "minioadmin",
}

var Default = Build

type Gen mg.Namespace

// Wire regenerates internal/app/wire_gen.go.
func (Gen) Wire() error {
	fmt.Println("wire", wireDir)
	return sh.RunV("wire", "gen", wireDir)
}

// Swagger regenerates the API docs from handler annotations.
func (Gen) Swagger() error {
	fmt.Println("swag", docsDir)
	return sh.RunV("swag", "init",
		"--generalInfo", "docs.go",
		"--dir", "cmd/server,internal/module,internal/shared/errors",
		"--output", docsDir,
		"--outputTypes", "go",
	)
}

// All runs every generator.
func (Gen) All() {
	mg.SerialDeps(Gen.Wire, Gen.Swagger)
}

// Build compiles the server with the git revision stamped in.
func Build() error {
	ldflags := "-s -w"
	if rev, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && rev != "" {
		ldflags += " -X main.revision=" + strings.TrimSpace(rev)
	}
	return sh.RunV("go", "build", "-trimpath", "-ldflags", ldflags, "-o", binary, "./cmd/server")
}

type Test mg.Namespace

// Unit runs the test suite with the race detector.
func (Test) Unit() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Cover writes coverage.out and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV("go", "test", "-race", "-covermode=atomic", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Minio starts a throwaway MinIO container on :9000.
func Minio() error {
	_ = sh.Run("docker", "rm", "-f", minioCtr)
	return sh.RunV("docker", "run", "-d", "--name", minioCtr,
		"-p", "9000:9000", "-p", "9001:9001",
		"-e", "MINIO_ROOT_USER="+devEnv["OBJGATE_STORAGE_ACCESS_KEY_ID"],
		"-e", "MINIO_ROOT_PASSWORD="+devEnv["OBJGATE_STORAGE_SECRET_ACCESS_KEY"],
		"minio/minio", "server", "/data", "--console-address", ":9001",
	)
}

// Dev builds the server and runs it against the local MinIO.
func Dev() error {
	mg.Deps(Build)
	_, err := sh.Exec(devEnv, os.Stdout, os.Stderr, "./"+binary)
	return err
}

// CI runs the checks done on every push.
func CI() {
	mg.SerialDeps(Tidy, Gen.All, Lint, Test.Cover)
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// Clean removes build output. Generated code is committed and kept.
func Clean() error {
	_ = os.Remove("coverage.out")
	return os.RemoveAll("bin")
}

// Tools installs the generators and linter.
func Tools() error {
	for _, tool := range []string{
		"github.com/google/wire/cmd/wire@latest",
		"github.com/swaggo/swag/cmd/swag@latest",
		"github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	} {
		if err := sh.RunV("go", "install", tool); err != nil {
			return fmt.Errorf("install %s: %w", tool, err)
		}
	}
	return nil
}
