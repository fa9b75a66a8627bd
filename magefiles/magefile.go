//go:build mage

// Package main provides build targets for the donations project using Mage.
//
// Usage:
//
//	mage build          Compile the donations binary to bin/
//	mage test           Run all tests
//	mage testRace       Run all tests with the race detector
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install donations to GOPATH/bin
//	mage stats          Print Go LOC per package
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "donations"
	binaryDir  = "bin"
	cmdDir     = "./cmd/donations"
	modulePath = "github.com/mesh-intelligence/donations"
)

// Build compiles the donations binary to bin/. The version is taken from
// the VERSION environment variable when set.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Stats prints production and test lines of Go per package directory.
func Stats() error {
	type counts struct{ prod, test int }
	perDir := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || path == ".git" || path == binaryDir || path == "magefiles" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		if perDir[dir] == nil {
			perDir[dir] = &counts{}
		}
		if strings.HasSuffix(path, "_test.go") {
			perDir[dir].test += n
		} else {
			perDir[dir].prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(perDir))
	for d := range perDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var prod, test int
	for _, d := range dirs {
		c := perDir[d]
		fmt.Printf("%-40s %6d %6d\n", modulePath+"/"+filepath.ToSlash(d), c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-40s %6d %6d\n", "total (production, tests)", prod, test)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
