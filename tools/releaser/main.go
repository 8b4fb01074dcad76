// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License

// releaser is a tool for managing part of the process to release a new version of ffi_bridge.
package main

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strings"

	bzl "github.com/bazelbuild/buildtools/build"
	"github.com/charmbracelet/log"
)

var (
	// Paths to be included to the release
	_paths = []string{
		"LICENSE",
		"README.md",
		"MODULE.bazel",
		"BUILD.bazel",
		"go.mod",
		"bridge/*",
		"cmd/libffi_lib/*",
		"include/ffi/*",
		"wasmbridge/*",
	}

	// regexp for valid tags
	_tagRegexp = regexp.MustCompile(`^v([0-9]+)\.([0-9]+)(\.([0-9]+))(-rc([0-9]+))?$`)

	errTag             = errors.New("tag accepts the following formats: v1.0.0 v1.0.1-rc1")
	errVersionMismatch = errors.New("tag does not match MODULE.bazel version")

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "releaser",
	})
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run() (_err error) {
	var (
		repoRoot string
		tag      string
	)

	flag.StringVar(&repoRoot, "repo_root", os.Getenv("BUILD_WORKSPACE_DIRECTORY"), "root directory of ffi_bridge repo")
	flag.StringVar(&tag, "tag", "", "tag for this release")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `usage: bazel run //tools/releaser -- -tag <tag>

This utility is intended to handle many of the steps to release a new version.

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if tag == "" {
		return fmt.Errorf("tag is required")
	}

	if !_tagRegexp.MatchString(tag) {
		return errTag
	}

	version, err := parseModuleVersion(path.Join(repoRoot, "MODULE.bazel"))
	if err != nil {
		return err
	}
	if err := checkVersion(tag, version); err != nil {
		return err
	}

	// commands that Must Not Fail
	cmds := [][]string{
		{"git", "diff", "--stat", "--exit-code"},
		{"git", "tag", tag},
	}

	logger.Info("Cutting a release", "tag", tag, "version", version)

	for _, c := range cmds {
		cmd := exec.Command(c[0], c[1:]...)
		cmd.Dir = repoRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf(
				"run %s: %w\n%s",
				strings.Join(c, " "),
				err,
				out,
			)
		}
	}

	fpath := path.Join(repoRoot, fmt.Sprintf("ffi_bridge-%s.tar.gz", tag))
	tgz, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer func() {
		if _err != nil {
			os.Remove(fpath)
		}
	}()
	hashw := sha256.New()

	gzw, err := gzip.NewWriterLevel(io.MultiWriter(tgz, hashw), gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("create gzip writer: %w", err)
	}

	logger.Info("Creating archive", "path", fpath)

	var stderr bytes.Buffer
	cmd := exec.Command(
		"git",
		append([]string{
			"archive",
			"--format=tar",
			tag,
		}, _paths...)...,
	)
	cmd.Dir = repoRoot
	cmd.Stdout = gzw
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("create git archive: %w\n%s", err, stderr.Bytes())
	}

	if err := gzw.Close(); err != nil {
		return fmt.Errorf("close gzip stream: %w", err)
	}

	if err := tgz.Close(); err != nil {
		return err
	}

	sum := hashw.Sum(nil)
	logger.Info("Wrote archive", "path", fpath, "sha256", fmt.Sprintf("%x", sum))
	fmt.Fprintln(flag.CommandLine.Output(), "Release:\n-----\n"+genBoilerplate(tag, version, sum))

	return nil
}

// parseModuleVersion returns the version attribute of the module() call in
// the MODULE.bazel file at fpath.
func parseModuleVersion(fpath string) (string, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return "", err
	}

	f, err := bzl.ParseModule(fpath, data)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", fpath, err)
	}

	rules := f.Rules("module")
	switch len(rules) {
	case 0:
		return "", fmt.Errorf("%s: module() call not found", fpath)
	case 1:
	default:
		return "", fmt.Errorf("%s: found %d module() calls, expected 1", fpath, len(rules))
	}

	attr := rules[0].Attr("version")
	if attr == nil {
		return "", fmt.Errorf("%s: module() has no version", fpath)
	}
	str, ok := attr.(*bzl.StringExpr)
	if !ok {
		return "", fmt.Errorf("%s: module(version = ...) got a non-string expression", fpath)
	}
	return str.Value, nil
}

// checkVersion verifies that tag, minus its "v" prefix and any "-rcN"
// suffix, names version.
func checkVersion(tag, version string) error {
	want, _, _ := strings.Cut(strings.TrimPrefix(tag, "v"), "-rc")
	if want != version {
		return fmt.Errorf("%w: tag %s, version %q", errVersionMismatch, tag, version)
	}
	return nil
}

func genBoilerplate(tag, version string, sum []byte) string {
	return fmt.Sprintf(`bazel_dep(name = "ffi_bridge", version = "%[2]s")

archive_override(
    module_name = "ffi_bridge",
    integrity = "sha256-%[3]s",
    urls = [
        "https://github.com/uber/ffi_bridge/releases/download/%[1]s/ffi_bridge-%[1]s.tar.gz",
    ],
)`, tag, version, base64.StdEncoding.EncodeToString(sum))
}
