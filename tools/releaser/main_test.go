// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License
package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegex(t *testing.T) {
	tests := []struct {
		tag  string
		good bool
	}{
		{good: true, tag: "v1.0.0"},
		{good: true, tag: "v99.99.99"},
		{good: true, tag: "v1.0.1-rc1"},
		{good: true, tag: "v1.0.99-rc99"},
		{good: false, tag: ""},
		{good: false, tag: "v1.0"},
		{good: false, tag: "1.0.0"},
		{good: false, tag: "1.0.99-rc99"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("tag=%s good=%t", tt.tag, tt.good), func(t *testing.T) {
			matched := _tagRegexp.MatchString(tt.tag)

			if tt.good && !matched {
				t.Errorf("expected %s to be a valid tag, but it was not", tt.tag)
			} else if !tt.good && matched {
				t.Errorf("expected %s to be an invalid tag, but it was", tt.tag)
			}
		})
	}
}

func TestParseModuleVersion(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
		wantErr  string
	}{
		{
			name: "ok",
			contents: `module(name = "ffi_bridge", version = "1.2.3")
bazel_dep(name = "rules_go", version = "0.60.0")`,
			want: "1.2.3",
		},
		{
			name:     "non-string version",
			contents: `module(name = "ffi_bridge", version = VERSION)`,
			wantErr:  "got a non-string expression",
		},
		{
			name:     "no version",
			contents: `module(name = "ffi_bridge")`,
			wantErr:  "module() has no version",
		},
		{
			name:     "missing module",
			contents: `bazel_dep(name = "rules_go", version = "0.60.0")`,
			wantErr:  "module() call not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			fname := path.Join(dir, "MODULE.bazel")
			require.NoError(t, os.WriteFile(fname, []byte(tt.contents), 0644))

			got, err := parseModuleVersion(fname)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		tag     string
		version string
		ok      bool
	}{
		{tag: "v1.0.0", version: "1.0.0", ok: true},
		{tag: "v1.0.1-rc2", version: "1.0.1", ok: true},
		{tag: "v1.0.1", version: "1.0.0", ok: false},
		{tag: "v2.0.0-rc1", version: "2.0.0-rc1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.version, func(t *testing.T) {
			err := checkVersion(tt.tag, tt.version)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errVersionMismatch)
			}
		})
	}
}

func TestGenBoilerplate(t *testing.T) {
	sum := sha256.Sum256([]byte("ffi_bridge"))
	got := genBoilerplate("v1.0.0-rc1", "1.0.0", sum[:])

	assert.Contains(t, got, `bazel_dep(name = "ffi_bridge", version = "1.0.0")`)
	assert.Contains(t, got, "/releases/download/v1.0.0-rc1/ffi_bridge-v1.0.0-rc1.tar.gz")
	assert.Regexp(t, `integrity = "sha256-[A-Za-z0-9+/]{43}="`, got)
}
