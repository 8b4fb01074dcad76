// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License

// Package bridge holds the function exported across the foreign-function
// boundary, independent of how it is exported (cgo or wasm).
package bridge

import (
	"io"
	"os"
	"strings"
)

const (
	// Namespace is the namespace foreign callers resolve the bridge under.
	Namespace = "ffi::lib"
	// FunctionName is the unqualified name of the bridge function.
	FunctionName = "print_simple_log"
	// Greeting is the line written on every call, without its terminator.
	Greeting = "Hello from Rust!"
	// Symbol is the C linkage name of Namespace::FunctionName.
	// Must stay in sync with the //export directive in cmd/libffi_lib.
	Symbol = "ffi_lib_print_simple_log"
)

var line = []byte(Greeting + "\n")

// PrintSimpleLog writes Greeting followed by a newline to standard output.
// Write errors are dropped.
func PrintSimpleLog() {
	_ = Fprint(os.Stdout)
}

// Fprint writes Greeting followed by a newline to w in a single Write call,
// so writers that serialize Write never interleave partial lines.
func Fprint(w io.Writer) error {
	n, err := w.Write(line)
	if err != nil {
		return err
	}
	if n != len(line) {
		return io.ErrShortWrite
	}
	return nil
}

// CSymbol returns the C identifier for name declared in a "::"-separated
// namespace, e.g. CSymbol("ffi::lib", "print_simple_log") is
// "ffi_lib_print_simple_log".
func CSymbol(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return strings.ReplaceAll(namespace, "::", "_") + "_" + name
}
