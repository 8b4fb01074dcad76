// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License
//
// Package main is built with -buildmode=c-shared and exports the bridge
// function to C callers as ffi_lib_print_simple_log. The C and C++
// declarations live in include/ffi/lib.h.
package main

import "C"

import "github.com/uber/ffi_bridge/bridge"

//export ffi_lib_print_simple_log
func ffi_lib_print_simple_log() {
	bridge.PrintSimpleLog()
}

// main is required by c-shared, never called.
func main() {}
