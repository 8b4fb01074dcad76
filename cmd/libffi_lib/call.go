// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License

package main

// void ffi_lib_print_simple_log(void);
//
// static void call_print_simple_log(int n) {
// 	for (int i = 0; i < n; i++) {
// 		ffi_lib_print_simple_log();
// 	}
// }
import "C"

// CprintSimpleLog calls the exported symbol n times from C, the same way a
// foreign caller linked against the shared object does.
func CprintSimpleLog(n int) {
	C.call_print_simple_log(C.int(n))
}
