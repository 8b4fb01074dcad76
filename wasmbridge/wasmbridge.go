// Copyright 2023 Uber Technologies, Inc.
// Licensed under the MIT License

// Package wasmbridge exports the bridge function to WebAssembly guests as
// the host import ("ffi::lib", "print_simple_log") with signature () -> ().
package wasmbridge

import (
	"context"
	"io"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/uber/ffi_bridge/bridge"
)

type options struct {
	w io.Writer
}

// Option configures Instantiate.
type Option func(*options)

// WithWriter sends the greeting to w instead of os.Stdout. A nil w keeps
// os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.w = w
		}
	}
}

// Instantiate defines the bridge host module in r. Guests importing
// bridge.FunctionName from module bridge.Namespace must be instantiated
// afterwards. It fails if r already has a module named bridge.Namespace.
func Instantiate(ctx context.Context, r wazero.Runtime, opts ...Option) (api.Module, error) {
	o := options{w: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	w := o.w

	return r.NewHostModuleBuilder(bridge.Namespace).
		NewFunctionBuilder().
		WithFunc(func(context.Context) {
			// Write errors are dropped, same as bridge.PrintSimpleLog.
			_ = bridge.Fprint(w)
		}).
		WithName(bridge.FunctionName).
		Export(bridge.FunctionName).
		Instantiate(ctx)
}
