// Package wasihost evaluates expressions through the WASI build of goarith
// (cmd/wasm/wasi) running inside a wazero sandbox.
//
// The module is compiled once by New. Every Eval instantiates a fresh,
// anonymous instance with its own stdin and stdout, so calls share no state
// and may run concurrently.
//
// # Example
//
//	wasm, _ := os.ReadFile("goarith.wasm")
//	host, err := wasihost.New(ctx, wasm)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Close(ctx)
//	resp, err := host.Eval(ctx, "(1 + 2) * 3")
package wasihost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/goarith/pkg/protocol"
)

// Host runs a compiled goarith WASI module.
type Host struct {
	runtime wazero.Runtime
	module  wazero.CompiledModule
	logger  *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger that receives the module's stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New compiles wasm and prepares a runtime with WASI imports.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Host, error) {
	h := &Host{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	r := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	mod, err := r.CompileModule(ctx, wasm)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	h.runtime = r
	h.module = mod
	return h, nil
}

// Eval sends expression to a fresh module instance and decodes its reply.
// Malformed expressions are reported in Response.Diagnostics, not as an error.
func (h *Host) Eval(ctx context.Context, expression string) (protocol.Response, error) {
	req, err := json.Marshal(protocol.Request{Expression: expression})
	if err != nil {
		return protocol.Response{}, err
	}

	var stdout, stderr bytes.Buffer
	config := wazero.NewModuleConfig().
		WithName("").
		WithArgs("goarith").
		WithStdin(bytes.NewReader(req)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := h.runtime.InstantiateModule(ctx, h.module, config)
	if mod != nil {
		defer mod.Close(ctx)
	}

	if stderr.Len() > 0 {
		h.logger.Debug("wasi module stderr", "output", stderr.String())
	}

	var exitErr *sys.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return protocol.Response{}, fmt.Errorf("failed to run module: %w", err)
	}

	var resp protocol.Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		code := uint32(0)
		if exitErr != nil {
			code = exitErr.ExitCode()
		}
		return protocol.Response{}, fmt.Errorf("invalid module response (exit code %d): %w", code, err)
	}
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

// Close releases the runtime and every module compiled in it.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
