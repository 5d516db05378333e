//go:build wasip1

// Command goarith-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "expression": "<arithmetic>" }
//	stdout: { "result": <number> }                   on success
//	        { "diagnostics": ["<message>", ...] }    on malformed input (exit code 1)
//	        { "error": "<message>" }                 on protocol failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o goarith.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"expression":"(1 + 2) * 3"}' | wasmtime goarith.wasm
//
// From Go, see github.com/sandrolain/goarith/pkg/wasihost.
package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/sandrolain/goarith"
	"github.com/sandrolain/goarith/pkg/protocol"
	"github.com/sandrolain/goarith/pkg/types"
)

func writeResponse(r protocol.Response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req protocol.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(protocol.Response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	result, err := goarith.Eval(req.Expression)
	if err != nil {
		var de *types.DiagnosticsError
		if errors.As(err, &de) {
			writeResponse(protocol.Response{Diagnostics: de.Diagnostics.Messages()}, 1)
		}
		writeResponse(protocol.Response{Error: err.Error()}, 1)
	}

	n := protocol.Number(result)
	writeResponse(protocol.Response{Result: &n}, 0)
}
