//go:build js && wasm

package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"lambda/internal/context"
	"lambda/internal/frontend/ast"
	"lambda/internal/frontend/lexer"
)

const virtualFilePath = "main.lc"

// parseCode runs the front end over code and renders the listings followed
// by the diagnostics
func parseCode(code string, showTokens bool) (string, bool) {
	ctx := context.New(&context.CompilerOptions{})

	// WASM WORKAROUND: add the code as a virtual file instead of reading it
	// from the file system
	file := ctx.AddFile(virtualFilePath, code)
	if err := context.NewPipeline(ctx).ProcessFile(file); err != nil {
		return err.Error(), false
	}

	var sb strings.Builder
	if showTokens {
		for _, line := range file.Lines {
			fmt.Fprintf(&sb, "%d tokens: %s\n", line.Number, lexer.FormatTokens(line.Tokens))
		}
	}
	fmt.Fprintf(&sb, "AST: %s\n", ast.FormatAll(file.Nodes()))

	ctx.EmitDiagnostics(&sb, false)
	return sb.String(), !file.Failed()
}

// lambdaParseJS is the JavaScript-callable function
func lambdaParseJS(this js.Value, args []js.Value) interface{} {
	defer func() {
		if r := recover(); r != nil {
			js.Global().Get("console").Call("error", "panic in lambdaParse:", fmt.Sprint(r))
		}
	}()

	if len(args) < 1 {
		return map[string]interface{}{
			"success": false,
			"error":   "Expected at least 1 argument (code string)",
		}
	}

	showTokens := false
	if len(args) > 1 {
		showTokens = args[1].Bool()
	}

	output, ok := parseCode(args[0].String(), showTokens)
	if !ok {
		return map[string]interface{}{
			"success": false,
			"error":   output,
		}
	}
	return map[string]interface{}{
		"success": true,
		"output":  output,
	}
}

func main() {
	c := make(chan struct{})

	js.Global().Set("lambdaParse", js.FuncOf(lambdaParseJS))
	js.Global().Set("lambdaWasmVersion", Version)

	fmt.Println("lambda WASM parser ready")

	<-c
}
