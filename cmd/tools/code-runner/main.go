package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/config"
	"github.com/michaelbrown/codeproxy/internal/judge0"
	"github.com/michaelbrown/codeproxy/internal/languages"
)

const maxOutput = 4000

type runner struct {
	catalog  *languages.Catalog
	compiler *compile.Service
	// errLog receives failure causes; stdout carries the protocol.
	errLog io.Writer
}

func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	catalog, err := languages.Load(cfg.Languages.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading languages: %v\n", err)
		os.Exit(1)
	}

	r := &runner{
		catalog:  catalog,
		compiler: compile.NewService(judge0.NewClient(cfg.Judge0Client()), cfg.Judge0.APIKey),
		errLog:   os.Stderr,
	}

	s := server.NewMCPServer("codeproxy-code-runner", "0.1.0")
	s.AddTool(r.tool(), r.handleCodeRun)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}
}

func (r *runner) tool() mcp.Tool {
	return mcp.Tool{
		Name:        "code_run",
		Description: fmt.Sprintf("Execute code on Judge0. Supported languages: %s.", strings.Join(r.catalog.Names(), ", ")),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"language": map[string]any{
					"type":        "string",
					"description": "Programming language name, alias or Judge0 id",
				},
				"code": map[string]any{
					"type":        "string",
					"description": "Source code to execute",
				},
				"stdin": map[string]any{
					"type":        "string",
					"description": "Standard input to provide to the program (optional)",
				},
			},
			Required: []string{"language", "code"},
		},
	}
}

func (r *runner) handleCodeRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	if args == nil {
		return errResult("error: invalid arguments"), nil
	}

	language, _ := args["language"].(string)
	code, _ := args["code"].(string)
	stdin, _ := args["stdin"].(string)

	if language == "" || code == "" {
		return errResult("error: 'language' and 'code' are required"), nil
	}

	langID, err := r.catalog.Resolve(language)
	if err != nil {
		return errResult(fmt.Sprintf("error: %v", err)), nil
	}

	res, err := r.compiler.Compile(ctx, compile.Request{
		LanguageID: langID,
		SourceCode: code,
		Stdin:      stdin,
	})
	if err != nil {
		fmt.Fprintf(r.errLog, "code_run: %v\n", err)
		return errResult(compile.OutputOf(err)), nil
	}

	text := res.Output
	if res.Status.Description != "" {
		text += fmt.Sprintf("\nstatus: %s", res.Status.Description)
	}
	if len(text) > maxOutput {
		text = text[:maxOutput] + "\n... (output truncated)"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
		// Judge0 status 3 is Accepted; anything else is a compile or runtime failure.
		IsError: res.Status.ID != 0 && res.Status.ID != 3,
	}, nil
}

func errResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
		IsError: true,
	}
}
