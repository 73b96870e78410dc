package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	mcphandler "github.com/gomcpgo/mcp/pkg/handler"
	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/mcp/pkg/server"
	"github.com/gomcpgo/stability_image_ai/pkg/config"
	"github.com/gomcpgo/stability_image_ai/pkg/editing"
	"github.com/gomcpgo/stability_image_ai/pkg/generation"
	"github.com/gomcpgo/stability_image_ai/pkg/handler"
)

// Version information (set by build script)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

const defaultTestPrompt = "A lighthouse on a rocky coast at sunset, dramatic clouds"

func listAvailableModels() {
	fmt.Println("Available generation models:")
	fmt.Println()
	for _, id := range []string{
		generation.ModelUltra,
		generation.ModelCore,
		generation.ModelSD35Large,
		generation.ModelSD35LargeTurbo,
		generation.ModelSD35Medium,
	} {
		info := generation.GetModelInfo(id)
		marker := " "
		if id == generation.DefaultModel {
			marker = "*"
		}
		fmt.Printf("%s %-20s %s\n", marker, id, info.Description)
	}
	fmt.Println()
	fmt.Println("* = default model")

	fmt.Println()
	fmt.Println("Edit operations:")
	fmt.Println()
	for _, op := range []string{
		editing.OpErase,
		editing.OpInpaint,
		editing.OpOutpaint,
		editing.OpSearchAndReplace,
		editing.OpSearchAndRecolor,
		editing.OpRemoveBackground,
		editing.OpReplaceBackground,
	} {
		info := editing.GetOperationInfo(op)
		fmt.Printf("  %-32s %s\n", op, info.Description)
	}
}

func newHandler() *handler.StabilityImageHandler {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	h, err := handler.NewStabilityImageHandler(cfg)
	if err != nil {
		log.Fatalf("Failed to create handler: %v", err)
	}
	return h
}

// testGenerate runs one generation through the real API from the
// command line, bypassing the MCP transport.
func testGenerate(h *handler.StabilityImageHandler, model, prompt string) error {
	fmt.Printf("Generating with %s: %q\n", model, prompt)

	resp, err := h.CallTool(context.Background(), &protocol.CallToolRequest{
		Name: "generate_image",
		Arguments: map[string]interface{}{
			"prompt": prompt,
			"model":  model,
		},
	})
	if err != nil {
		return err
	}

	for _, c := range resp.Content {
		fmt.Println(c.Text)
	}
	return nil
}

func main() {
	var (
		generateModel string
		listModels    bool
		balanceFlag   bool
		prompt        string
		versionFlag   bool
	)

	flag.StringVar(&generateModel, "g", "", "Generate a test image using the given model (e.g., -g core)")
	flag.BoolVar(&listModels, "list", false, "List all available generation models")
	flag.BoolVar(&balanceFlag, "balance", false, "Show the remaining account credits")
	flag.StringVar(&prompt, "p", defaultTestPrompt, "Custom prompt for test generation")
	flag.BoolVar(&versionFlag, "version", false, "Show version information")
	flag.Parse()

	if versionFlag {
		fmt.Printf("Stability Image AI MCP Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		return
	}

	if listModels {
		listAvailableModels()
		return
	}

	if balanceFlag {
		h := newHandler()
		resp, err := h.CallTool(context.Background(), &protocol.CallToolRequest{
			Name:      "get_balance",
			Arguments: map[string]interface{}{},
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, c := range resp.Content {
			fmt.Println(c.Text)
		}
		return
	}

	if generateModel != "" {
		h := newHandler()
		if err := testGenerate(h, generateModel, prompt); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No testing flags: run as an MCP server over stdio.
	h := newHandler()

	registry := mcphandler.NewHandlerRegistry()
	registry.RegisterToolHandler(h)

	mcpServer := server.New(server.Options{
		Name:     "Stability Image AI",
		Version:  Version,
		Registry: registry,
	})

	if err := mcpServer.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
