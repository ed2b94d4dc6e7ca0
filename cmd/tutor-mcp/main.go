// tutor-mcp exposes the tutoring session over MCP so other agents can
// ask the tutor questions and run its commands.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tutorbot/internal/analysis"
	"tutorbot/internal/commands"
	"tutorbot/internal/kb"
	"tutorbot/internal/session"
	"tutorbot/internal/tokens"
)

func main() {
	// Log to stderr so stdout is clean for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetPrefix("[tutor-mcp] ")

	// Load .env file if present (don't error if missing)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	store, err := openStore(os.Getenv("KB_PATH"))
	if err != nil {
		log.Fatalf("Failed to open knowledge base: %v", err)
	}

	catalog := commands.DefaultCatalog()
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		catalog, err = commands.LoadCatalog(path)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	}

	// One session shared by all tool calls, serialized by a mutex.
	var mu sync.Mutex
	sess := analysis.NewSession(analysis.Config{
		Store:   store,
		Tagger:  tokens.NewProseTagger(),
		Catalog: catalog,
		UserID:  "mcp",
	})

	s := server.NewMCPServer(
		"tutor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(askTool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		message, _ := args["message"].(string)
		if message == "" {
			return mcp.NewToolResultError("message is required"), nil
		}

		mu.Lock()
		msgs := sess.WriteMessageToBot(message)
		mu.Unlock()

		if len(msgs) == 0 {
			return mcp.NewToolResultText(""), nil
		}
		return mcp.NewToolResultText(joinTexts(msgs)), nil
	})

	s.AddTool(runCommandTool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		command, _ := args["command"].(string)
		if command == "" {
			return mcp.NewToolResultError("command is required"), nil
		}

		mu.Lock()
		msgs, ok := sess.RunCommand(command, nil)
		mu.Unlock()

		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown command: %s", command)), nil
		}
		return mcp.NewToolResultText(joinTexts(msgs)), nil
	})

	log.Println("Starting tutor MCP server...")
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func askTool() mcp.Tool {
	return mcp.NewTool("ask_tutor",
		mcp.WithDescription("Send one message to the tutoring session. The tutor answers arithmetic, looks up terms and topics by name, and understands its command phrases."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The student message, one sentence"),
		),
	)
}

func runCommandTool() mcp.Tool {
	return mcp.NewTool("run_command",
		mcp.WithDescription("Run a tutor command phrase directly, such as 'topics', 'see terms', 'see assignments' or 'next'."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The command phrase"),
		),
	)
}

func openStore(path string) (kb.Store, error) {
	if path == "" {
		log.Println("No KB_PATH set, using built-in demo course")
		mem := kb.NewMemStore()
		kb.SeedDemo(mem)
		return mem, nil
	}
	return kb.Open(path)
}

func joinTexts(msgs []session.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n")
}
