// Package mcp exposes the assistant as an MCP server, so agent hosts can
// drive conversations as tools over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helioscommand/helios"
	"github.com/helioscommand/helios/pkg/domain"
)

// AskResponse is the structured result of the ask tool.
type AskResponse struct {
	ConversationID string `json:"conversation_id" jsonschema_description:"The conversation the reply belongs to"`
	Response       string `json:"response" jsonschema_description:"The assistant's reply"`
}

// HistoryResponse is the structured result of the history tool.
type HistoryResponse struct {
	ConversationID string        `json:"conversation_id" jsonschema_description:"The conversation queried"`
	Messages       []domain.Turn `json:"messages" jsonschema_description:"Ordered turn log, oldest first"`
}

// Server wraps an Assistant and exposes it as an MCP server.
type Server struct {
	assistant *helios.Assistant
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(assistant *helios.Assistant) *Server {
	s := &Server{
		assistant: assistant,
		mcpServer: server.NewMCPServer("helios-mcp", strings.TrimSpace(helios.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Send a message to the healthcare assistant. Starts a new conversation when conversation_id is omitted."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The user's message")),
		mcp.WithString("conversation_id", mcp.Description("Conversation to continue (optional)")),
		mcp.WithOutputSchema[AskResponse](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))

	historyTool := mcp.NewTool("history",
		mcp.WithDescription("Get the ordered turn log of a conversation."),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Conversation to inspect")),
		mcp.WithOutputSchema[HistoryResponse](),
	)
	s.mcpServer.AddTool(historyTool, mcp.NewStructuredToolHandler(s.handleHistory))

	resetTool := mcp.NewTool("reset",
		mcp.WithDescription("Clear a conversation's turns while keeping its ID."),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Conversation to reset")),
	)
	s.mcpServer.AddTool(resetTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("conversation_id", "")
		if err := s.assistant.Reset(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
		}
		return mcp.NewToolResultText("conversation reset"), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("list_conversations",
		mcp.WithDescription("List the IDs of all stored conversations."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.assistant.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AskResponse, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return AskResponse{}, fmt.Errorf("query is required")
	}

	id, _ := args["conversation_id"].(string)
	if id == "" {
		id = helios.NewConversationID()
	}

	response, err := s.assistant.Ask(ctx, id, query)
	if err != nil {
		return AskResponse{}, fmt.Errorf("ask failed: %w", err)
	}
	return AskResponse{ConversationID: id, Response: response}, nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (HistoryResponse, error) {
	id, _ := args["conversation_id"].(string)
	turns, err := s.assistant.History(ctx, id)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("history failed: %w", err)
	}
	return HistoryResponse{ConversationID: id, Messages: turns}, nil
}
