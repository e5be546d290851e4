// ABOUTME: MCP tools for meal log operations.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_meal
	s.server.AddTool(&mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal with type, notes, and optional photos",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"type": {"type": "string", "description": "breakfast, lunch, dinner, or snack", "default": "snack"},
				"notes": {"type": "string", "description": "Free-text notes (markdown)"},
				"date": {"type": "string", "description": "Calendar day YYYY-MM-DD (defaults to today)"},
				"images": {"type": "array", "items": {"type": "string"}, "description": "Base64 encoded raw images, at most 5"}
			}
		}`),
	}, s.handleLogMeal)

	// get_day
	s.server.AddTool(&mcp.Tool{
		Name:        "get_day",
		Description: "Get the meals logged for one calendar day",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"date": {"type": "string", "description": "Calendar day YYYY-MM-DD"}
			},
			"required": ["date"]
		}`),
	}, s.handleGetDay)

	// get_range
	s.server.AddTool(&mcp.Tool{
		Name:        "get_range",
		Description: "Get the meals logged in an inclusive date range",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"start": {"type": "string", "description": "First day YYYY-MM-DD"},
				"end": {"type": "string", "description": "Last day YYYY-MM-DD"}
			},
			"required": ["start", "end"]
		}`),
	}, s.handleGetRange)

	// update_meal
	s.server.AddTool(&mcp.Tool{
		Name:        "update_meal",
		Description: "Update a meal's type, notes, or date",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Meal ID or prefix (6+ chars)"},
				"type": {"type": "string", "description": "New meal type"},
				"notes": {"type": "string", "description": "New notes"},
				"date": {"type": "string", "description": "New calendar day"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateMeal)

	// delete_meal
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a meal",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Meal ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteMeal)
}

// mealSummary is the wire shape for query results; payload bytes stay
// out of tool output, only their count is reported.
type mealSummary struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Images    int    `json:"images"`
}

func summarize(meals []*models.Meal) []mealSummary {
	out := make([]mealSummary, 0, len(meals))
	for _, m := range meals {
		out = append(out, mealSummary{
			ID:        m.ID.String(),
			Type:      string(m.Type),
			Notes:     m.Notes,
			Date:      m.Date,
			Timestamp: m.Timestamp,
			Images:    len(m.Images),
		})
	}
	return out
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// Tool handlers.
func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Type   string   `json:"type"`
		Notes  string   `json:"notes"`
		Date   string   `json:"date"`
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if params.Date == "" {
		params.Date = today()
	}

	var images [][]byte
	for i, enc := range params.Images {
		raw, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return errorResult("image %d is not valid base64: %v", i, err), nil
		}
		images = append(images, raw)
	}

	meal, err := db.CreateMeal(s.db, &db.Draft{
		Type:   models.ParseMealType(params.Type),
		Notes:  params.Notes,
		Date:   params.Date,
		Images: images,
	})
	if err != nil {
		return errorResult("failed to log meal: %v", err), nil
	}

	return textResult(fmt.Sprintf("Logged %s %s for %s", meal.Type, meal.ID.String(), meal.Date)), nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	meals, err := db.GetByDate(s.db, params.Date)
	if err != nil {
		return errorResult("failed to query meals: %v", err), nil
	}

	data, _ := json.MarshalIndent(summarize(meals), "", "  ")
	return textResult(string(data)), nil
}

func (s *Server) handleGetRange(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	meals, err := db.GetRange(s.db, params.Start, params.End)
	if err != nil {
		return errorResult("failed to query meals: %v", err), nil
	}

	data, _ := json.MarshalIndent(summarize(meals), "", "  ")
	return textResult(string(data)), nil
}

func (s *Server) handleUpdateMeal(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    string  `json:"id"`
		Type  *string `json:"type"`
		Notes *string `json:"notes"`
		Date  *string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	meal, err := s.resolveMeal(params.ID)
	if err != nil {
		return errorResult("failed to find meal: %v", err), nil
	}

	patch := &db.Patch{Notes: params.Notes, Date: params.Date}
	if params.Type != nil {
		t := models.ParseMealType(*params.Type)
		patch.Type = &t
	}

	if _, err := db.UpdateMeal(s.db, meal.ID, patch); err != nil {
		return errorResult("failed to update meal: %v", err), nil
	}
	return textResult(fmt.Sprintf("Updated meal %s", meal.ID.String())), nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	meal, err := s.resolveMeal(params.ID)
	if err != nil {
		return errorResult("failed to find meal: %v", err), nil
	}

	if err := db.DeleteMeal(s.db, meal.ID); err != nil {
		return errorResult("failed to delete meal: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted meal %s", meal.ID.String())), nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func (s *Server) resolveMeal(ref string) (*models.Meal, error) {
	// Try parsing as UUID first
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		return db.GetMeal(s.db, id)
	}
	return db.GetMealByPrefix(s.db, ref)
}
