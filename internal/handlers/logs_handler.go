package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

// LogsHandler accepts batches of browser log entries and appends them as
// JSON lines to a rotated frontend.log.
type LogsHandler struct {
	out io.Writer
	mu  sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp" binding:"required"`
	Level     string         `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string         `json:"message" binding:"required,max=2000"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,min=1,max=100,dive"`
}

// NewLogsHandler writes to out, usually logger.NewFileWriter(cfg, "frontend.log")
func NewLogsHandler(out io.Writer) *LogsHandler {
	return &LogsHandler{out: out}
}

func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req LogBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.write(req.Logs); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		logger.Error("Failed to write frontend logs", zap.Error(err))
		return
	}

	logger.Debug("Received frontend logs", zap.Int("count", len(req.Logs)))
	respondOK(c, http.StatusOK, gin.H{"received": len(req.Logs)})
}

func (h *LogsHandler) write(logs []LogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.out)
	for _, entry := range logs {
		line := map[string]any{
			"service": "frontend",
		}
		for k, v := range entry.Context {
			line[k] = v
		}
		// context cannot override the core fields
		line["timestamp"] = entry.Timestamp
		line["level"] = entry.Level
		line["msg"] = entry.Message

		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}
