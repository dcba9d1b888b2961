// internal/server/handlers.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "assist-server/internal/common/errors"
	"assist-server/internal/common/validation"

	"github.com/gin-gonic/gin"
)

// AssistRequest is the /api/assist request body.
type AssistRequest struct {
	Query     string `json:"query"`
	StyleLock string `json:"styleLock"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"time": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMeta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "online",
		"web_search_enabled": s.service.SearchEnabled(),
	})
}

func (s *Server) handleAssist(c *gin.Context) {
	// Single bounded read of the whole body; a chat query never needs more.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.Server.MaxBodySize)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body too large or unreadable"})
		return
	}

	if err := validation.ValidateAssistRequest(body); err != nil {
		stdErr := apperrors.NewInvalidRequestError(err.Error())
		s.logger.Warn("assist request rejected", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var req AssistRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	envelope, status := s.service.Handle(c.Request.Context(), req.Query, req.StyleLock)
	c.JSON(status, envelope)
}
