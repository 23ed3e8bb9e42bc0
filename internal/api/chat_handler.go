package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hcp-crm/internal/agent"
	"hcp-crm/internal/session"
)

// ChatMessageRequest is one inbound user utterance for a (possibly new) session
type ChatMessageRequest struct {
	HCPID       string `json:"hcp_id"`
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message" binding:"required"`
}

// ChatMessageResponse carries the reply plus the accumulated record snapshot.
// is_complete stays false until an explicit structured save.
type ChatMessageResponse struct {
	AIResponse      string              `json:"ai_response"`
	ExtractedData   agent.WorkingRecord `json:"extracted_data"`
	IsComplete      bool                `json:"is_complete"`
	FinalActionType string              `json:"final_action_type,omitempty"`
	SessionID       string              `json:"session_id,omitempty"`
}

// POST /interactions/log_chat_message
func ChatMessageHandler(sessions *session.Manager, router *agent.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserMessage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing user_message"})
			return
		}

		sess := sessions.GetOrCreate(req.SessionID)
		if err := sess.BeginTurn(); err != nil {
			if errors.Is(err, session.ErrSessionBusy) {
				c.JSON(http.StatusConflict, gin.H{"error": "a turn for this session is already in progress"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer sess.EndTurn()

		result, err := router.ProcessTurn(c.Request.Context(), sess.Transcript, sess.Record, req.UserMessage)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "agent failure", "detail": err.Error()})
			return
		}

		sess.Record = result.Record
		sessions.Touch(c.Request.Context(), sess.ID)

		c.JSON(http.StatusOK, ChatMessageResponse{
			AIResponse:      result.Reply,
			ExtractedData:   result.Record,
			IsComplete:      false,
			FinalActionType: result.ActionKind,
			SessionID:       sess.ID,
		})
	}
}
