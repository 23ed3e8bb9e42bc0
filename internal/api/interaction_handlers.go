package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hcp-crm/internal/interaction"
	"hcp-crm/internal/session"
)

// MaterialItem mirrors the frontend's {id, name} list entries
type MaterialItem struct {
	ID   interface{} `json:"id"`
	Name string      `json:"name"`
}

// LogStructuredRequest is the finalized form payload. A non-nil ID updates an
// existing log; otherwise a new one is inserted.
type LogStructuredRequest struct {
	ID                 *uint          `json:"id"`
	HCPName            string         `json:"hcpName"`
	InteractionType    string         `json:"interactionType"`
	Date               string         `json:"date"`
	Time               string         `json:"time"`
	Attendees          string         `json:"attendees"`
	TopicsDiscussed    string         `json:"topicsDiscussed"`
	MaterialsShared    []MaterialItem `json:"materialsShared"`
	SamplesDistributed []MaterialItem `json:"samplesDistributed"`
	Sentiment          string         `json:"sentiment"`
	Outcomes           string         `json:"outcomes"`
	FollowUpActions    string         `json:"followUpActions"`
	ChatSessionID      string         `json:"chatSessionId"`
	ProductsDiscussed  []string       `json:"productsDiscussed"`
}

// POST /interactions/log_structured
func LogStructuredHandler(store *interaction.Store, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LogStructuredRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		rec := interaction.InteractionLog{
			HCPName:         req.HCPName,
			InteractionType: req.InteractionType,
			InteractionDate: req.Date,
			InteractionTime: req.Time,
			Attendees:       req.Attendees,
			TopicsDiscussed: req.TopicsDiscussed,
			Sentiment:       req.Sentiment,
			Outcomes:        req.Outcomes,
			FollowUpActions: req.FollowUpActions,
			ChatSessionID:   req.ChatSessionID,
		}
		if req.ID != nil {
			rec.ID = *req.ID
		}
		for _, m := range req.MaterialsShared {
			rec.MaterialsShared = append(rec.MaterialsShared, interaction.MaterialShared{Name: m.Name})
		}
		for _, s := range req.SamplesDistributed {
			rec.SamplesDistributed = append(rec.SamplesDistributed, interaction.SampleDistributed{Name: s.Name})
		}
		for _, p := range req.ProductsDiscussed {
			rec.ProductsDiscussed = append(rec.ProductsDiscussed, interaction.ProductDiscussed{Name: p})
		}

		// Attach the live working-record snapshot when the chat session is known
		if req.ChatSessionID != "" {
			if sess, ok := sessions.Get(req.ChatSessionID); ok {
				if raw, err := json.Marshal(sess.Record); err == nil {
					rec.Snapshot = raw
				}
			}
		}

		if err := store.Save(&rec); err != nil {
			if errors.Is(err, interaction.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save interaction log"})
			return
		}

		verb := "saved"
		if req.ID != nil {
			verb = "updated"
		}
		c.JSON(http.StatusOK, gin.H{
			"id":      rec.ID,
			"hcpName": rec.HCPName,
			"message": fmt.Sprintf("Interaction log (ID: %d) %s successfully.", rec.ID, verb),
		})
	}
}

// GET /interactions
func ListInteractionsHandler(store *interaction.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := store.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch interaction logs"})
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

// GET /interactions/:id
func GetInteractionHandler(store *interaction.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		idU64, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction id"})
			return
		}
		rec, err := store.Get(uint(idU64))
		if err != nil {
			if errors.Is(err, interaction.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "interaction log not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch interaction log"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
