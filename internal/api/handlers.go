package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hcp-crm/internal/config"
	"hcp-crm/internal/session"
	"hcp-crm/internal/tools"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"model": cfg.Groq.Model,
		})
	}
}

// GET /sessions/active
func ActiveSessionsHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := sessions.ActiveSessionCount(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count sessions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"active_sessions": count})
	}
}

// DELETE /sessions/:id
func EndSessionHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, ok := sessions.Get(id); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		sessions.End(c.Request.Context(), id)
		c.JSON(http.StatusOK, gin.H{"ended": true})
	}
}

// GET /tools
func ListToolsHandler(registry *tools.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, registry.List())
	}
}
