package api

import (
	"path"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hcp-crm/internal/agent"
	"hcp-crm/internal/config"
	"hcp-crm/internal/interaction"
	"hcp-crm/internal/session"
	"hcp-crm/internal/tools"
)

// Deps bundles everything the route handlers need
type Deps struct {
	Config   *config.Config
	Sessions *session.Manager
	Agent    *agent.Router
	Store    *interaction.Store
	Registry *tools.Registry
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()
	cfg := deps.Config
	subpath := cfg.Server.Subpath

	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
		corsCfg.AllowCredentials = true
		r.Use(cors.New(corsCfg))
	}

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// --- Conversational agent ---
		group.POST("/interactions/log_chat_message", ChatMessageHandler(deps.Sessions, deps.Agent))

		// --- Structured interaction log persistence ---
		group.POST("/interactions/log_structured", LogStructuredHandler(deps.Store, deps.Sessions))
		group.GET("/interactions", ListInteractionsHandler(deps.Store))
		group.GET("/interactions/:id", GetInteractionHandler(deps.Store))

		// --- Sessions ---
		group.GET("/sessions/active", ActiveSessionsHandler(deps.Sessions))
		group.DELETE("/sessions/:id", EndSessionHandler(deps.Sessions))

		// --- Capabilities ---
		group.GET("/tools", ListToolsHandler(deps.Registry))
	}

	// Avoid a bare 404 on the root when a subpath is configured
	if subpath != "" && subpath != "/" {
		r.GET("/", func(c *gin.Context) {
			c.Redirect(301, path.Join(subpath, "health"))
		})
	}
	return r
}
