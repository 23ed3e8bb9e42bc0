package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"hcp-crm/internal/agent"
	"hcp-crm/internal/api"
	"hcp-crm/internal/config"
	"hcp-crm/internal/db"
	"hcp-crm/internal/interaction"
	"hcp-crm/internal/llm"
	redisdb "hcp-crm/internal/redis"
	"hcp-crm/internal/session"
	"hcp-crm/internal/tools"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	// Completion service: absent credentials leave the parser unconfigured,
	// and every turn degrades to a "service unavailable" reply
	var completions agent.CompletionService
	if cfg.Groq.APIKey != "" {
		breaker := tools.NewCircuitBreaker(3, time.Minute)
		manager := llm.NewManager(&llm.ManagerConfig{
			MaxConcurrent:  cfg.Agent.MaxConcurrent,
			QueueSize:      cfg.Agent.QueueSize,
			DefaultTimeout: time.Duration(cfg.Groq.TimeoutSeconds) * time.Second,
		}, breaker)
		defer manager.Stop()
		client := llm.NewClient(manager, time.Duration(cfg.Groq.TimeoutSeconds)*time.Second)
		completions = llm.NewCompleter(client, cfg.Groq)
	} else {
		log.Printf("[Main] WARNING: no groq api_key configured, agent will reply degraded")
	}

	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewHCPProfileTool(),
		tools.NewNextActionTool(),
		tools.NewProductInfoTool(),
	} {
		if err := registry.Register(tool); err != nil {
			fmt.Fprintf(os.Stderr, "Tool registry error: %v\n", err)
			os.Exit(1)
		}
	}

	agentRouter := agent.NewRouter(agent.NewParser(completions), registry)
	sessions := session.NewManager(rdb)
	store := interaction.NewStore(db.DB)

	r := api.SetupRouter(api.Deps{
		Config:   cfg,
		Sessions: sessions,
		Agent:    agentRouter,
		Store:    store,
		Registry: registry,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
