// Package engines builds the process-wide oracle set from config.
package engines

import (
	"context"
	"strings"

	"github.com/apex/log"

	"food-analyzer/api/internal/config"
	"food-analyzer/api/internal/oracle"
	"food-analyzer/api/internal/oracle/gemini"
	"food-analyzer/api/internal/oracle/ollama"
	"food-analyzer/api/internal/oracle/openai"
	"food-analyzer/api/internal/oracle/stub"
)

// Build creates every adapter that has what it needs to run. Ollama and the
// stub are always present; gpt and gemini only with an API key.
// The returned func releases long-lived clients.
func Build(ctx context.Context, cfg *config.Config) (*oracle.Engines, func()) {
	list := []oracle.Engine{
		ollama.New(cfg.OllamaURL, cfg.OllamaModel),
		stub.New(),
	}
	closers := []func(){}

	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		list = append(list, openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIURL))
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.WithError(err).Warn("gemini disabled")
		} else {
			list = append(list, g)
			closers = append(closers, func() { _ = g.Close() })
		}
	}

	engs := oracle.NewEngines(cfg.DefaultOracle, list...)
	if _, err := engs.GetEngine(""); err != nil {
		log.WithFields(log.Fields{
			"default":   cfg.DefaultOracle,
			"available": strings.Join(engs.Names(), ","),
		}).Warn("default oracle is not configured")
	}

	return engs, func() {
		for _, c := range closers {
			c()
		}
	}
}
