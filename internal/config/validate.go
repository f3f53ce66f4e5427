package config

import (
	"fmt"
)

// maxDetectLanguages is the hard upper bound on language candidates the
// Oracle is ever asked for in one detection call.
const maxDetectLanguages = 5

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}

	if c.Oracle.MaxTokens <= 0 {
		return fmt.Errorf("oracle.max_tokens must be > 0 (got %d)", c.Oracle.MaxTokens)
	}

	if err := c.Gate.validate(); err != nil {
		return fmt.Errorf("gate: %w", err)
	}

	return nil
}

func (g *GateConfig) validate() error {
	if g.MinConfidence < 0 || g.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be in [0,1] (got %v)", g.MinConfidence)
	}
	if g.MaxLanguages < 1 || g.MaxLanguages > maxDetectLanguages {
		return fmt.Errorf("max_languages must be in 1..%d (got %d)", maxDetectLanguages, g.MaxLanguages)
	}
	if g.MaxSenses < 1 {
		return fmt.Errorf("max_senses must be >= 1 (got %d)", g.MaxSenses)
	}
	return nil
}
