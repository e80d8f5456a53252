package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/topik-vocab-bot/internal/config"
)

// New returns a production logger for env "production" and a development
// logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
