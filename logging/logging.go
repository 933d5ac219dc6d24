// Package logging builds the zap logger and the generation log reporter.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/baldhumanity/snake-ga/ga"
)

// Config holds logging configuration
type Config struct {
	Level  string
	Format string // "json" or "console"
	Output string // "stdout" or "stderr"
}

// NewLogger creates a new structured logger
func NewLogger(config Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = parseLevel(config.Level)
	if config.Format == "" {
		config.Format = "console"
	}
	zapConfig.Encoding = config.Format
	if config.Output == "" {
		config.Output = "stderr"
	}
	zapConfig.OutputPaths = []string{config.Output}
	zapConfig.ErrorOutputPaths = []string{config.Output}
	zapConfig.DisableStacktrace = true
	if config.Format == "console" {
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return zapConfig.Build()
}

// parseLevel parses zap level from string
func parseLevel(level string) zap.AtomicLevel {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
}

// Reporter logs generation progress.
type Reporter struct {
	Logger *zap.Logger
}

// GenerationEnd implements ga.Reporter.
func (r *Reporter) GenerationEnd(s ga.GenerationStats) {
	r.Logger.Info("generation finished",
		zap.Int("generation", s.Generation),
		zap.Float64("best_score", s.BestScore),
		zap.Float64("mean_score", s.MeanScore),
		zap.Float64("stdev_score", s.StdevScore),
		zap.Float64("best_fitness", s.BestFitness),
		zap.Int("ticks", s.Ticks),
		zap.Bool("won", s.Won),
		zap.Duration("duration", s.Duration),
	)
}

// Champion implements ga.Reporter.
func (r *Reporter) Champion(c *ga.Champion) {
	r.Logger.Info("new champion",
		zap.Int("generation", c.Generation),
		zap.Int("score", c.Score),
		zap.Float64("fitness", c.Fitness),
	)
}
