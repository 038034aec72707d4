package logging

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config mirrors the log section of the service configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New builds the process logger.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(cfg.Format, "console") || strings.EqualFold(cfg.Format, "text") {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// MaskSensitiveFields hides card data and payer e-mails in a JSON body before
// it is logged. Bodies that are not JSON objects are returned unchanged.
func MaskSensitiveFields(body []byte) []byte {
	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		return body
	}
	maskObject(req)
	if data, ok := req["data"].(map[string]any); ok {
		maskObject(data)
	}
	masked, err := json.Marshal(req)
	if err != nil {
		return body
	}
	return masked
}

func maskObject(m map[string]any) {
	if email, ok := m["payer_email"].(string); ok {
		m["payer_email"] = maskEmail(email)
	}
	if number, ok := m["number"].(string); ok {
		if len(number) > 4 {
			m["number"] = "****" + number[len(number)-4:]
		} else {
			m["number"] = "****"
		}
	}
	if _, ok := m["cvv"]; ok {
		m["cvv"] = "***"
	}
	if _, ok := m["certificate"]; ok {
		m["certificate"] = "****"
	}
}

func maskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "****"
	}
	if len(parts[0]) > 3 {
		return parts[0][:3] + "****@" + parts[1]
	}
	return "****@" + parts[1]
}
