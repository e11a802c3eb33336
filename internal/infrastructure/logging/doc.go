// Package logging provides structured logging for Gray Logic Hub.
//
// This package wraps Go's standard log/slog package so every component
// logs with the same format, level filtering and default fields.
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("device added", "device_id", "1")
//	logger.Error("failed to connect", "error", err)
//
// Never log secrets such as the MQTT password or the InfluxDB token.
package logging
