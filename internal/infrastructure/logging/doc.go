// Package logging provides structured logging for the middlemile service.
//
// Logger wraps log/slog and stamps every entry with the service name and
// build version. It satisfies the small Logger interfaces declared by the
// handler, ingest and infrastructure packages, so those packages never import
// slog configuration directly.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	mqttLog := logger.Component("mqtt")
//	mqttLog.Info("connected", "broker", url)
//
// Never log broker passwords or database tokens.
package logging
