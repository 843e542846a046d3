// Package logger builds the structured Zap logger shared by the engine and the HTTP layer.
//
// Every engine operation logs its outcome: accepted operations at info level, refusals at
// warn level with their error kind. Handlers attach the request's RayID with WithRayID so
// all lines produced while serving one HTTP call can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("request approved", zap.String("request_id", id))
//
//	// In a handler:
//	logger.WithRayID(log, c).Warn("decision refused", zap.Error(err))
package logger
