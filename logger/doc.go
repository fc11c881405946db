// Package logger provides structured logging for webclient using zerolog.
//
// It supports JSON and console formats, level configuration, component-scoped
// loggers and size-based log file rotation through lumberjack.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "file"
//	  file: "/var/log/webclient.log"
//
// # Usage
//
//	log := logger.New(&cfg, "webclient").WithComponent("session")
//	log.Debug("request completed", logger.Fields("status", 200))
package logger
