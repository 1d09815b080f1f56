// Package logger provides structured logging over zerolog.
//
// Libraries in this module take a *Logger and fall back to the global one
// (or a registered component logger) when given nil.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get(logger.ComponentReader)
//	log.Info("session finished", logger.Fields(logger.FieldRecords, 42))
package logger
