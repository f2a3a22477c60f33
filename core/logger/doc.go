// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development (debug level, colored
// console output) and production (JSON) setups. Batch runs are scheduled jobs whose output
// usually ends up in a log collector, so JSON is the default encoding.
//
// # Run Correlation
//
// Each orchestrator run generates a run id. WithRunID attaches it to the logger so that every
// line written by the customer sync, product lookup and turnover submission of one run can be
// correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRunID(log, runID)
//	l.Info("Reconciliation finished", zap.Int("submitted", n))
package logger
