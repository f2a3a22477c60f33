// Package cmd implements the loyalty-sync command line.
//
// # Commands
//
//   - (no args) / reconcile: full reconciliation run.
//   - handlefailed: drain and resubmit the failed-turnover queue.
//   - test, testing / diagnose: read-only pipeline run with optional tracing and xlsx export.
//   - serve: admin HTTP surface for the failed-turnover queue.
//
// The persistent --env flag selects the env file (.env.<profile>).
package cmd
