// Package report exports tabular run data as xlsx workbooks.
//
// Used by the diagnose command (--export) and the admin surface to hand operators
// a spreadsheet of lines and turnovers.
package report
