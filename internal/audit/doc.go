// Package audit implements the export run log.
//
// Every pipeline run appends one JSON line with the run id, user, input, outcome,
// result code, row counts and duration. The file is rotated by size through
// lumberjack, so long-lived cron installations keep a bounded history.
package audit
