// Package pipeline orchestrates file discovery, per-file processing and
// batch summary reporting for the compression and analysis commands.
package pipeline
