// Package cli provides shared helpers for the saturn command-line
// interface: typed command errors, output formatting, and signal
// handling for the long-running serve mode.
package cli
