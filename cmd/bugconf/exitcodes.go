package main

// Exit codes for bugconf. Any other status is the external tool's own.
const (
	ExitOK    = 0 // Success, including "nothing to do".
	ExitFatal = 1 // Configuration, validation or I/O error.
	ExitUsage = 2 // Malformed command line.

	ExitInterrupted = 130 // Stopped by SIGINT or SIGTERM.
)
