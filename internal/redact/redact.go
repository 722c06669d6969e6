// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error messages.
package redact

import (
	"strings"
	"sync"
)

// minSecretLen is the shortest value that will be redacted. Shorter values
// would cause false-positive replacements in ordinary text.
const minSecretLen = 4

var (
	mu      sync.RWMutex
	secrets []string
)

// Register records a secret (for example a FuzzManager auth token) that must
// never appear in user-visible output.
func Register(secret string) {
	secret = strings.TrimSpace(secret)
	if len(secret) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, s := range secrets {
		if s == secret {
			return
		}
	}
	secrets = append(secrets, secret)
}

// ResetForTest forgets every registered secret.
func ResetForTest() {
	mu.Lock()
	secrets = nil
	mu.Unlock()
}

// String replaces any occurrence of a registered secret with "[REDACTED]".
// Returns the original string if no secrets are found.
func String(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
