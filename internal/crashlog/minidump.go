// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package crashlog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatMinidump condenses machine-readable minidump_stackwalk output (-m)
// into one line per frame of a single thread:
//
//	#<frame>: <symbol>, at <source>:<line>
//	#<frame>: <library>+<address>
//
// thread selects the thread to print; a negative value picks the first
// thread that appears in the input.
func FormatMinidump(r io.Reader, thread int) ([]string, error) {
	var frames []string
	prefix := ""
	if thread >= 0 {
		prefix = strconv.Itoa(thread) + "|"
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if prefix == "" {
			head, _, ok := strings.Cut(line, "|")
			if !ok {
				continue
			}
			if _, err := strconv.Atoi(head); err != nil {
				continue
			}
			prefix = head + "|"
		}
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if frame, ok := formatFrame(line); ok {
			frames = append(frames, frame)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// formatFrame formats one "thread|frame|lib|sym|src|line|addr" record.
func formatFrame(line string) (string, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != 7 {
		return "", false
	}
	frame, lib, sym, src, lineNo, addr := parts[1], parts[2], parts[3], parts[4], parts[5], parts[6]
	if sym != "" && src != "" && lineNo != "" {
		// Source references look like repo-type:repo:path:revision.
		if fields := strings.Split(src, ":"); len(fields) == 4 {
			src = fields[2]
		}
		return fmt.Sprintf("#%s: %s, at %s:%s", frame, sym, src, lineNo), true
	}
	return fmt.Sprintf("#%s: %s+%s", frame, lib, addr), true
}
