// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package fuzzmanager

import (
	"gopkg.in/ini.v1"
)

// MainSection is the section FuzzManager tools read their settings from.
const MainSection = "Main"

// confOptions reads INI the way FuzzManager's own Python tools do: keys are
// case-insensitive, indented lines continue the previous value and a '#' or
// ';' only starts a comment at the beginning of a line.
var confOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	AllowPythonMultilineValues: true,
	IgnoreInlineComment:        true,
}

// ParseConf parses a FuzzManager INI document (.fuzzmanagerconf or a
// build's firefox.fuzzmanagerconf).
func ParseConf(data []byte) (*ini.File, error) {
	return ini.LoadSources(confOptions, data)
}

// MainValue returns key from the [Main] section of conf.
func MainValue(conf *ini.File, key string) (string, bool) {
	sec, err := conf.GetSection(MainSection)
	if err != nil || !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}
