// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package config

import "github.com/davetashner/bugconf/internal/option"

// Fields holds one typed slot per registered option. A nil pointer means the
// option is unset.
type Fields struct {
	AnyCrash      *bool
	Build         *string
	BuildPath     *string
	Char          *bool
	Extension     *bool
	ExtensionPath *string
	GDB           *bool
	JS            *bool
	LogFile       *string
	Memory        *int
	MinCrashes    *int
	NoHarness     *bool
	Prefs         *string
	Puppet        *string
	ReduceDialect *string
	ReduceFile    *string
	Reducer       *string
	Repeat        *int
	ReproDialect  *string
	SafeMode      *bool
	Sig           *string
	Skip          *int
	Strategy      *string
	Symbol        *bool
	Timeout       *int
	Valgrind      *bool
	Xvfb          *bool
}

// field reads and writes one slot of Fields. get returns nil for an unset
// slot; set receives a value already coerced to the option's kind, or nil to
// clear it.
type field struct {
	get func(*Fields) any
	set func(*Fields, any)
}

func slot[T any](p func(*Fields) **T) field {
	return field{
		get: func(f *Fields) any {
			v := *p(f)
			if v == nil {
				return nil
			}
			return *v
		},
		set: func(f *Fields, v any) {
			if v == nil {
				*p(f) = nil
				return
			}
			t := v.(T)
			*p(f) = &t
		},
	}
}

// fieldTable maps option names to their slot in Fields.
var fieldTable = map[string]field{
	option.AnyCrash:      slot(func(f *Fields) **bool { return &f.AnyCrash }),
	option.Build:         slot(func(f *Fields) **string { return &f.Build }),
	option.BuildPath:     slot(func(f *Fields) **string { return &f.BuildPath }),
	option.Char:          slot(func(f *Fields) **bool { return &f.Char }),
	option.Extension:     slot(func(f *Fields) **bool { return &f.Extension }),
	option.ExtensionPath: slot(func(f *Fields) **string { return &f.ExtensionPath }),
	option.GDB:           slot(func(f *Fields) **bool { return &f.GDB }),
	option.JS:            slot(func(f *Fields) **bool { return &f.JS }),
	option.LogFile:       slot(func(f *Fields) **string { return &f.LogFile }),
	option.Memory:        slot(func(f *Fields) **int { return &f.Memory }),
	option.MinCrashes:    slot(func(f *Fields) **int { return &f.MinCrashes }),
	option.NoHarness:     slot(func(f *Fields) **bool { return &f.NoHarness }),
	option.Prefs:         slot(func(f *Fields) **string { return &f.Prefs }),
	option.Puppet:        slot(func(f *Fields) **string { return &f.Puppet }),
	option.ReduceDialect: slot(func(f *Fields) **string { return &f.ReduceDialect }),
	option.ReduceFile:    slot(func(f *Fields) **string { return &f.ReduceFile }),
	option.Reducer:       slot(func(f *Fields) **string { return &f.Reducer }),
	option.Repeat:        slot(func(f *Fields) **int { return &f.Repeat }),
	option.ReproDialect:  slot(func(f *Fields) **string { return &f.ReproDialect }),
	option.SafeMode:      slot(func(f *Fields) **bool { return &f.SafeMode }),
	option.Sig:           slot(func(f *Fields) **string { return &f.Sig }),
	option.Skip:          slot(func(f *Fields) **int { return &f.Skip }),
	option.Strategy:      slot(func(f *Fields) **string { return &f.Strategy }),
	option.Symbol:        slot(func(f *Fields) **bool { return &f.Symbol }),
	option.Timeout:       slot(func(f *Fields) **int { return &f.Timeout }),
	option.Valgrind:      slot(func(f *Fields) **bool { return &f.Valgrind }),
	option.Xvfb:          slot(func(f *Fields) **bool { return &f.Xvfb }),
}
