// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package bucket prepares a working directory for triaging a FuzzManager
// crash bucket.
package bucket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/davetashner/bugconf/internal/config"
	"github.com/davetashner/bugconf/internal/fuzzmanager"
	"github.com/davetashner/bugconf/internal/option"
	"github.com/davetashner/bugconf/internal/testable"
)

// Source is the part of the FuzzManager client bucket initialization needs.
type Source interface {
	Bucket(ctx context.Context, id int) (*fuzzmanager.Bucket, error)
	Crash(ctx context.Context, id int) (*fuzzmanager.Crash, error)
	DownloadTestcase(ctx context.Context, fsys testable.FileSystem, crash *fuzzmanager.Crash, dir string) (string, error)
}

// Result describes an initialized bucket directory.
type Result struct {
	Dir       string
	Signature string
	// Testcase is the downloaded test case of the bucket's best entry,
	// relative to Dir. Empty when the bucket has no usable entry.
	Testcase string
	Bucket   *fuzzmanager.Bucket
}

// Init creates <parent>/<id>/ holding the bucket signature (<id>.signature),
// the best entry's test case when there is one, and a bugconf project file
// whose sig option points at the signature.
func Init(ctx context.Context, src Source, fsys testable.FileSystem, logger *slog.Logger, parent string, id int) (*Result, error) {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	b, err := src.Bucket(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strconv.Itoa(id)
	res := &Result{
		Dir:       filepath.Join(parent, name),
		Signature: name + ".signature",
		Bucket:    b,
	}
	if err := fsys.MkdirAll(res.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating bucket directory: %w", err)
	}
	if err := fsys.WriteFile(filepath.Join(res.Dir, res.Signature), []byte(b.Signature), 0o644); err != nil { //nolint:gosec // signatures are not secret
		return nil, fmt.Errorf("writing signature: %w", err)
	}
	logger.Info("initialized bucket", "bucket", id, "description", b.ShortDescription)

	if b.BestEntry != nil {
		crash, err := src.Crash(ctx, *b.BestEntry)
		if err != nil {
			return nil, err
		}
		res.Testcase, err = src.DownloadTestcase(ctx, fsys, crash, res.Dir)
		switch {
		case errors.Is(err, fuzzmanager.ErrNoTestcase):
			logger.Warn("best entry has no testcase", "crash", crash.ID)
		case err != nil:
			return nil, err
		}
	}

	store := config.New(logger, fsys)
	if err := store.Set(option.Sig, res.Signature); err != nil {
		return nil, err
	}
	if err := store.DumpFile(filepath.Join(res.Dir, config.FileName)); err != nil {
		return nil, err
	}
	return res, nil
}
