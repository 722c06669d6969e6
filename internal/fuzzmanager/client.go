// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

package fuzzmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/davetashner/bugconf/internal/testable"
)

// ErrNoTestcase is returned when a crash entry carries no test case.
var ErrNoTestcase = errors.New("crash has no testcase")

// basicAuthUser is the user name the crash manager expects alongside the
// token when serving test-case files.
const basicAuthUser = "fuzzmanager"

// Crash is the subset of a crash entry bcdownload uses.
type Crash struct {
	ID             int    `json:"id"`
	Product        string `json:"product"`
	ProductVersion string `json:"product_version"`
	Testcase       string `json:"testcase"`
	Bucket         *int   `json:"bucket"`
}

// Bucket is the subset of a crash bucket bcdownload uses.
type Bucket struct {
	ID               int    `json:"id"`
	Signature        string `json:"signature"`
	ShortDescription string `json:"shortDescription"`
	BestEntry        *int   `json:"best_entry"`
}

// Client talks to the FuzzManager crash manager REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a client for srv. A nil httpClient uses one with a 30s
// timeout.
func NewClient(srv Server, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: srv.URL, token: srv.Token}
}

// Crash fetches crash entry id.
func (c *Client) Crash(ctx context.Context, id int) (*Crash, error) {
	var crash Crash
	if err := c.getJSON(ctx, fmt.Sprintf("/crashmanager/rest/crashes/%d/", id), &crash); err != nil {
		return nil, fmt.Errorf("fetching crash %d: %w", id, err)
	}
	return &crash, nil
}

// Bucket fetches bucket id.
func (c *Client) Bucket(ctx context.Context, id int) (*Bucket, error) {
	var bucket Bucket
	if err := c.getJSON(ctx, fmt.Sprintf("/crashmanager/rest/buckets/%d/", id), &bucket); err != nil {
		return nil, fmt.Errorf("fetching bucket %d: %w", id, err)
	}
	return &bucket, nil
}

// DownloadTestcase saves the test case of crash into dir under its base
// name and returns that name.
func (c *Client) DownloadTestcase(ctx context.Context, fsys testable.FileSystem, crash *Crash, dir string) (string, error) {
	if crash.Testcase == "" {
		return "", fmt.Errorf("crash %d: %w", crash.ID, ErrNoTestcase)
	}
	if fsys == nil {
		fsys = testable.DefaultFS
	}

	req, err := c.newRequest(ctx, "/crashmanager/"+crash.Testcase)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(basicAuthUser, c.token)

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("downloading testcase of crash %d: %w", crash.ID, err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("downloading testcase of crash %d: %w", crash.ID, err)
	}

	name := path.Base(crash.Testcase)
	if err := fsys.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil { //nolint:gosec // test cases are not secret
		return "", fmt.Errorf("writing testcase: %w", err)
	}
	return name, nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (io.ReadCloser, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("server returned %d for %s", resp.StatusCode, req.URL.Path)
	}
	return resp.Body, nil
}
