// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves remote JSON documents (data models and template
// configs) with a local-cache-first lookup. Requests are issued once: a
// failure is returned to the caller, which decides whether to degrade.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Source names where a document was read from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// ErrNoSource is returned when neither a local copy nor a URL is available.
var ErrNoSource = errors.New("no local copy and no URL")

// Client fetches JSON over HTTP.
type Client struct {
	cfg types.HTTPConfig
}

// New creates a client with the given timeout and user agent.
func New(cfg types.HTTPConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) http(base string) fastshot.ClientHttpMethods {
	b := fastshot.NewClient(base)
	if c.cfg.Timeout > 0 {
		b = b.Config().SetTimeout(c.cfg.Timeout)
	}
	b = b.Config().SetFollowRedirects(true)
	if c.cfg.UserAgent != "" {
		b = b.Header().Add("User-Agent", c.cfg.UserAgent)
	}
	return b.Header().Add("Accept", "application/json").Build()
}

// GetJSON fetches rawURL and decodes the JSON body into v. Non-2xx
// responses are errors carrying the response body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url %q is not absolute", rawURL)
	}
	base := u.Scheme + "://" + u.Host

	req := c.http(base).GET(u.EscapedPath())
	if u.RawQuery != "" {
		req = req.Query().SetRawString(u.RawQuery)
	}
	resp, err := req.Context().Set(ctx).Send()
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, _ := resp.Body().AsString()
		return fmt.Errorf("fetching %s: %s", rawURL, strings.TrimSpace(msg))
	}
	if err := resp.Body().AsJSON(v); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}

// LocalFirst decodes localPath into v when the file exists and parses, and
// otherwise fetches rawURL. An unreadable local copy falls through to the
// remote fetch; its error is kept only when there is no URL to try.
func (c *Client) LocalFirst(ctx context.Context, localPath, rawURL string, v any) (Source, error) {
	var localErr error
	if localPath != "" {
		data, err := os.ReadFile(localPath)
		switch {
		case err == nil:
			perr := json.Unmarshal(data, v)
			if perr == nil {
				return SourceLocal, nil
			}
			localErr = fmt.Errorf("parsing %s: %w", localPath, perr)
			reset(v)
		case !errors.Is(err, os.ErrNotExist):
			localErr = fmt.Errorf("reading %s: %w", localPath, err)
		}
	}

	if rawURL == "" {
		if localErr != nil {
			return "", localErr
		}
		return "", ErrNoSource
	}
	if err := c.GetJSON(ctx, rawURL, v); err != nil {
		return "", err
	}
	return SourceRemote, nil
}

// reset zeroes what v points to, dropping fields a failed decode left behind.
func reset(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
}
