// Package github lists an organization's repositories through the
// authenticated gh CLI, so no token handling lives in this process.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
)

// ErrGHNotFound reports that the gh binary is not on PATH.
var ErrGHNotFound = errors.New("gh command not found; install the GitHub CLI and run 'gh auth login'")

// runner executes gh with args and returns its stdout. Swapped out in
// tests.
type runner func(ctx context.Context, args ...string) ([]byte, error)

// Client fetches repository metadata for one organization.
type Client struct {
	org  string
	host string
	log  *zap.Logger
	run  runner
}

func NewClient(org, host string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{org: org, host: host, log: log}
	c.run = c.execGH
	return c
}

// ListRepositories returns every repository of the organization, in the
// order the API yields them. Pagination is delegated to gh, which emits
// one JSON array per page.
func (c *Client) ListRepositories(ctx context.Context) ([]repo.Repository, error) {
	if c.org == "" {
		return nil, fmt.Errorf("organization is not configured")
	}

	c.log.Debug("listing repositories", zap.String("org", c.org))
	out, err := c.run(ctx, "api", fmt.Sprintf("orgs/%s/repos", c.org), "--paginate")
	if err != nil {
		return nil, err
	}

	repos, err := decodePages(out)
	if err != nil {
		return nil, fmt.Errorf("parse gh api response: %w", err)
	}
	c.log.Debug("listed repositories", zap.Int("count", len(repos)))
	return repos, nil
}

// decodePages parses concatenated JSON arrays into one flat list.
func decodePages(data []byte) ([]repo.Repository, error) {
	var repos []repo.Repository
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var page []repo.Repository
		if err := dec.Decode(&page); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		repos = append(repos, page...)
	}
	return repos, nil
}

func (c *Client) execGH(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Env = os.Environ()
	if c.host != "" {
		cmd.Env = append(cmd.Env, "GH_HOST="+c.host)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrGHNotFound
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("gh %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}
