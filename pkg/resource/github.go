package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	holonlog "github.com/holon-run/propedit/pkg/log"
)

const (
	// GitHubPrefix marks locators of the form github:owner/repo/path[@ref].
	GitHubPrefix = "github:"

	defaultGitHubURL = "https://github.com"
	githubTimeout    = 30 * time.Second
)

// GitHubRef is a parsed github: locator.
type GitHubRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// ParseGitHubRef parses github:owner/repo[/path][@ref].
func ParseGitHubRef(locator string) (*GitHubRef, error) {
	if !strings.HasPrefix(locator, GitHubPrefix) {
		return nil, fmt.Errorf("not a github locator: %s", locator)
	}
	body := strings.TrimPrefix(locator, GitHubPrefix)

	ref := ""
	if at := strings.LastIndex(body, "@"); at >= 0 {
		ref = body[at+1:]
		body = body[:at]
		if ref == "" {
			return nil, fmt.Errorf("empty ref in github locator: %s", locator)
		}
	}

	parts := strings.SplitN(strings.Trim(body, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("github locator must name owner and repo: %s", locator)
	}

	out := &GitHubRef{Owner: parts[0], Repo: parts[1], Ref: ref}
	if len(parts) == 3 && parts[2] != "" {
		p, err := CleanName(parts[2])
		if err != nil {
			return nil, err
		}
		out.Path = p
	}
	return out, nil
}

// GitHubResolver resolves github: locators through the repository contents
// API. Files resolve to their download URL and directories to their tree URL.
type GitHubResolver struct {
	client        *github.Client
	githubBaseURL string
	timeout       time.Duration
}

// GitHubOption configures a GitHubResolver.
type GitHubOption func(*GitHubResolver)

// WithGitHubToken authenticates API calls with a static token.
func WithGitHubToken(token string) GitHubOption {
	return func(r *GitHubResolver) {
		if token == "" {
			return
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base := r.client.BaseURL
		r.client = github.NewClient(oauth2.NewClient(context.Background(), ts))
		r.client.BaseURL = base
	}
}

// WithGitHubAPIBaseURL overrides the API base URL (GitHub Enterprise, tests).
func WithGitHubAPIBaseURL(rawURL string) GitHubOption {
	return func(r *GitHubResolver) {
		if rawURL == "" {
			return
		}
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		if u, err := url.Parse(rawURL); err == nil {
			r.client.BaseURL = u
		}
	}
}

// WithGitHubBaseURL overrides the web base URL used for tree links.
func WithGitHubBaseURL(rawURL string) GitHubOption {
	return func(r *GitHubResolver) {
		if rawURL != "" {
			r.githubBaseURL = strings.TrimSuffix(rawURL, "/")
		}
	}
}

// WithGitHubHTTPClient replaces the HTTP client used for API calls.
func WithGitHubHTTPClient(hc *http.Client) GitHubOption {
	return func(r *GitHubResolver) {
		base := r.client.BaseURL
		r.client = github.NewClient(hc)
		r.client.BaseURL = base
	}
}

// NewGitHubResolver creates a resolver for github: locators.
func NewGitHubResolver(opts ...GitHubOption) *GitHubResolver {
	r := &GitHubResolver{
		client:        github.NewClient(&http.Client{Timeout: githubTimeout}),
		githubBaseURL: defaultGitHubURL,
		timeout:       githubTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GitHubResolver) CanResolve(locator string) bool {
	return strings.HasPrefix(locator, GitHubPrefix)
}

func (r *GitHubResolver) Resolve(ctx context.Context, locator string) (*url.URL, error) {
	ref, err := ParseGitHubRef(locator)
	if err != nil {
		return nil, invalid(locator, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var opts *github.RepositoryContentGetOptions
	if ref.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref.Ref}
	}

	holonlog.Debug("looking up github content", "owner", ref.Owner, "repo", ref.Repo, "path", ref.Path, "ref", ref.Ref)
	file, dir, resp, err := r.client.Repositories.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, invalid(locator, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, ref.Owner, ref.Repo, ref.Path))
		}
		return nil, invalid(locator, fmt.Errorf("github contents lookup failed: %w", err))
	}

	if file != nil {
		raw := file.GetDownloadURL()
		if raw == "" {
			raw = file.GetHTMLURL()
		}
		if raw == "" {
			return nil, invalid(locator, errors.New("github returned no URL for file"))
		}
		return ParseURL(raw)
	}

	if dir != nil {
		treeRef := ref.Ref
		if treeRef == "" {
			treeRef = "HEAD"
		}
		u, err := url.Parse(r.githubBaseURL)
		if err != nil {
			return nil, invalid(locator, err)
		}
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.Join([]string{ref.Owner, ref.Repo, "tree", treeRef, ref.Path}, "/")
		u.Path = strings.TrimSuffix(u.Path, "/")
		return u, nil
	}

	return nil, invalid(locator, fmt.Errorf("%w: %s", ErrNotFound, locator))
}
