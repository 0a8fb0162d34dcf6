package parser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGitHubRemote indicates the checkout has no origin remote on github.com.
var ErrNoGitHubRemote = errors.New("no github.com origin remote")

// RemoteRepository returns owner and repo of the origin remote of the git
// checkout containing dir. Parent directories are searched for .git.
func RemoteRepository(dir string) (owner, repo string, err error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("open git checkout %q: %w", dir, err)
	}
	return OriginRepository(r)
}

// OriginRepository reads owner and repo from the first github.com URL of the
// origin remote.
func OriginRepository(r *gogit.Repository) (owner, repo string, err error) {
	remote, err := r.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("read origin remote: %w", err)
	}

	for _, rawURL := range remote.Config().URLs {
		owner, repo, err := ParseRemoteURL(rawURL)
		if err == nil {
			return owner, repo, nil
		}
	}
	return "", "", fmt.Errorf("origin urls %v: %w", remote.Config().URLs, ErrNoGitHubRemote)
}

// ParseRemoteURL accepts https, ssh and scp-like ("git@github.com:o/r.git")
// remote URLs.
func ParseRemoteURL(rawURL string) (owner, repo string, err error) {
	rawURL = strings.TrimSpace(rawURL)

	var host, path string
	if at := strings.Index(rawURL, "@"); at >= 0 && !strings.Contains(rawURL, "://") {
		hostPath := rawURL[at+1:]
		colon := strings.Index(hostPath, ":")
		if colon < 0 {
			return "", "", fmt.Errorf("parse remote %q: %w", rawURL, ErrNoGitHubRemote)
		}
		host, path = hostPath[:colon], hostPath[colon+1:]
	} else {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return "", "", fmt.Errorf("parse remote %q: %w", rawURL, err)
		}
		host, path = parsed.Hostname(), parsed.Path
	}

	host = strings.ToLower(host)
	if host != "github.com" && host != "www.github.com" {
		return "", "", fmt.Errorf("remote host %q: %w", host, ErrNoGitHubRemote)
	}

	segments := splitPathSegments(path)
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("remote path %q: %w", path, ErrNoGitHubRemote)
	}
	return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
}
