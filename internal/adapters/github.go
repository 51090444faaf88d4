package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rbenitez/repo-code-empathizer/internal/resilience"
	"github.com/rbenitez/repo-code-empathizer/internal/types"
)

// githubRepo is the subset of the repository payload we care about.
type githubRepo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Stars         int      `json:"stargazers_count"`
	Forks         int      `json:"forks_count"`
	DefaultBranch string   `json:"default_branch"`
	PushedAt      string   `json:"pushed_at"`
	Topics        []string `json:"topics"`
}

// githubTree is the recursive tree listing used to count files.
type githubTree struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// GitHubAdapter fetches repository profiles from the GitHub API.
type GitHubAdapter struct {
	token   string
	baseURL string
	client  *http.Client
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig

	onRequest func(success bool)
}

// NewGitHubAdapter creates a GitHub adapter with circuit breaker protection.
func NewGitHubAdapter(token string) *GitHubAdapter {
	return &GitHubAdapter{
		token:   token,
		baseURL: "https://api.github.com",
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  30 * time.Second,
			SuccessThreshold: 3,
		}),
		retry: resilience.DefaultRetryConfig(),
	}
}

// SetBaseURL overrides the API base URL, used in tests.
func (g *GitHubAdapter) SetBaseURL(url string) {
	g.baseURL = url
}

// OnRequest registers a callback fired after every API request.
func (g *GitHubAdapter) OnRequest(fn func(success bool)) {
	g.onRequest = fn
}

// Breaker exposes the circuit breaker for state-change hooks.
func (g *GitHubAdapter) Breaker() *resilience.CircuitBreaker {
	return g.breaker
}

// FetchRepoProfile fetches a repository summary: languages sorted by byte
// share, file count from the default branch tree, and basic stats.
func (g *GitHubAdapter) FetchRepoProfile(ctx context.Context, owner, repo string) (*types.RepoProfile, error) {
	var repoData githubRepo
	if err := g.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", g.baseURL, owner, repo), &repoData); err != nil {
		return nil, fmt.Errorf("failed to fetch repo data: %w", err)
	}

	var byteShare map[string]int64
	if err := g.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/languages", g.baseURL, owner, repo), &byteShare); err != nil {
		return nil, fmt.Errorf("failed to fetch repo languages: %w", err)
	}

	languages := make([]string, 0, len(byteShare))
	for lang := range byteShare {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool {
		if byteShare[languages[i]] != byteShare[languages[j]] {
			return byteShare[languages[i]] > byteShare[languages[j]]
		}
		return languages[i] < languages[j]
	})

	fileCount := 0
	if repoData.DefaultBranch != "" {
		var tree githubTree
		url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", g.baseURL, owner, repo, repoData.DefaultBranch)
		if err := g.getJSON(ctx, url, &tree); err == nil {
			for _, entry := range tree.Tree {
				if entry.Type == "blob" {
					fileCount++
				}
			}
		}
	}

	pushedAt, _ := time.Parse(time.RFC3339, repoData.PushedAt)

	return &types.RepoProfile{
		Owner:     owner,
		Name:      repoData.Name,
		Languages: languages,
		ByteShare: byteShare,
		FileCount: fileCount,
		Stars:     repoData.Stars,
		Forks:     repoData.Forks,
		PushedAt:  pushedAt,
		Topics:    repoData.Topics,
	}, nil
}

// getJSON performs a GET with circuit breaker and retry, decoding the body
// into out.
func (g *GitHubAdapter) getJSON(ctx context.Context, url string, out interface{}) error {
	return g.breaker.Call(func() error {
		resp, err := resilience.RetryHTTP(ctx, g.retry, func() (*http.Response, error) {
			return g.doRequest(ctx, url)
		})
		if err != nil {
			g.reportRequest(false)
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			g.reportRequest(false)
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("github API error: status %d, body: %s", resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			g.reportRequest(false)
			return fmt.Errorf("failed to decode response: %w", err)
		}

		g.reportRequest(true)
		return nil
	})
}

func (g *GitHubAdapter) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "Repo-Code-Empathizer/1.0")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	return g.client.Do(req)
}

func (g *GitHubAdapter) reportRequest(success bool) {
	if g.onRequest != nil {
		g.onRequest(success)
	}
}
