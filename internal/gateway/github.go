// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com/"

// Secondary rate limit sleeps up to rateLimitSleepLimit happen inside a request, so
// the HTTP client timeout stays above it.
const (
	rateLimitSleepLimit = time.Minute
	clientTimeout       = rateLimitSleepLimit + 30*time.Second
)

// Failure classes of a listing request.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unsuccessful response status")
	ErrMalformed = errors.New("malformed response payload")
)

// Fetcher defines the behavior of a gateway for fetching repository listings from GitHub.
type Fetcher interface {
	FetchUserRepos(ctx context.Context, user string) ([]domain.Repository, error)
	FetchOrganizations(ctx context.Context, user string) ([]string, error)
	FetchOrgRepos(ctx context.Context, org string) ([]domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// organizationsQuery lists the public organizations of a user.
type organizationsQuery struct {
	User struct {
		Organizations struct {
			Nodes []struct {
				Login string
			}
		} `graphql:"organizations(first: 100)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway creates a gateway talking to apiURL. The GraphQL client is only
// configured when a token is present, since GitHub rejects anonymous GraphQL calls.
func NewGitHubGateway(apiURL, token string, logger *zap.Logger) (*GitHubGateway, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API URL %q: %w", apiURL, err)
	}

	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(rateLimitSleepLimit, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport, Timeout: clientTimeout}

	restClient := github.NewClient(httpClient)
	restClient.BaseURL = baseURL

	g := &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}
	if token != "" {
		g.graphqlClient = githubv4.NewEnterpriseClient(baseURL.JoinPath("graphql").String(), httpClient)
	}
	return g, nil
}

// FetchUserRepos issues a single listing request for the repositories of user,
// most recently updated first.
func (g *GitHubGateway) FetchUserRepos(ctx context.Context, user string) ([]domain.Repository, error) {
	g.logger.Debug("Fetching user repositories", zap.String("user", user))
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", user, classify(err))
	}
	g.logger.Debug("Fetched user repositories", zap.String("user", user), zap.Int("count", len(repos)))
	return toDomain(repos), nil
}

// FetchOrganizations returns the logins of the organizations user belongs to publicly.
// GraphQL is preferred; the REST listing is used without a token or when GraphQL fails.
func (g *GitHubGateway) FetchOrganizations(ctx context.Context, user string) ([]string, error) {
	if g.graphqlClient != nil {
		var q organizationsQuery
		variables := map[string]interface{}{"login": githubv4.String(user)}
		err := g.graphqlClient.Query(ctx, &q, variables)
		if err == nil {
			logins := make([]string, 0, len(q.User.Organizations.Nodes))
			for _, node := range q.User.Organizations.Nodes {
				logins = append(logins, node.Login)
			}
			return logins, nil
		}
		g.logger.Debug("GraphQL organization query failed, falling back to REST", zap.Error(err))
	}

	orgs, _, err := g.restClient.Organizations.List(ctx, user, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations of %s: %w", user, classify(err))
	}
	logins := make([]string, 0, len(orgs))
	for _, org := range orgs {
		logins = append(logins, org.GetLogin())
	}
	return logins, nil
}

// FetchOrgRepos lists the first page of repositories owned by org.
func (g *GitHubGateway) FetchOrgRepos(ctx context.Context, org string) ([]domain.Repository, error) {
	g.logger.Debug("Fetching organization repositories", zap.String("org", org))
	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: 100}}
	repos, _, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of organization %s: %w", org, classify(err))
	}
	return toDomain(repos), nil
}

// classify tags err with one of the failure classes.
func classify(err error) error {
	var (
		errResp   *github.ErrorResponse
		rateErr   *github.RateLimitError
		abuseErr  *github.AbuseRateLimitError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &errResp), errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: %w", ErrStatus, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
}

func toDomain(repos []*github.Repository) []domain.Repository {
	out := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		out = append(out, domain.Repository{
			Name:        repo.GetName(),
			FullName:    repo.GetFullName(),
			Description: repo.GetDescription(),
			Language:    repo.GetLanguage(),
			StarCount:   repo.GetStargazersCount(),
			ForkCount:   repo.GetForksCount(),
			IsFork:      repo.GetFork(),
			Disabled:    repo.GetDisabled(),
			UpdatedAt:   repo.GetUpdatedAt().Time,
			URL:         repo.GetHTMLURL(),
			OwnerLogin:  repo.GetOwner().GetLogin(),
		})
	}
	return out
}
