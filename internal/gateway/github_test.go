package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler, withGraphQL bool) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	gateway := &GitHubGateway{
		restClient: restClient,
		logger:     zap.NewNop(),
	}
	if withGraphQL {
		gateway.graphqlClient = githubv4.NewEnterpriseClient(server.URL+"/graphql", server.Client())
	}
	return gateway, server
}

func TestGitHubGateway_FetchUserRepos(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expectedLen int
		expectedErr error
	}{
		{
			name: "happy path - maps repository fields",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octo/repos", r.URL.Path)
				assert.Equal(t, "updated", r.URL.Query().Get("sort"))
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				fmt.Fprint(w, `[
					{"name":"alpha","full_name":"octo/alpha","description":"first","language":"Go",
					 "stargazers_count":5,"forks_count":1,"fork":false,"disabled":false,
					 "updated_at":"2024-03-01T10:00:00Z","html_url":"https://github.com/octo/alpha",
					 "owner":{"login":"octo"}},
					{"name":"beta","full_name":"octo/beta","fork":true,"disabled":true,
					 "updated_at":"2024-02-01T10:00:00Z","owner":{"login":"octo"}}
				]`)
			},
			expectedLen: 2,
		},
		{
			name: "error case - non-success status",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedErr: ErrStatus,
		},
		{
			name: "error case - payload is not an array",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"message": "not a list"}`)
			},
			expectedErr: ErrMalformed,
		},
		{
			name: "error case - payload is not json",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
			expectedErr: ErrMalformed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc), false)
			defer server.Close()

			repos, err := gateway.FetchUserRepos(context.Background(), "octo")
			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Contains(t, err.Error(), "failed to list repositories of octo")
				assert.Nil(t, repos)
				return
			}
			require.NoError(t, err)
			require.Len(t, repos, tc.expectedLen)

			alpha := repos[0]
			assert.Equal(t, "alpha", alpha.Name)
			assert.Equal(t, "octo/alpha", alpha.FullName)
			assert.Equal(t, "first", alpha.Description)
			assert.Equal(t, "Go", alpha.Language)
			assert.Equal(t, 5, alpha.StarCount)
			assert.Equal(t, 1, alpha.ForkCount)
			assert.Equal(t, "octo", alpha.OwnerLogin)
			assert.Equal(t, "https://github.com/octo/alpha", alpha.URL)
			assert.Equal(t, 2024, alpha.UpdatedAt.Year())

			assert.True(t, repos[1].IsFork)
			assert.True(t, repos[1].Disabled)
			assert.Empty(t, repos[1].Description)
		})
	}
}

func TestGitHubGateway_FetchUserRepos_TransportFailure(t *testing.T) {
	gateway, server := setupTestGateway(t, http.NotFoundHandler(), false)
	server.Close()

	repos, err := gateway.FetchUserRepos(context.Background(), "octo")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, repos)
}

func TestGitHubGateway_FetchOrganizations(t *testing.T) {
	testCases := []struct {
		name        string
		withGraphQL bool
		graphqlBody string
		expected    []string
	}{
		{
			name:        "graphql happy path",
			withGraphQL: true,
			graphqlBody: `{"data":{"user":{"organizations":{"nodes":[{"login":"acme"},{"login":"globex"}]}}}}`,
			expected:    []string{"acme", "globex"},
		},
		{
			name:        "graphql error falls back to rest",
			withGraphQL: true,
			graphqlBody: `{"errors":[{"message":"Something went wrong"}]}`,
			expected:    []string{"rest-org"},
		},
		{
			name:     "no token uses rest",
			expected: []string{"rest-org"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.graphqlBody)
			})
			mux.HandleFunc("/users/octo/orgs", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `[{"login":"rest-org"}]`)
			})
			gateway, server := setupTestGateway(t, mux, tc.withGraphQL)
			defer server.Close()

			orgs, err := gateway.FetchOrganizations(context.Background(), "octo")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, orgs)
		})
	}
}

func TestGitHubGateway_FetchOrgRepos(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orgs/acme/repos" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		fmt.Fprint(w, `[{"name":"tool","full_name":"acme/tool","owner":{"login":"acme"}}]`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler), false)
	defer server.Close()

	repos, err := gateway.FetchOrgRepos(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "acme", repos[0].OwnerLogin)

	_, err = gateway.FetchOrgRepos(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestNewGitHubGateway(t *testing.T) {
	g, err := NewGitHubGateway("https://ghe.example.com/api/v3", "", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", g.restClient.BaseURL.String())
	assert.Nil(t, g.graphqlClient)
	assert.Greater(t, g.restClient.Client().Timeout, rateLimitSleepLimit)

	g, err = NewGitHubGateway("", "token", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, g.restClient.BaseURL.String())
	assert.NotNil(t, g.graphqlClient)
}
