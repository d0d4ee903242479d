// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/sawaday/gh-log/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchPullRequests returns all PRs authored by the token's user and
	// created within the given month (YYYY-MM).
	FetchPullRequests(ctx context.Context, month string) ([]domain.PullRequest, error)
	// FetchReviewedCount counts PRs the token's user reviewed that month.
	FetchReviewedCount(ctx context.Context, month string) (int, error)
	// CheckAuth verifies the token works and returns the authenticated login.
	CheckAuth(ctx context.Context) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// prNode is the per-PR selection inside the search query: the full field set
// the analytics need, including line/file counts and review events.
type prNode struct {
	Number     githubv4.Int
	Title      githubv4.String
	Body       githubv4.String
	Repository struct {
		NameWithOwner githubv4.String
	}
	CreatedAt    githubv4.DateTime
	UpdatedAt    githubv4.DateTime
	Additions    githubv4.Int
	Deletions    githubv4.Int
	ChangedFiles githubv4.Int
	Reviews      struct {
		Nodes []struct {
			Author struct {
				Login githubv4.String
			}
		}
	} `graphql:"reviews(first: 10)"`
}

// prSearchQuery pages through PRs authored in the requested month.
type prSearchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Typename    string `graphql:"__typename"`
			PullRequest prNode `graphql:"... on PullRequest"`
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// reviewedCountQuery only needs issueCount, which is already the total across
// all pages, so a single request suffices.
type reviewedCountQuery struct {
	Search struct {
		IssueCount githubv4.Int
	} `graphql:"search(query: $query, type: ISSUE, first: 1)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchPullRequests pages through the search API with a cursor so busy months
// spanning multiple pages do not drop results.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, month string) ([]domain.PullRequest, error) {
	g.logger.Printf("[1/2] Fetching PRs created in %s...", month)
	query := fmt.Sprintf("is:pr author:@me created:%s", month)
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	var prs []domain.PullRequest
	for {
		var q prSearchQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for PRs: %w", err)
		}

		for _, node := range q.Search.Nodes {
			if node.Typename != "PullRequest" {
				continue
			}
			prs = append(prs, toDomain(node.PullRequest))
		}

		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of pull requests...")
	}
	g.logger.Printf("Completed fetching %d PRs.", len(prs))
	return prs, nil
}

// FetchReviewedCount counts PRs reviewed by the current user in the month.
func (g *GitHubGateway) FetchReviewedCount(ctx context.Context, month string) (int, error) {
	g.logger.Printf("[2/2] Fetching reviewed PR count for %s...", month)
	query := fmt.Sprintf("is:pr reviewed-by:@me created:%s", month)
	variables := map[string]interface{}{
		"query": githubv4.String(query),
	}

	var q reviewedCountQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for reviewed count: %w", err)
	}
	g.logger.Printf("Completed fetching reviewed PR count: %d.", int(q.Search.IssueCount))
	return int(q.Search.IssueCount), nil
}

// CheckAuth hits the REST API for the authenticated user, which both
// validates the token and reveals whose data will be fetched.
func (g *GitHubGateway) CheckAuth(ctx context.Context) (string, error) {
	user, _, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to verify GitHub authentication: %w", err)
	}
	return user.GetLogin(), nil
}

func toDomain(pr prNode) domain.PullRequest {
	reviews := domain.Reviews{Nodes: make([]domain.Review, 0, len(pr.Reviews.Nodes))}
	for _, review := range pr.Reviews.Nodes {
		reviews.Nodes = append(reviews.Nodes, domain.Review{
			Author: domain.Author{Login: string(review.Author.Login)},
		})
	}
	return domain.PullRequest{
		Number:       int(pr.Number),
		Title:        string(pr.Title),
		Body:         string(pr.Body),
		Repository:   domain.Repository{NameWithOwner: string(pr.Repository.NameWithOwner)},
		CreatedAt:    pr.CreatedAt.Time,
		UpdatedAt:    pr.UpdatedAt.Time,
		Additions:    int(pr.Additions),
		Deletions:    int(pr.Deletions),
		ChangedFiles: int(pr.ChangedFiles),
		Reviews:      reviews,
	}
}
