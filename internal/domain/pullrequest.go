// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository identifies the repo a pull request belongs to, as "owner/name".
type Repository struct {
	NameWithOwner string `json:"nameWithOwner"`
}

// Author is a lightweight representation of a GitHub user.
type Author struct {
	Login string `json:"login"`
}

// Review is a single review event. A reviewer who reviewed the same PR twice
// appears twice in the node list.
type Review struct {
	Author Author `json:"author"`
}

// Reviews wraps the list of review events attached to a pull request.
type Reviews struct {
	Nodes []Review `json:"nodes"`
}

// PullRequest is the raw record fetched from GitHub for one authored PR.
// The JSON tags match the GraphQL field casing so cached snapshots round-trip
// without translation.
type PullRequest struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Body         string     `json:"body,omitempty"`
	Repository   Repository `json:"repository"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	ChangedFiles int        `json:"changedFiles"`
	Reviews      Reviews    `json:"reviews"`
}

// LeadTime is the elapsed duration between a PR's creation and its last update.
func (pr PullRequest) LeadTime() time.Duration {
	return pr.UpdatedAt.Sub(pr.CreatedAt)
}
