package repo

import "time"

// Repository is the remote descriptor returned by the directory service.
// It is read-only metadata: the sync engine never mutates it.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description,omitempty"`
	CloneURL      string    `json:"clone_url"`
	SSHURL        string    `json:"ssh_url"`
	DefaultBranch string    `json:"default_branch"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	Archived      bool      `json:"archived"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
	Topics        []string  `json:"topics,omitempty"`
}

// URL returns the clone endpoint for the requested transport.
func (r Repository) URL(ssh bool) string {
	if ssh {
		return r.SSHURL
	}
	return r.CloneURL
}
