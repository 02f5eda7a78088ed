package git

// RepositoryInfo represents information about the workspace repository
type RepositoryInfo struct {
	Path      string `json:"path"`
	Branch    string `json:"branch,omitempty"`
	Remote    string `json:"remote,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
	IsClean   bool   `json:"clean"`
}

// SyncResult describes what a Sync did
type SyncResult struct {
	Branch    string `json:"branch,omitempty"`
	Remote    string `json:"remote,omitempty"`
	Committed bool   `json:"committed"`
	Commit    string `json:"commit,omitempty"`
	Pulled    bool   `json:"pulled"`
	Pushed    bool   `json:"pushed"`
}

// Settings are the user-provided sync preferences
type Settings struct {
	AuthorName  string
	AuthorEmail string
	// Remote is the preferred remote name; origin or the first remote when empty
	Remote string
}
