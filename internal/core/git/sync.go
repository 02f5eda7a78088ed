// Package git synchronizes the workspace with its git remote.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/aki/mknote/internal/core/logger"
)

var (
	// ErrNotRepository is returned when the workspace is not a git repository
	ErrNotRepository = errors.New("workspace is not a git repository")
	// ErrNoRemote is returned when the repository has no remote to sync with
	ErrNoRemote = errors.New("repository has no remote")
)

// CloneDir is the directory Setup clones into, under the chosen parent.
const CloneDir = "notes"

// Location provides the workspace root.
type Location interface {
	Location() string
}

// Syncer commits, pulls and pushes the workspace.
type Syncer struct {
	loc      Location
	settings func() Settings
	log      logger.Logger
}

// NewSyncer creates a Syncer. settings is consulted on every call so that
// configuration reloads take effect.
func NewSyncer(loc Location, settings func() Settings, log logger.Logger) *Syncer {
	if settings == nil {
		settings = func() Settings { return Settings{} }
	}
	return &Syncer{
		loc:      loc,
		settings: settings,
		log:      logger.Component(log, "git"),
	}
}

func (s *Syncer) open() (*git.Repository, string, error) {
	root := s.loc.Location()
	if root == "" {
		return nil, "", fmt.Errorf("%w: workspace location is not set", ErrNotRepository)
	}
	repo, err := git.PlainOpen(root)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, root, fmt.Errorf("%w: %s", ErrNotRepository, root)
		}
		return nil, root, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, root, nil
}

// Sync stages every change, commits when the tree is dirty, then pulls and
// pushes the current branch. Already up-to-date pulls and pushes are not
// errors.
func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	repo, root, err := s.open()
	if err != nil {
		return nil, err
	}
	settings := s.settings()
	log := s.log.With("path", root)
	result := &SyncResult{}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("failed to stage changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if !status.IsClean() {
		hash, err := wt.Commit(time.Now().Format(time.DateTime), &git.CommitOptions{
			Author: &object.Signature{
				Name:  settings.AuthorName,
				Email: settings.AuthorEmail,
				When:  time.Now(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		result.Committed = true
		result.Commit = hash.String()
		log.Info("committed local changes", "commit", hash.String())
	}

	head, err := repo.Head()
	if err != nil {
		return result, fmt.Errorf("failed to get HEAD: %w", err)
	}
	branch := head.Name()
	result.Branch = branch.Short()

	remote, err := pickRemote(repo, settings.Remote)
	if err != nil {
		return result, err
	}
	result.Remote = remote

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: branch,
		SingleBranch:  true,
	})
	switch {
	case err == nil:
		result.Pulled = true
	case errors.Is(err, git.NoErrAlreadyUpToDate),
		errors.Is(err, plumbing.ErrReferenceNotFound),
		errors.Is(err, transport.ErrEmptyRemoteRepository):
		// Nothing to merge; a new branch or an empty remote gets created by the push
	default:
		return result, fmt.Errorf("failed to pull %s from %s: %w", result.Branch, remote, err)
	}

	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", branch, branch))
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	switch {
	case err == nil:
		result.Pushed = true
	case errors.Is(err, git.NoErrAlreadyUpToDate):
	default:
		return result, fmt.Errorf("failed to push %s to %s: %w", result.Branch, remote, err)
	}

	log.Info("sync finished", "branch", result.Branch, "remote", remote, "pulled", result.Pulled, "pushed", result.Pushed)
	return result, nil
}

// pickRemote returns preferred if it exists, else origin, else the first
// remote by name.
func pickRemote(repo *git.Repository, preferred string) (string, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return "", fmt.Errorf("failed to list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	if len(names) == 0 {
		return "", ErrNoRemote
	}
	slices.Sort(names)

	if preferred != "" {
		if slices.Contains(names, preferred) {
			return preferred, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNoRemote, preferred)
	}
	if slices.Contains(names, git.DefaultRemoteName) {
		return git.DefaultRemoteName, nil
	}
	return names[0], nil
}

// Setup clones url into parent/notes and returns the new workspace location.
func (s *Syncer) Setup(ctx context.Context, url, parent string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("repository url is required")
	}
	abs, err := filepath.Abs(parent)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", parent, err)
	}
	location := filepath.Join(abs, CloneDir)

	s.log.Info("cloning", "url", url, "path", location)
	if _, err := git.PlainCloneContext(ctx, location, false, &git.CloneOptions{URL: url}); err != nil {
		return "", fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return location, nil
}

// Status returns information about the workspace repository
func (s *Syncer) Status() (*RepositoryInfo, error) {
	repo, root, err := s.open()
	if err != nil {
		return nil, err
	}
	info := &RepositoryInfo{Path: root}

	if ref, err := repo.Head(); err == nil {
		info.Branch = ref.Name().Short()
	}

	if name, err := pickRemote(repo, s.settings().Remote); err == nil {
		info.Remote = name
		if remote, err := repo.Remote(name); err == nil && len(remote.Config().URLs) > 0 {
			info.RemoteURL = remote.Config().URLs[0]
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	info.IsClean = status.IsClean()
	return info, nil
}
