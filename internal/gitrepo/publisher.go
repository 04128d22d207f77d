// Package gitrepo publishes an exported artifact to a git repository via
// the external git tool. The core pipeline only depends on the Publisher
// interface, so it can be exercised without running git at all.
package gitrepo

import (
	"fmt"
	"log"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// Publisher stages, commits and pushes an artifact in a repository.
type Publisher interface {
	IsRepository() bool
	Init() error
	Stage(file string) error
	Commit(message string) error
	Push(remote, branch string) error
}

// PublishError reports a failed git operation along with the tool output.
type PublishError struct {
	Op     string
	Output string
	Err    error
}

func (e *PublishError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git %s failed: %v: %s", e.Op, e.Err, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("git %s failed: %v", e.Op, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// Exec-backed publisher
// ---------------------------------------------------------------------------

// ExecPublisher runs the git binary against a repository directory.
type ExecPublisher struct {
	RepoPath string
	gitPath  string
}

// NewExecPublisher locates the git binary and returns a publisher rooted
// at repoPath.
func NewExecPublisher(repoPath string) (*ExecPublisher, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH")
	}
	return &ExecPublisher{RepoPath: repoPath, gitPath: path}, nil
}

// IsRepository reports whether RepoPath is inside a git repository.
func (p *ExecPublisher) IsRepository() bool {
	_, err := p.run("rev-parse", "--git-dir")
	return err == nil
}

// Init initializes a new repository at RepoPath.
func (p *ExecPublisher) Init() error {
	out, err := p.run("init")
	if err != nil {
		return &PublishError{Op: "init", Output: out, Err: err}
	}
	log.Printf("initialized git repository in %s", p.RepoPath)
	return nil
}

// Stage adds file to the staging area.
func (p *ExecPublisher) Stage(file string) error {
	out, err := p.run("add", file)
	if err != nil {
		return &PublishError{Op: "add", Output: out, Err: err}
	}
	return nil
}

// Commit records the staged changes.
func (p *ExecPublisher) Commit(message string) error {
	out, err := p.run("commit", "-m", message)
	if err != nil {
		return &PublishError{Op: "commit", Output: out, Err: err}
	}
	return nil
}

// Push sends commits to the remote branch.
func (p *ExecPublisher) Push(remote, branch string) error {
	out, err := p.run("push", remote, branch)
	if err != nil {
		return &PublishError{Op: "push", Output: out, Err: err}
	}
	return nil
}

func (p *ExecPublisher) run(args ...string) (string, error) {
	cmd := exec.Command(p.gitPath, args...)
	cmd.Dir = p.RepoPath
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// ---------------------------------------------------------------------------
// Publish flow
// ---------------------------------------------------------------------------

// Publish runs the full publish step: init the repository if needed, stage
// the artifact, commit it, and optionally push. Init, stage and commit
// failures are fatal to the caller; a push failure is downgraded to a
// warning and the artifact stays committed locally.
func Publish(p Publisher, file, message string, push bool, remote, branch string) error {
	if !p.IsRepository() {
		if err := p.Init(); err != nil {
			return err
		}
	}
	if err := p.Stage(file); err != nil {
		return err
	}
	if err := p.Commit(message); err != nil {
		return err
	}

	if push {
		if err := p.Push(remote, branch); err != nil {
			log.Printf("warning: could not push to %s/%s: %v", remote, branch, err)
			log.Printf("the artifact remains committed locally; configure the remote and push manually")
		}
	}
	return nil
}

// CommitMessage builds the commit message for one publish: the configured
// subject plus a body noting what was processed.
func CommitMessage(subject, source string, count int, filters map[string]string) string {
	var b strings.Builder
	b.WriteString(subject)
	fmt.Fprintf(&b, "\n\nProcessed %d log entries from %s", count, source)

	if len(filters) > 0 {
		keys := make([]string, 0, len(filters))
		for k := range filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, filters[k]))
		}
		fmt.Fprintf(&b, "\nFilters applied: %s", strings.Join(pairs, ", "))
	}

	fmt.Fprintf(&b, "\nGenerated at: %s", time.Now().Format(time.RFC3339))
	return b.String()
}
