package gitrepo

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher records calls instead of invoking git.
type fakePublisher struct {
	isRepo    bool
	calls     []string
	initErr   error
	stageErr  error
	commitErr error
	pushErr   error
}

func (f *fakePublisher) IsRepository() bool { return f.isRepo }

func (f *fakePublisher) Init() error {
	f.calls = append(f.calls, "init")
	return f.initErr
}

func (f *fakePublisher) Stage(file string) error {
	f.calls = append(f.calls, "stage "+file)
	return f.stageErr
}

func (f *fakePublisher) Commit(message string) error {
	f.calls = append(f.calls, "commit")
	return f.commitErr
}

func (f *fakePublisher) Push(remote, branch string) error {
	f.calls = append(f.calls, "push "+remote+"/"+branch)
	return f.pushErr
}

func TestPublishInitsWhenNotARepo(t *testing.T) {
	f := &fakePublisher{isRepo: false}

	err := Publish(f, "out.csv", "msg", true, "origin", "main")

	require.NoError(t, err)
	assert.Equal(t, []string{"init", "stage out.csv", "commit", "push origin/main"}, f.calls)
}

func TestPublishSkipsInitInsideRepo(t *testing.T) {
	f := &fakePublisher{isRepo: true}

	err := Publish(f, "out.csv", "msg", false, "origin", "main")

	require.NoError(t, err)
	assert.Equal(t, []string{"stage out.csv", "commit"}, f.calls)
}

func TestPublishFatalFailures(t *testing.T) {
	tests := []struct {
		name string
		fake *fakePublisher
		want []string
	}{
		{
			name: "init failure stops before staging",
			fake: &fakePublisher{initErr: errors.New("boom")},
			want: []string{"init"},
		},
		{
			name: "stage failure stops before commit",
			fake: &fakePublisher{isRepo: true, stageErr: errors.New("boom")},
			want: []string{"stage out.csv"},
		},
		{
			name: "commit failure stops before push",
			fake: &fakePublisher{isRepo: true, commitErr: errors.New("boom")},
			want: []string{"stage out.csv", "commit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Publish(tt.fake, "out.csv", "msg", true, "origin", "main")
			require.Error(t, err)
			assert.Equal(t, tt.want, tt.fake.calls)
		})
	}
}

func TestPublishPushFailureIsNonFatal(t *testing.T) {
	f := &fakePublisher{isRepo: true, pushErr: errors.New("no remote configured")}

	err := Publish(f, "out.csv", "msg", true, "origin", "main")

	// The push failed, but the publish as a whole did not.
	require.NoError(t, err)
	assert.Contains(t, f.calls, "commit")
	assert.Contains(t, f.calls, "push origin/main")
}

func TestCommitMessage(t *testing.T) {
	msg := CommitMessage("Add nginx log analysis", "access.log", 42, map[string]string{
		"url":    "/api",
		"status": "200",
	})

	assert.True(t, strings.HasPrefix(msg, "Add nginx log analysis\n\n"))
	assert.Contains(t, msg, "Processed 42 log entries from access.log")
	// Filters are listed deterministically.
	assert.Contains(t, msg, "Filters applied: status=200, url=/api")
	assert.Contains(t, msg, "Generated at: ")
}

func TestCommitMessageNoFilters(t *testing.T) {
	msg := CommitMessage("subject", "-", 1, nil)
	assert.NotContains(t, msg, "Filters applied")
}

func TestPublishErrorFormat(t *testing.T) {
	err := &PublishError{Op: "commit", Output: "nothing to commit\n", Err: errors.New("exit status 1")}

	assert.Equal(t, "git commit failed: exit status 1: nothing to commit", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "exit status 1")
}
