package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fallow-md/fallow"
	"github.com/fallow-md/fallow/pkg/core"
	"github.com/fallow-md/fallow/pkg/prompt"
	"github.com/fallow-md/fallow/pkg/schedule"
)

func fixedClock(day int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 7, day, 9, 0, 0, 0, time.UTC)
	}
}

// prepareVault seeds a vault with one plain note.
func prepareVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := "---\ntitle: Morning pages\n---\nWrite first, edit later.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "morning.md"), []byte(content), 0644))
	return dir
}

func TestAutoInitCreatesSettings(t *testing.T) {
	dir := t.TempDir()

	svc, err := fallow.New(dir, fallow.WithAutoInit(true))
	require.NoError(t, err)

	settingsPath := filepath.Join(dir, ".fallow", "settings.yml")
	_, err = os.Stat(settingsPath)
	require.NoError(t, err, "auto-init should create the settings file")

	require.NotEmpty(t, svc.Settings().Methods)

	// Reopening without auto-init loads the persisted settings.
	svc2, err := fallow.New(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.Settings().Methods[0].Name, svc2.Settings().Methods[0].Name)
}

func TestUninitializedVaultErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := fallow.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallow init")
}

func TestFullLifecycle(t *testing.T) {
	dir := prepareVault(t)
	ctx := context.Background()

	script := prompt.NewScript().WillSelect("Flowed")

	var messages []string
	svc, err := fallow.New(dir,
		fallow.WithAutoInit(true),
		fallow.WithPrompter(script),
		fallow.WithNotifier(schedule.NotifierFunc(func(msg string) {
			messages = append(messages, msg)
		})),
		fallow.WithClock(fixedClock(1)),
	)
	require.NoError(t, err)

	// Onboard. The default settings have one method and no contexts, so
	// no prompt fires.
	require.NoError(t, svc.Onboard(ctx, "morning"))

	n, err := svc.Repo.Get(ctx, "morning")
	require.NoError(t, err)
	// YAML reads whole numbers back as ints, so compare by value.
	assert.EqualValues(t, 1, n.Metadata["interval"])
	assert.EqualValues(t, 2.5, n.Metadata["ease"])
	assert.Equal(t, "Morning pages", n.Metadata["title"], "existing frontmatter must survive")

	// A day later the note is due.
	svc, err = fallow.New(dir,
		fallow.WithPrompter(script),
		fallow.WithClock(fixedClock(3)),
	)
	require.NoError(t, err)

	head, ok, err := svc.NextDue(ctx)
	require.NoError(t, err)
	require.True(t, ok, "onboarded note should be due")
	assert.Equal(t, "morning", head.Note.ID)

	// Review it: "Flowed" scores 5, growing the interval to 2.6.
	require.NoError(t, svc.Review(ctx, "morning"))

	n, err = svc.Repo.Get(ctx, "morning")
	require.NoError(t, err)
	assert.Equal(t, 2.6, n.Metadata["interval"])
	assert.Equal(t, 2.6, n.Metadata["ease"])

	// Freshly reviewed, nothing is due.
	_, ok, err = svc.NextDue(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Remove strips every scheduling field but leaves the note intact.
	require.NoError(t, svc.Remove(ctx, "morning"))

	n, err = svc.Repo.Get(ctx, "morning")
	require.NoError(t, err)
	for _, key := range []string{"interval", "ease", "last-reviewed", "method", "contexts"} {
		assert.NotContains(t, n.Metadata, key)
	}
	assert.Equal(t, "Morning pages", n.Metadata["title"])
	assert.Contains(t, n.Content, "Write first")
}

func TestCancelledOnboardLeavesVaultUntouched(t *testing.T) {
	dir := prepareVault(t)
	ctx := context.Background()

	svc, err := fallow.New(dir,
		fallow.WithAutoInit(true),
		fallow.WithPrompter(prompt.NewScript().WillCancelSelectMany()),
	)
	require.NoError(t, err)

	// A registered context makes onboarding prompt for membership.
	require.NoError(t, svc.Settings().AddContext(schedule.ReviewContext{Name: "journal", Active: true}))

	before, err := os.ReadFile(filepath.Join(dir, "morning.md"))
	require.NoError(t, err)

	err = svc.Onboard(ctx, "morning")
	require.True(t, errors.Is(err, schedule.ErrCancelled), "expected ErrCancelled, got: %v", err)

	after, err := os.ReadFile(filepath.Join(dir, "morning.md"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "cancelled onboard must not touch the file")
}

func TestWatchEmitsVaultEvents(t *testing.T) {
	dir := prepareVault(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := fallow.New(dir, fallow.WithAutoInit(true))
	require.NoError(t, err)

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	require.NoError(t, svc.Repo.Save(context.Background(), core.Note{
		ID:      "evening",
		Content: "Reflect.\n",
	}))

	select {
	case ev := <-events:
		assert.Equal(t, "evening", ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for vault event")
	}
}
