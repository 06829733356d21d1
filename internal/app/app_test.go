package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/home"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/welcome"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/words"
)

func openServices(t *testing.T) screen.Services {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.LibraryRepo().Save(context.Background(), words.Library{
		Name:  "pets",
		Words: []words.Word{words.New("cat", "猫")},
	}))
	return NewServices(st, config.DefaultConfig(), nil)
}

func TestAfterAnswerHook(t *testing.T) {
	svc := openServices(t)
	ctx := context.Background()

	e := svc.NewEngine("pets", session.ModeDictation)
	st := e.PickNext(ctx, "pets")
	require.True(t, st.HasWord)
	st = e.SubmitAnswer(ctx, "cat")
	require.NoError(t, st.Err)

	streak, err := svc.Stats.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "the first answer of the day settles the streak")

	all, err := svc.Achievements.All(ctx)
	require.NoError(t, err)
	byID := map[string]store.Achievement{}
	for _, a := range all {
		byID[a.ID] = a
	}
	assert.True(t, byID[achievements.FirstWord].Unlocked)
	assert.True(t, byID[achievements.PerfectDay].Unlocked)
	assert.False(t, byID[achievements.WordMaster].Unlocked)
}

func TestOpenLog(t *testing.T) {
	logger, closeFn, err := OpenLog(config.Config{})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	logger.Printf("discarded")
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "wordiz.log")
	logger, closeFn, err = OpenLog(config.Config{LogFile: path})
	require.NoError(t, err)
	logger.Printf("hello")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello")
}

func TestNewAppModelFirstScreen(t *testing.T) {
	svc := openServices(t)

	m := newAppModel(svc, Options{})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	m = newAppModel(svc, Options{Splash: true})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	m = newAppModel(svc, Options{Practice: true, Library: "pets", Mode: session.ModeReview})
	assert.IsType(t, &practice.PracticeScreen{}, m.router.Active())
}

func TestHeaderKeepsLastGoodValues(t *testing.T) {
	m := newAppModel(openServices(t), Options{})

	next, _ := m.Update(headerLoadedMsg{Stats: layout.HeaderStats{Today: 3, Goal: 50, Streak: 2}})
	m = next.(AppModel)
	next, _ = m.Update(headerLoadedMsg{Err: errors.New("locked")})
	m = next.(AppModel)

	assert.Equal(t, layout.HeaderStats{Today: 3, Goal: 50, Streak: 2}, m.header)
}

func TestLoadHeader(t *testing.T) {
	m := newAppModel(openServices(t), Options{})
	msg, ok := m.loadHeader()().(headerLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, 50, msg.Stats.Goal)
}

func TestEscPopsWithoutBackHandler(t *testing.T) {
	m := newAppModel(openServices(t), Options{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the root screen does nothing")

	m.router.Push(home.New(m.services))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestEscUsesBackHandler(t *testing.T) {
	m := newAppModel(openServices(t), Options{Practice: true, Library: "pets"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	// Nothing was answered, so the session just closes.
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
