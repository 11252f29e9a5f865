package boot

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/provision"
)

func TestModelUpdate(t *testing.T) {
	t.Run("step message replaces the headline", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		updated, _ := m.Update(stepMsg("Preparing environment directory"))
		assert.Equal(t, "Preparing environment directory", updated.(model).message)
	})

	t.Run("line messages accumulate", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		updated, _ := m.Update(lineMsg("numpy=1.24.3"))
		updated, _ = updated.(model).Update(lineMsg("pandas=2.0.3"))
		assert.Equal(t, []string{"numpy=1.24.3", "pandas=2.0.3"}, updated.(model).lines)
	})

	t.Run("done without error quits cleanly", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		updated, cmd := m.Update(doneMsg{})
		fm := updated.(model)
		assert.True(t, fm.quitting)
		assert.NoError(t, fm.err)
		assert.Equal(t, "Provisioning complete", fm.message)
		require.NotNil(t, cmd)
	})

	t.Run("done with error carries it into the final model", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		updated, _ := m.Update(doneMsg{err: errors.New("no adequate runtime")})
		fm := updated.(model)
		assert.True(t, fm.quitting)
		assert.EqualError(t, fm.err, "no adequate runtime")
	})

	t.Run("quit keys abort with an error", func(t *testing.T) {
		for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
			m := initialModel(make(chan tea.Msg, 1))
			updated, cmd := m.Update(tea.KeyMsg{Type: key})
			fm := updated.(model)
			assert.True(t, fm.quitting)
			assert.ErrorIs(t, fm.err, errAborted,
				"an aborted run must not report success")
			require.NotNil(t, cmd)
		}
	})

	t.Run("quit mid-pipeline surfaces the abort to the caller", func(t *testing.T) {
		// Start returns the final model's err, so the abort error set
		// on the quit branch is what runSetup sees.
		m := initialModel(make(chan tea.Msg, 1))
		updated, _ := m.Update(stepMsg("Installing packages from the wheel cache"))
		updated, _ = updated.(model).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.EqualError(t, updated.(model).err, "provisioning aborted by user")
	})
}

func TestModelView(t *testing.T) {
	t.Run("error view shows the error", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		m.err = errors.New("offline install failed")
		assert.Contains(t, m.View(), "offline install failed")
	})

	t.Run("running view shows the message and lines", func(t *testing.T) {
		m := initialModel(make(chan tea.Msg, 1))
		m.message = "Verifying the environment"
		m.lines = []string{"numpy=1.24.3"}
		view := m.View()
		assert.Contains(t, view, "Verifying the environment")
		assert.Contains(t, view, "numpy=1.24.3")
	})
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan tea.Msg, 1)
	events <- stepMsg("Resolving Python runtime")
	m := initialModel(events)
	msg := m.waitForEvent()()
	assert.Equal(t, stepMsg("Resolving Python runtime"), msg)
}

func TestStartReporterWiring(t *testing.T) {
	// Start spins up a real tea program; here only the reporter
	// plumbing is exercised through the injected run function.
	orig := runFn
	defer func() { runFn = orig }()

	var gotOpts provision.Options
	runFn = func(opts provision.Options, rep provision.Reporter) (provision.Result, error) {
		gotOpts = opts
		rep.OnStep("step")
		rep.OnLine("line")
		return provision.Result{}, nil
	}

	events := make(chan tea.Msg, 16)
	go func() {
		_, _ = runFn(provision.Options{EnvName: "venv-alt"}, provision.Reporter{
			OnStep: func(s string) { events <- stepMsg(s) },
			OnLine: func(l string) { events <- lineMsg(l) },
		})
		events <- doneMsg{}
	}()

	assert.Equal(t, stepMsg("step"), <-events)
	assert.Equal(t, lineMsg("line"), <-events)
	assert.Equal(t, doneMsg{}, <-events)
	assert.Equal(t, "venv-alt", gotOpts.EnvName)
}
