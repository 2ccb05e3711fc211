package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagedriver/pkg/logging"
)

// stubManager returns a manager whose launcher fabricates bare sessions
// and counts creations, so lifecycle behavior is observable without a
// real browser.
func stubManager(t *testing.T) (*SessionManager, *int) {
	t.Helper()

	m := NewSessionManager(SessionOptions{Headless: true}, logging.NewLogger("test"))
	created := 0
	m.launch = func() (*Session, error) {
		created++
		return &Session{CreatedAt: time.Now(), CurrentURL: "about:blank"}, nil
	}
	return m, &created
}

func TestAcquireTargetCreatesLazily(t *testing.T) {
	m, created := stubManager(t)
	assert.Equal(t, 0, *created)
	assert.False(t, m.HasTarget())

	session, err := m.AcquireTarget()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 1, *created)
	assert.True(t, m.HasTarget())
}

func TestAcquireTargetReusesLiveTarget(t *testing.T) {
	m, created := stubManager(t)

	first, err := m.AcquireTarget()
	require.NoError(t, err)
	second, err := m.AcquireTarget()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, *created)
}

func TestAcquireTargetRecreatesAfterTeardown(t *testing.T) {
	m, created := stubManager(t)

	_, err := m.AcquireTarget()
	require.NoError(t, err)

	m.Teardown()
	assert.False(t, m.HasTarget())

	_, err = m.AcquireTarget()
	require.NoError(t, err)
	assert.Equal(t, 2, *created)
}

func TestTeardownIdempotent(t *testing.T) {
	m, _ := stubManager(t)

	_, err := m.AcquireTarget()
	require.NoError(t, err)

	m.Teardown()
	m.Teardown()
	assert.False(t, m.HasTarget())
}

func TestAcquireTargetCreationFailureIsFatalAndRetried(t *testing.T) {
	m := NewSessionManager(SessionOptions{}, logging.NewLogger("test"))

	attempts := 0
	m.launch = func() (*Session, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("chromium refused to start")
		}
		return &Session{CreatedAt: time.Now()}, nil
	}

	_, err := m.AcquireTarget()
	require.Error(t, err)
	assert.Equal(t, KindSessionFatal, KindOf(err))
	assert.False(t, m.HasTarget(), "failed creation must leave the manager empty")

	// The next acquisition retries creation rather than caching failure.
	_, err = m.AcquireTarget()
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDefaultViewportApplied(t *testing.T) {
	m := NewSessionManager(SessionOptions{}, logging.NewLogger("test"))
	assert.Equal(t, DefaultViewportWidth, m.opts.Viewport.Width)
	assert.Equal(t, DefaultViewportHeight, m.opts.Viewport.Height)
}
