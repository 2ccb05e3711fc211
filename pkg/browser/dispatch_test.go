package browser

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagedriver/pkg/logging"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *int) {
	t.Helper()
	m, created := stubManager(t)
	d := NewDispatcher(m, logging.NewLogger("test"))
	t.Cleanup(d.Close)
	return d, created
}

func TestSubmitExecutesInSubmissionOrder(t *testing.T) {
	d, _ := newTestDispatcher(t)

	// Block the worker so subsequent submissions pile up in the queue.
	running := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = d.Submit(func(*Session) (any, error) {
			close(running)
			<-release
			return nil, nil
		})
	}()
	<-running

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	const n = 5
	for i := 1; i <= n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Submit(func(*Session) (any, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil, nil
			})
		}()

		// Wait until this submission is actually queued before making
		// the next one, pinning down the submission order.
		require.Eventually(t, func() bool {
			return d.pending() == i
		}, time.Second, time.Millisecond)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestSubmitDeliversOwnResult(t *testing.T) {
	d, _ := newTestDispatcher(t)

	payload, err := d.Submit(func(*Session) (any, error) {
		return "hello", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", payload)
}

func TestSubmitLazilyCreatesTargetOnce(t *testing.T) {
	d, created := newTestDispatcher(t)

	for i := 0; i < 3; i++ {
		_, err := d.Submit(func(*Session) (any, error) { return nil, nil })
		require.NoError(t, err)
	}

	assert.Equal(t, 1, *created)
}

func TestFatalErrorTearsDownAndFailsQueued(t *testing.T) {
	d, created := newTestDispatcher(t)

	running := make(chan struct{})
	release := make(chan struct{})

	fatalDone := make(chan error, 1)
	go func() {
		_, err := d.Submit(func(*Session) (any, error) {
			close(running)
			<-release
			return nil, Errorf(KindSessionFatal, "target crashed")
		})
		fatalDone <- err
	}()
	<-running

	queuedDone := make(chan error, 1)
	go func() {
		_, err := d.Submit(func(*Session) (any, error) { return nil, nil })
		queuedDone <- err
	}()
	require.Eventually(t, func() bool { return d.pending() == 1 }, time.Second, time.Millisecond)

	close(release)

	err := <-fatalDone
	require.Error(t, err)
	assert.Equal(t, KindSessionFatal, KindOf(err))

	err = <-queuedDone
	require.Error(t, err, "queued request must fail fast after a fatal error")
	assert.Equal(t, KindSessionFatal, KindOf(err))

	assert.False(t, d.manager.HasTarget(), "fatal error must tear the target down")

	// A fresh submission triggers recreation.
	_, err = d.Submit(func(*Session) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, *created)
}

func TestNonFatalErrorKeepsTarget(t *testing.T) {
	d, created := newTestDispatcher(t)

	_, err := d.Submit(func(*Session) (any, error) {
		return nil, Errorf(KindNotFound, "element not found: #missing")
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	assert.True(t, d.manager.HasTarget())

	_, err = d.Submit(func(*Session) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, *created)
}

func TestSubmitAfterCloseFails(t *testing.T) {
	m, _ := stubManager(t)
	d := NewDispatcher(m, logging.NewLogger("test"))
	d.Close()

	_, err := d.Submit(func(*Session) (any, error) { return nil, nil })
	require.Error(t, err)
	assert.Equal(t, KindSessionFatal, KindOf(err))
}

func TestCloseTearsDownTarget(t *testing.T) {
	m, _ := stubManager(t)
	d := NewDispatcher(m, logging.NewLogger("test"))

	_, err := d.Submit(func(*Session) (any, error) { return nil, nil })
	require.NoError(t, err)
	require.True(t, m.HasTarget())

	d.Close()
	assert.False(t, m.HasTarget())
}

func TestCloseIdempotent(t *testing.T) {
	m, _ := stubManager(t)
	d := NewDispatcher(m, logging.NewLogger("test"))
	d.Close()
	d.Close()
}
