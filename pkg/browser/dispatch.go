package browser

import (
	"sync"

	"github.com/google/uuid"

	"github.com/entrhq/pagedriver/pkg/logging"
)

// queueCapacity bounds the number of actions waiting behind the one in
// flight. Throughput is limited by action latency, not queue depth; an
// orchestrator that manages to fill this is already far behind.
const queueCapacity = 256

// Dispatcher serializes all access to the shared automation target. Any
// number of goroutines may call Submit concurrently; a single worker
// executes their actions one at a time in submission order, lazily
// acquiring the target from the SessionManager.
//
// There is no cancellation: once submitted, an action runs to completion
// or failure and its caller stays blocked until then. Timeouts belong to
// the individual actions.
type Dispatcher struct {
	manager *SessionManager
	log     *logging.Logger

	tasks chan *task
	done  chan struct{}

	mu         sync.Mutex
	closed     bool
	submitters sync.WaitGroup
	closeOnce  sync.Once
}

type task struct {
	id     string
	run    func(*Session) (any, error)
	result chan taskResult
}

type taskResult struct {
	payload any
	err     error
}

// NewDispatcher creates a dispatcher bound to a session manager and
// starts its worker.
func NewDispatcher(manager *SessionManager, log *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		manager: manager,
		log:     log,
		tasks:   make(chan *task, queueCapacity),
		done:    make(chan struct{}),
	}
	go d.worker()
	return d
}

// Submit enqueues an action and blocks until its result is ready. Results
// are delivered exactly once, only to the submitting caller.
func (d *Dispatcher) Submit(run func(*Session) (any, error)) (any, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, Errorf(KindSessionFatal, "service is shutting down")
	}
	d.submitters.Add(1)
	d.mu.Unlock()

	t := &task{
		id:     uuid.New().String()[:8],
		run:    run,
		result: make(chan taskResult, 1),
	}

	d.tasks <- t
	d.submitters.Done()

	r := <-t.result
	return r.payload, r.err
}

// worker is the single execution slot. It owns the only live reference to
// the Session between acquisition and task completion.
func (d *Dispatcher) worker() {
	defer close(d.done)

	for t := range d.tasks {
		if d.isClosed() {
			t.result <- taskResult{err: Errorf(KindSessionFatal, "service is shutting down")}
			continue
		}

		session, err := d.manager.AcquireTarget()
		if err != nil {
			d.log.Warnf("action %s aborted, target unavailable: %v", t.id, err)
			t.result <- taskResult{err: err}
			continue
		}

		d.log.Debugf("action %s executing", t.id)
		payload, err := t.run(session)

		if err != nil && IsFatal(err) {
			d.log.Warnf("action %s hit fatal target error: %v", t.id, err)
			d.manager.Teardown()
			t.result <- taskResult{payload: payload, err: err}
			d.failQueued()
			continue
		}

		t.result <- taskResult{payload: payload, err: err}
	}
}

// failQueued fails every action already waiting in the queue with a
// Session-Fatal error. Actions submitted afterwards find an empty manager
// and trigger recreation.
func (d *Dispatcher) failQueued() {
	for {
		select {
		case t := <-d.tasks:
			t.result <- taskResult{err: Errorf(KindSessionFatal, "automation target was lost; request aborted")}
		default:
			return
		}
	}
}

func (d *Dispatcher) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// pending reports the queue depth behind the in-flight action.
func (d *Dispatcher) pending() int {
	return len(d.tasks)
}

// Close stops intake, fails every queued action, waits for the in-flight
// action to finish, and tears down the target. Safe to call concurrently
// with Submit: submissions after Close fail immediately.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		// Wait for racing Submits to finish their enqueue, then stop
		// the worker. Queued tasks are failed by the worker's closed
		// check as it drains the channel.
		d.submitters.Wait()
		close(d.tasks)
		<-d.done

		d.manager.Teardown()
	})
}
