// Package sched implements a FIFO process-scheduling simulation. A
// ProcessQueue holds the processes waiting to run and a Controller dequeues
// and executes them one at a time, driven by events on a simulation engine.
package sched

import (
	"fmt"
	"sync"

	"github.com/schedlab/fifosim/sim"
)

// HookPosQueuePush marks when a record is enqueued.
var HookPosQueuePush = &sim.HookPos{Name: "Queue Push"}

// HookPosQueuePop marks when a record is dequeued.
var HookPosQueuePop = &sim.HookPos{Name: "Queue Pop"}

// A ProcessRecord identifies one process waiting in, or dequeued from, the
// ready queue. The ID is derived from the sequence number, as in "P12".
type ProcessRecord struct {
	ID        string
	SeqNumber int
}

// A QueueObserver is notified with a fresh snapshot after every enqueue and
// every successful dequeue.
type QueueObserver interface {
	QueueChanged(records []ProcessRecord)
}

// A ProcessQueue is the FIFO ready queue of the simulation. It owns the
// session's process sequence counter: the counter strictly increases with
// each enqueue and numbers are never reused.
//
// The queue is safe for concurrent use. The engine goroutine is the only
// mutator during a run, but monitoring goroutines read snapshots at any time.
type ProcessQueue struct {
	sim.HookableBase

	lock          sync.Mutex
	name          string
	records       []ProcessRecord
	nextSeqNumber int
	observers     []QueueObserver
}

// NewProcessQueue creates an empty ProcessQueue.
func NewProcessQueue(name string) *ProcessQueue {
	sim.NameMustBeValid(name)

	return &ProcessQueue{name: name}
}

// Name returns the name of the queue.
func (q *ProcessQueue) Name() string {
	return q.name
}

// AddObserver registers an observer to be notified of content changes.
func (q *ProcessQueue) AddObserver(o QueueObserver) {
	q.lock.Lock()
	q.observers = append(q.observers, o)
	q.lock.Unlock()
}

// Enqueue creates a process record with the next sequence number and appends
// it at the tail. It always succeeds and returns the created record.
func (q *ProcessQueue) Enqueue() ProcessRecord {
	q.lock.Lock()
	q.nextSeqNumber++
	record := ProcessRecord{
		ID:        fmt.Sprintf("P%d", q.nextSeqNumber),
		SeqNumber: q.nextSeqNumber,
	}
	q.records = append(q.records, record)
	snapshot := q.snapshotLocked()
	q.lock.Unlock()

	q.InvokeHook(sim.HookCtx{
		Domain: q,
		Pos:    HookPosQueuePush,
		Item:   record,
		Detail: len(snapshot),
	})
	q.notifyObservers(snapshot)

	return record
}

// Dequeue removes and returns the head record. The second return value is
// false when the queue is empty, which is a normal condition, not an error.
func (q *ProcessQueue) Dequeue() (ProcessRecord, bool) {
	q.lock.Lock()
	if len(q.records) == 0 {
		q.lock.Unlock()
		return ProcessRecord{}, false
	}

	record := q.records[0]
	q.records = q.records[1:]
	snapshot := q.snapshotLocked()
	q.lock.Unlock()

	q.InvokeHook(sim.HookCtx{
		Domain: q,
		Pos:    HookPosQueuePop,
		Item:   record,
		Detail: len(snapshot),
	})
	q.notifyObservers(snapshot)

	return record, true
}

// Records returns a read-only snapshot of the queue contents, oldest first.
func (q *ProcessQueue) Records() []ProcessRecord {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.snapshotLocked()
}

// IsEmpty returns true if no record is waiting in the queue.
func (q *ProcessQueue) IsEmpty() bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.records) == 0
}

// Size returns the number of records waiting in the queue.
func (q *ProcessQueue) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.records)
}

func (q *ProcessQueue) snapshotLocked() []ProcessRecord {
	snapshot := make([]ProcessRecord, len(q.records))
	copy(snapshot, q.records)
	return snapshot
}

func (q *ProcessQueue) notifyObservers(snapshot []ProcessRecord) {
	q.lock.Lock()
	observers := make([]QueueObserver, len(q.observers))
	copy(observers, q.observers)
	q.lock.Unlock()

	for _, o := range observers {
		o.QueueChanged(snapshot)
	}
}
