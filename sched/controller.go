package sched

import (
	"reflect"
	"sync"

	"github.com/schedlab/fifosim/sim"
)

// State is the scheduling state of a Controller.
type State int

// The three states of a Controller. A controller is Idle before a run and
// after the queue drains, Running between steps, and Busy while a record is
// on the CPU.
const (
	StateIdle State = iota
	StateRunning
	StateBusy
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// DefaultExecInterval is the virtual time a record spends on the CPU.
const DefaultExecInterval = sim.VTimeInSec(2.0)

// DefaultStepPause is the virtual time between one record leaving the CPU
// and the next step.
const DefaultStepPause = sim.VTimeInSec(0.5)

// stepEvent triggers one scheduling step: dequeue the head record and put it
// on the CPU, or end the run if the queue is empty.
type stepEvent struct {
	*sim.EventBase
}

// executionEndEvent triggers when the record on the CPU finishes its
// execution interval.
type executionEndEvent struct {
	*sim.EventBase
}

// A Controller runs the FIFO scheduling simulation over one ProcessQueue. It
// never blocks: the execution interval and the inter-step pause are realized
// as future events on the engine, so control returns to the event loop at
// every suspension point.
//
// The controller drives the queue; the queue does not know the controller.
type Controller struct {
	name   string
	engine sim.Engine
	queue  *ProcessQueue

	// ExecInterval and StepPause may be adjusted before the first Start.
	ExecInterval sim.VTimeInSec
	StepPause    sim.VTimeInSec

	lock     sync.Mutex
	state    State
	current  *ProcessRecord
	displays []Display
}

// NewController creates a Controller that schedules its steps on engine and
// consumes records from queue.
func NewController(
	name string,
	engine sim.Engine,
	queue *ProcessQueue,
) *Controller {
	sim.NameMustBeValid(name)

	return &Controller{
		name:         name,
		engine:       engine,
		queue:        queue,
		ExecInterval: DefaultExecInterval,
		StepPause:    DefaultStepPause,
	}
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.name
}

// State returns the current scheduling state.
func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.state
}

// CurrentlyExecuting returns the record on the CPU. The second return value
// is false unless the controller is Busy.
func (c *Controller) CurrentlyExecuting() (ProcessRecord, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.current == nil {
		return ProcessRecord{}, false
	}

	return *c.current, true
}

// AttachDisplay registers a display with the controller and with the queue,
// so that the display receives both scheduling and queue-content updates.
func (c *Controller) AttachDisplay(d Display) {
	c.lock.Lock()
	c.displays = append(c.displays, d)
	c.lock.Unlock()

	c.queue.AddObserver(d)
}

// Start begins a run at virtual time now. It is only accepted while the
// controller is Idle; calling it mid-run is rejected and returns false. The
// rejection is enforced here, in the core, so that it holds no matter what an
// external UI does with its buttons.
//
// Start on an empty queue is permitted: the run reports completion on its
// first step without executing anything.
func (c *Controller) Start(now sim.VTimeInSec) bool {
	c.lock.Lock()
	if c.state != StateIdle {
		c.lock.Unlock()
		return false
	}
	c.state = StateRunning
	c.lock.Unlock()

	for _, d := range c.snapshotDisplays() {
		d.SimulationStarted(now)
	}

	c.engine.Schedule(stepEvent{sim.NewEventBase(now, c)})

	return true
}

// Handle dispatches the controller's own events.
func (c *Controller) Handle(e sim.Event) error {
	switch e := e.(type) {
	case stepEvent:
		c.step(e)
	case executionEndEvent:
		c.finishExecution(e)
	default:
		panic("cannot handle event of type " + reflect.TypeOf(e).String())
	}

	return nil
}

// step dequeues the head record and puts it on the CPU. An empty queue is the
// sole terminal condition: the controller returns to Idle.
func (c *Controller) step(evt stepEvent) {
	now := evt.Time()

	record, ok := c.queue.Dequeue()
	if !ok {
		c.lock.Lock()
		c.state = StateIdle
		c.lock.Unlock()

		for _, d := range c.snapshotDisplays() {
			d.SimulationEnded(now)
		}

		return
	}

	c.lock.Lock()
	c.state = StateBusy
	c.current = &record
	c.lock.Unlock()

	for _, d := range c.snapshotDisplays() {
		d.ExecutionStarted(now, record)
	}

	c.engine.Schedule(
		executionEndEvent{sim.NewEventBase(now+c.ExecInterval, c)})
}

// finishExecution takes the record off the CPU and defers the next step by
// the inter-step pause.
func (c *Controller) finishExecution(evt executionEndEvent) {
	now := evt.Time()

	c.lock.Lock()
	c.state = StateRunning
	c.current = nil
	c.lock.Unlock()

	for _, d := range c.snapshotDisplays() {
		d.ExecutionEnded(now)
	}

	c.engine.Schedule(stepEvent{sim.NewEventBase(now+c.StepPause, c)})
}

func (c *Controller) snapshotDisplays() []Display {
	c.lock.Lock()
	defer c.lock.Unlock()

	displays := make([]Display, len(c.displays))
	copy(displays, c.displays)
	return displays
}
