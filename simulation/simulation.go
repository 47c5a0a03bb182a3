// Package simulation wires a complete scheduling session together: the event
// engine, the ready queue, the controller, the trace recorder, and the
// optional web monitor.
package simulation

import (
	"github.com/schedlab/fifosim/datarecording"
	"github.com/schedlab/fifosim/monitoring"
	"github.com/schedlab/fifosim/sched"
	"github.com/schedlab/fifosim/sim"
)

// A Simulation is one scheduling session. It owns the shared ProcessQueue
// and the Controller, and exposes the two entry points an external UI may
// call: Enqueue and Start.
type Simulation struct {
	id string

	engine       sim.Engine
	queue        *sched.ProcessQueue
	controller   *sched.Controller
	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	monitor      *monitoring.Monitor
}

// ID returns the unique ID of the session.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine driving the session.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// Queue returns the session's ready queue.
func (s *Simulation) Queue() *sched.ProcessQueue {
	return s.queue
}

// Controller returns the session's controller.
func (s *Simulation) Controller() *sched.Controller {
	return s.controller
}

// DataRecorder returns the recorder that stores the session's traces.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the web monitor, or nil if monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// AttachDisplay registers a display to be notified of all state changes.
func (s *Simulation) AttachDisplay(d sched.Display) {
	s.controller.AttachDisplay(d)
}

// Enqueue adds a new process to the tail of the ready queue.
func (s *Simulation) Enqueue() sched.ProcessRecord {
	return s.queue.Enqueue()
}

// Start begins a run at the current virtual time. It returns false if a run
// is already in progress.
func (s *Simulation) Start() bool {
	return s.controller.Start(s.engine.CurrentTime())
}

// Run drives the engine until all the scheduled events are processed.
func (s *Simulation) Run() error {
	return s.engine.Run()
}

// Terminate ends the session and closes the trace database.
func (s *Simulation) Terminate() {
	s.runRecorder.End()
	s.dataRecorder.Close()
}
