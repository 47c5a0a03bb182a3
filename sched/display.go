package sched

import (
	"log"
	"strings"

	"github.com/schedlab/fifosim/sim"
)

// A Display is an external collaborator that visualizes the simulation. The
// core notifies it of every state change; it never calls back into the core.
type Display interface {
	QueueObserver

	// SimulationStarted and SimulationEnded bracket one full run. A display
	// typically disables its enqueue/start controls in between.
	SimulationStarted(now sim.VTimeInSec)
	SimulationEnded(now sim.VTimeInSec)

	// ExecutionStarted marks a record entering the CPU. ExecutionEnded marks
	// it leaving after its execution interval.
	ExecutionStarted(now sim.VTimeInSec, record ProcessRecord)
	ExecutionEnded(now sim.VTimeInSec)
}

// A LogDisplay is a Display that narrates the simulation to a logger, one
// line per state change.
type LogDisplay struct {
	*log.Logger
}

// NewLogDisplay creates a LogDisplay that writes to logger.
func NewLogDisplay(logger *log.Logger) *LogDisplay {
	return &LogDisplay{Logger: logger}
}

// QueueChanged prints the queue contents, oldest first.
func (d *LogDisplay) QueueChanged(records []ProcessRecord) {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}

	d.Printf("queue: [%s]", strings.Join(ids, " "))
}

// SimulationStarted prints the run start.
func (d *LogDisplay) SimulationStarted(now sim.VTimeInSec) {
	d.Printf("%.2f: simulation started", now)
}

// SimulationEnded prints the run end.
func (d *LogDisplay) SimulationEnded(now sim.VTimeInSec) {
	d.Printf("%.2f: simulation ended, queue is empty", now)
}

// ExecutionStarted prints the record that enters the CPU.
func (d *LogDisplay) ExecutionStarted(now sim.VTimeInSec, record ProcessRecord) {
	d.Printf("%.2f: %s on CPU", now, record.ID)
}

// ExecutionEnded prints that the CPU became free.
func (d *LogDisplay) ExecutionEnded(now sim.VTimeInSec) {
	d.Printf("%.2f: CPU idle", now)
}
