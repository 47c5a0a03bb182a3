package datarecording

import (
	"github.com/schedlab/fifosim/sched"
	"github.com/schedlab/fifosim/sim"
)

type executionRow struct {
	ProcessID string
	SeqNumber int
	StartTime float64
	EndTime   float64
}

type queueDepthRow struct {
	Time  float64
	Depth int
}

type simulationRow struct {
	Event string
	Time  float64
}

// An ExecutionTracer records the simulation into a DataRecorder: one
// executions row per completed process, one queue_depth row per queue
// mutation, and one simulations row per run start and end.
//
// It is both a sched.Display (attach it to the controller) and a sim.Hook
// (accept it on the process queue).
type ExecutionTracer struct {
	recorder   DataRecorder
	timeTeller sim.TimeTeller

	current *executionRow
}

// NewExecutionTracer creates an ExecutionTracer and the tables it writes to.
func NewExecutionTracer(
	recorder DataRecorder,
	timeTeller sim.TimeTeller,
) *ExecutionTracer {
	t := &ExecutionTracer{
		recorder:   recorder,
		timeTeller: timeTeller,
	}

	t.recorder.CreateTable("executions", executionRow{})
	t.recorder.CreateTable("queue_depth", queueDepthRow{})
	t.recorder.CreateTable("simulations", simulationRow{})

	return t
}

// QueueChanged is a no-op; queue mutations are recorded through Func, which
// also carries the depth.
func (t *ExecutionTracer) QueueChanged(records []sched.ProcessRecord) {}

// SimulationStarted records the start of a run.
func (t *ExecutionTracer) SimulationStarted(now sim.VTimeInSec) {
	t.recorder.InsertData("simulations", simulationRow{
		Event: "start",
		Time:  float64(now),
	})
}

// SimulationEnded records the end of a run and flushes the recorder.
func (t *ExecutionTracer) SimulationEnded(now sim.VTimeInSec) {
	t.recorder.InsertData("simulations", simulationRow{
		Event: "end",
		Time:  float64(now),
	})

	t.recorder.Flush()
}

// ExecutionStarted opens the row for the record entering the CPU.
func (t *ExecutionTracer) ExecutionStarted(
	now sim.VTimeInSec,
	record sched.ProcessRecord,
) {
	t.current = &executionRow{
		ProcessID: record.ID,
		SeqNumber: record.SeqNumber,
		StartTime: float64(now),
	}
}

// ExecutionEnded completes and inserts the row opened by ExecutionStarted.
func (t *ExecutionTracer) ExecutionEnded(now sim.VTimeInSec) {
	if t.current == nil {
		return
	}

	t.current.EndTime = float64(now)
	t.recorder.InsertData("executions", *t.current)
	t.current = nil
}

// Func records the queue depth after every push and pop. Register the tracer
// as a hook on the process queue to activate it.
func (t *ExecutionTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sched.HookPosQueuePush && ctx.Pos != sched.HookPosQueuePop {
		return
	}

	depth, ok := ctx.Detail.(int)
	if !ok {
		return
	}

	t.recorder.InsertData("queue_depth", queueDepthRow{
		Time:  float64(t.timeTeller.CurrentTime()),
		Depth: depth,
	})
}
