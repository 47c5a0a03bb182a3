package simulation

import (
	"github.com/rs/xid"

	"github.com/schedlab/fifosim/datarecording"
	"github.com/schedlab/fifosim/monitoring"
	"github.com/schedlab/fifosim/sched"
	"github.com/schedlab/fifosim/sim"
)

// Builder builds a Simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	outputFileName string
	execInterval   sim.VTimeInSec
	stepPause      sim.VTimeInSec
}

// MakeBuilder creates a Builder with the default configuration: monitoring
// on, default execution interval and step pause.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:    true,
		execInterval: sched.DefaultExecInterval,
		stepPause:    sched.DefaultStepPause,
	}
}

// WithoutMonitoring disables the web monitor.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets a custom file name for the trace database.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithExecInterval sets the virtual time each process spends on the CPU.
func (b Builder) WithExecInterval(t sim.VTimeInSec) Builder {
	b.execInterval = t
	return b
}

// WithStepPause sets the virtual time between two scheduling steps.
func (b Builder) WithStepPause(t sim.VTimeInSec) Builder {
	b.stepPause = t
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if b.execInterval <= 0 {
		panic("execution interval must be positive")
	}

	if b.stepPause < 0 {
		panic("step pause must not be negative")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{}
	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "fifosim_" + s.id
	}
	s.dataRecorder = datarecording.New(outputPath)

	s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)
	s.runRecorder.Start()

	s.engine = sim.NewSerialEngine()

	s.queue = sched.NewProcessQueue("Session.ReadyQueue")
	s.controller = sched.NewController("Session.Controller", s.engine, s.queue)
	s.controller.ExecInterval = b.execInterval
	s.controller.StepPause = b.stepPause

	tracer := datarecording.NewExecutionTracer(s.dataRecorder, s.engine)
	s.controller.AttachDisplay(tracer)
	s.queue.AcceptHook(tracer)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterQueue(s.queue)
		s.monitor.RegisterController(s.controller)
		s.monitor.StartServer()
	}

	return s
}
