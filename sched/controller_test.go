package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/schedlab/fifosim/sim"
)

var _ = Describe("Controller", func() {
	var (
		mockCtrl   *gomock.Controller
		engine     *sim.SerialEngine
		queue      *ProcessQueue
		controller *Controller
		display    *MockDisplay
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		queue = NewProcessQueue("ReadyQueue")
		controller = NewController("Controller", engine, queue)
		display = NewMockDisplay(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should execute enqueued processes in FIFO order", func() {
		controller.AttachDisplay(display)
		display.EXPECT().QueueChanged(gomock.Any()).Times(6)

		p1 := ProcessRecord{ID: "P1", SeqNumber: 1}
		p2 := ProcessRecord{ID: "P2", SeqNumber: 2}
		p3 := ProcessRecord{ID: "P3", SeqNumber: 3}

		gomock.InOrder(
			display.EXPECT().SimulationStarted(sim.VTimeInSec(0)),
			display.EXPECT().ExecutionStarted(sim.VTimeInSec(0), p1),
			display.EXPECT().ExecutionEnded(sim.VTimeInSec(2.0)),
			display.EXPECT().ExecutionStarted(sim.VTimeInSec(2.5), p2),
			display.EXPECT().ExecutionEnded(sim.VTimeInSec(4.5)),
			display.EXPECT().ExecutionStarted(sim.VTimeInSec(5.0), p3),
			display.EXPECT().ExecutionEnded(sim.VTimeInSec(7.0)),
			display.EXPECT().SimulationEnded(sim.VTimeInSec(7.5)),
		)

		queue.Enqueue()
		queue.Enqueue()
		queue.Enqueue()

		started := controller.Start(0)
		Expect(started).To(BeTrue())

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(queue.IsEmpty()).To(BeTrue())
		Expect(controller.State()).To(Equal(StateIdle))
	})

	It("should end immediately when started on an empty queue", func() {
		controller.AttachDisplay(display)

		gomock.InOrder(
			display.EXPECT().SimulationStarted(sim.VTimeInSec(0)),
			display.EXPECT().SimulationEnded(sim.VTimeInSec(0)),
		)

		started := controller.Start(0)
		Expect(started).To(BeTrue())

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(controller.State()).To(Equal(StateIdle))
	})

	It("should reject Start while already running", func() {
		controller.AttachDisplay(display)
		display.EXPECT().QueueChanged(gomock.Any()).AnyTimes()
		display.EXPECT().SimulationStarted(gomock.Any()).Times(1)
		display.EXPECT().SimulationEnded(gomock.Any()).Times(1)
		display.EXPECT().ExecutionEnded(gomock.Any()).Times(1)
		display.EXPECT().
			ExecutionStarted(gomock.Any(), gomock.Any()).
			Do(func(now sim.VTimeInSec, r ProcessRecord) {
				Expect(controller.Start(now)).To(BeFalse())
				Expect(controller.State()).To(Equal(StateBusy))
			})

		queue.Enqueue()

		Expect(controller.Start(0)).To(BeTrue())
		Expect(controller.Start(0)).To(BeFalse())

		err := engine.Run()

		Expect(err).To(BeNil())
	})

	It("should expose the record on the CPU only while Busy", func() {
		controller.AttachDisplay(display)
		display.EXPECT().QueueChanged(gomock.Any()).AnyTimes()
		display.EXPECT().SimulationStarted(gomock.Any())
		display.EXPECT().SimulationEnded(gomock.Any())
		display.EXPECT().
			ExecutionStarted(gomock.Any(), gomock.Any()).
			Do(func(now sim.VTimeInSec, r ProcessRecord) {
				current, busy := controller.CurrentlyExecuting()
				Expect(busy).To(BeTrue())
				Expect(current).To(Equal(r))
			})
		display.EXPECT().
			ExecutionEnded(gomock.Any()).
			Do(func(now sim.VTimeInSec) {
				_, busy := controller.CurrentlyExecuting()
				Expect(busy).To(BeFalse())
			})

		queue.Enqueue()
		controller.Start(0)

		err := engine.Run()

		Expect(err).To(BeNil())

		_, busy := controller.CurrentlyExecuting()
		Expect(busy).To(BeFalse())
	})

	It("should pick up records enqueued during a run", func() {
		controller.AttachDisplay(display)
		display.EXPECT().QueueChanged(gomock.Any()).AnyTimes()
		display.EXPECT().SimulationStarted(gomock.Any())
		display.EXPECT().SimulationEnded(gomock.Any())

		enqueued := false
		gomock.InOrder(
			display.EXPECT().
				ExecutionStarted(gomock.Any(), gomock.Any()).
				Do(func(now sim.VTimeInSec, r ProcessRecord) {
					if !enqueued {
						queue.Enqueue()
						enqueued = true
					}
				}).
				Times(2),
		)
		display.EXPECT().ExecutionEnded(gomock.Any()).Times(2)

		queue.Enqueue()
		controller.Start(0)

		err := engine.Run()

		Expect(err).To(BeNil())
		Expect(queue.IsEmpty()).To(BeTrue())
	})

	It("should honor custom intervals", func() {
		controller.ExecInterval = 1.0
		controller.StepPause = 0.25
		controller.AttachDisplay(display)
		display.EXPECT().QueueChanged(gomock.Any()).AnyTimes()
		display.EXPECT().SimulationStarted(gomock.Any())

		gomock.InOrder(
			display.EXPECT().
				ExecutionStarted(sim.VTimeInSec(10.0), gomock.Any()),
			display.EXPECT().ExecutionEnded(sim.VTimeInSec(11.0)),
			display.EXPECT().
				ExecutionStarted(sim.VTimeInSec(11.25), gomock.Any()),
			display.EXPECT().ExecutionEnded(sim.VTimeInSec(12.25)),
			display.EXPECT().SimulationEnded(sim.VTimeInSec(12.5)),
		)

		queue.Enqueue()
		queue.Enqueue()

		// The engine must already be at t=10 for Start(10) to be legal.
		engine.Schedule(advanceClockEvent{sim.NewEventBase(10.0, nopHandler{})})
		Expect(engine.Run()).To(Succeed())

		controller.Start(10.0)

		err := engine.Run()

		Expect(err).To(BeNil())
	})
})

type advanceClockEvent struct {
	*sim.EventBase
}

type nopHandler struct{}

func (nopHandler) Handle(sim.Event) error { return nil }
