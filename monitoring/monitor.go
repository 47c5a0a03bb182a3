// Package monitoring turns a running simulation into a small web server. The
// served dashboard is the user-facing visualization of the scheduler: it
// shows the ready queue and the CPU, and exposes the two commands a user can
// issue (enqueue a process, start the simulation).
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/schedlab/fifosim/sched"
	"github.com/schedlab/fifosim/sim"
)

// Monitor serves the simulation over HTTP and lets external clients observe
// and control it.
type Monitor struct {
	engine     sim.Engine
	queue      *sched.ProcessQueue
	controller *sched.Controller

	portNumber int
	url        string
}

// NewMonitor creates a Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the server listens on. Ports below 1000 are
// not allowed; a random port is picked instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that drives the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterQueue registers the ready queue to visualize.
func (m *Monitor) RegisterQueue(q *sched.ProcessQueue) {
	m.queue = q
}

// RegisterController registers the controller to visualize and command.
func (m *Monitor) RegisterController(c *sched.Controller) {
	m.controller = c
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/queue", m.listQueue)
	r.HandleFunc("/api/state", m.controllerState)
	r.HandleFunc("/api/enqueue", m.enqueue).Methods(http.MethodPost)
	r.HandleFunc("/api/start", m.start).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/controller", m.inspectController)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/", m.dashboard)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the dashboard in the default browser. StartServer must
// have been called.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		panic("monitor server is not started")
	}

	err := browser.OpenURL(m.url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open browser: %s\n", err)
	}
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%.10f}", m.engine.CurrentTime())
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) listQueue(w http.ResponseWriter, _ *http.Request) {
	records := m.queue.Records()

	rsp := make([]recordRsp, len(records))
	for i, r := range records {
		rsp[i] = recordRsp{ID: r.ID, SeqNumber: r.SeqNumber}
	}

	writeJSON(w, rsp)
}

type recordRsp struct {
	ID        string `json:"id"`
	SeqNumber int    `json:"seq_number"`
}

type stateRsp struct {
	State     string     `json:"state"`
	OnCPU     *recordRsp `json:"on_cpu,omitempty"`
	QueueSize int        `json:"queue_size"`
}

func (m *Monitor) controllerState(w http.ResponseWriter, _ *http.Request) {
	rsp := stateRsp{
		State:     m.controller.State().String(),
		QueueSize: m.queue.Size(),
	}

	if current, busy := m.controller.CurrentlyExecuting(); busy {
		rsp.OnCPU = &recordRsp{ID: current.ID, SeqNumber: current.SeqNumber}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) enqueue(w http.ResponseWriter, _ *http.Request) {
	record := m.queue.Enqueue()

	writeJSON(w, recordRsp{ID: record.ID, SeqNumber: record.SeqNumber})
}

func (m *Monitor) start(w http.ResponseWriter, _ *http.Request) {
	started := m.controller.Start(m.engine.CurrentTime())
	if started {
		go func() {
			err := m.engine.Run()
			if err != nil {
				panic(err)
			}
		}()
	}

	writeJSON(w, map[string]bool{"started": started})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) inspectController(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.controller)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
