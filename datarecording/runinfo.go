package datarecording

import (
	"os"
	"strings"
	"time"
)

type runInfo struct {
	Property string
	Value    string
}

// A RunRecorder stores metadata about one program run, such as the wall-clock
// start and end time and the command line.
type RunRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []runInfo
}

// NewRunRecorder creates a RunRecorder writing into recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{
		tableName: "run_info",
		recorder:  recorder,
	}

	r.recorder.CreateTable(r.tableName, runInfo{})

	return r
}

// Start captures the run start time and the command line.
func (r *RunRecorder) Start() {
	startTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	r.entries = append(r.entries, runInfo{"Start Time", startTime})

	cmd := strings.Join(os.Args, " ")
	r.entries = append(r.entries, runInfo{"Command", cmd})

	wd, err := os.Getwd()
	if err == nil {
		r.entries = append(r.entries, runInfo{"Working Directory", wd})
	}
}

// End writes the captured metadata along with the run end time.
func (r *RunRecorder) End() {
	for _, entry := range r.entries {
		r.recorder.InsertData(r.tableName, entry)
	}
	r.entries = nil

	endTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	r.recorder.InsertData(r.tableName, runInfo{"End Time", endTime})

	r.recorder.Flush()
}
