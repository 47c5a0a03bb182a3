package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/schedlab/fifosim/sched"
	"github.com/schedlab/fifosim/sim"
	"github.com/schedlab/fifosim/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted simulation to completion.",
	Long: `run enqueues a number of processes, starts the simulation, and ` +
		`drives it until the queue is empty, narrating every step on stdout.`,
	Run: func(cmd *cobra.Command, _ []string) {
		numProcesses, _ := cmd.Flags().GetInt("processes")
		execInterval, _ := cmd.Flags().GetFloat64("exec")
		stepPause, _ := cmd.Flags().GetFloat64("pause")
		output, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if output == "" {
			output = os.Getenv("FIFOSIM_OUTPUT")
		}

		builder := simulation.MakeBuilder().
			WithoutMonitoring().
			WithExecInterval(sim.VTimeInSec(execInterval)).
			WithStepPause(sim.VTimeInSec(stepPause))
		if output != "" {
			builder = builder.WithOutputFileName(output)
		}

		s := builder.Build()

		display := sched.NewLogDisplay(log.New(os.Stdout, "", 0))
		s.AttachDisplay(display)

		if verbose {
			s.Engine().AcceptHook(
				sim.NewEventLogger(log.New(os.Stderr, "", 0)))
		}

		for i := 0; i < numProcesses; i++ {
			s.Enqueue()
		}

		s.Start()
		err := s.Run()
		if err != nil {
			log.Fatal(err)
		}

		s.Engine().Finished()
		s.Terminate()
		atexit.Exit(0)
	},
}

func init() {
	runCmd.Flags().IntP("processes", "n", 5,
		"number of processes to enqueue before starting")
	runCmd.Flags().Float64("exec", float64(sched.DefaultExecInterval),
		"virtual seconds each process spends on the CPU")
	runCmd.Flags().Float64("pause", float64(sched.DefaultStepPause),
		"virtual seconds between two scheduling steps")
	runCmd.Flags().String("output", "",
		"file name for the trace database (default: FIFOSIM_OUTPUT or generated)")
	runCmd.Flags().BoolP("verbose", "v", false,
		"log every engine event to stderr")

	rootCmd.AddCommand(runCmd)
}
