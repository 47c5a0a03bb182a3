package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/schedlab/fifosim/sim"
	"github.com/schedlab/fifosim/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard.",
	Long: `serve starts the web dashboard and waits. Processes are enqueued ` +
		`and the simulation is started from the browser.`,
	Run: func(cmd *cobra.Command, _ []string) {
		execInterval, _ := cmd.Flags().GetFloat64("exec")
		stepPause, _ := cmd.Flags().GetFloat64("pause")
		output, _ := cmd.Flags().GetString("output")
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")

		if output == "" {
			output = os.Getenv("FIFOSIM_OUTPUT")
		}
		if port == 0 {
			port, _ = strconv.Atoi(os.Getenv("FIFOSIM_MONITOR_PORT"))
		}

		builder := simulation.MakeBuilder().
			WithExecInterval(sim.VTimeInSec(execInterval)).
			WithStepPause(sim.VTimeInSec(stepPause))
		if output != "" {
			builder = builder.WithOutputFileName(output)
		}
		if port > 0 {
			builder = builder.WithMonitorPort(port)
		}

		s := builder.Build()

		if open {
			s.Monitor().OpenDashboard()
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		s.Terminate()
		atexit.Exit(0)
	},
}

func init() {
	serveCmd.Flags().Float64("exec", 2.0,
		"virtual seconds each process spends on the CPU")
	serveCmd.Flags().Float64("pause", 0.5,
		"virtual seconds between two scheduling steps")
	serveCmd.Flags().String("output", "",
		"file name for the trace database (default: FIFOSIM_OUTPUT or generated)")
	serveCmd.Flags().Int("port", 0,
		"port for the dashboard (default: FIFOSIM_MONITOR_PORT or random)")
	serveCmd.Flags().Bool("open", false,
		"open the dashboard in the default browser")

	rootCmd.AddCommand(serveCmd)
}
