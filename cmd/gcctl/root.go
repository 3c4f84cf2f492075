package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Arena geometry
	nurserySize int
	slotSize    int
	oldGenSize  int
	heapBacking bool
)

var rootCmd = &cobra.Command{
	Use:   "gcctl",
	Short: "Drive and inspect the generational collector",
	Long: `gcctl runs synthetic allocation workloads against the collector
and prints heap dumps and statistics. It is a debugging aid for embedders
tuning arena sizes.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log collections to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.PersistentFlags().IntVar(&nurserySize, "nursery-size", gc.DefaultNurserySize, "Nursery capacity in bytes")
	rootCmd.PersistentFlags().IntVar(&slotSize, "slot-size", gc.DefaultSlotSize, "Nursery slot size in bytes")
	rootCmd.PersistentFlags().IntVar(&oldGenSize, "old-size", gc.DefaultOldGenSize, "Old generation capacity in bytes")
	rootCmd.PersistentFlags().BoolVar(&heapBacking, "heap", false, "Allocate arenas on the Go heap instead of mapping them")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newCollector builds a collector from the global flags.
func newCollector() (*gc.Collector, error) {
	opts := gc.DefaultOptions()
	opts.NurserySize = nurserySize
	opts.SlotSize = slotSize
	opts.OldGenSize = oldGenSize
	if heapBacking {
		opts.Backing = gc.BackingHeap
	}
	opts.Logger = logger.New(logger.Options{Enabled: verbose, Level: slog.LevelDebug})
	return gc.New(&opts)
}

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
