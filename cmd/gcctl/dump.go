package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/gc/printer"
)

var (
	dumpObjects int
	dumpMinor   bool
	dumpMajor   bool
	dumpNoFree  bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpObjects, "objects", 4, "Length of the rooted list to build")
	cmd.Flags().BoolVar(&dumpMinor, "minor", false, "Run a minor collection before dumping")
	cmd.Flags().BoolVar(&dumpMajor, "major", false, "Run a major collection before dumping")
	cmd.Flags().BoolVar(&dumpNoFree, "no-free", false, "Omit free old-generation chunks")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Build a small heap and dump it",
		Long: `The dump command builds a rooted linked list, drops one unrooted
object into each generation, optionally collects, and prints the nursery,
old generation, and root registry.

Example:
  gcctl dump --objects 8
  gcctl dump --minor --major
  gcctl dump --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout())
		},
	}
	return cmd
}

func runDump(w io.Writer) error {
	c, err := newCollector()
	if err != nil {
		return err
	}
	defer c.Close()

	var head gc.Word
	if err := c.AddRoot(&head); err != nil {
		return err
	}
	defer c.RemoveRoot(&head)

	for i := range dumpObjects {
		n, err := c.Alloc(16)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if err := c.StoreWord(n, head); err != nil {
			return err
		}
		if err := c.StoreWord(n+8, gc.Word(i)<<1|1); err != nil {
			return err
		}
		head = n
	}
	// Garbage in each generation.
	if _, err := c.Alloc(16); err != nil {
		return err
	}
	if _, err := c.Alloc(c.Options().SlotSize); err != nil {
		return err
	}

	if dumpMinor {
		if err := c.CollectMinor(); err != nil {
			return err
		}
	}
	if dumpMajor {
		if err := c.CollectMajor(); err != nil {
			return err
		}
	}

	opts := printer.DefaultOptions()
	opts.ShowFree = !dumpNoFree
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(c, w, opts).PrintHeap()
}
