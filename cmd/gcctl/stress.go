package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/brickingsoft/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/gc/verify"
)

var (
	stressSteps  int
	stressSeed   int64
	stressRoots  int
	stressMaxObj int
	stressVerify bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressSteps, "steps", 10000, "Number of workload steps")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&stressRoots, "roots", 32, "Number of root words")
	cmd.Flags().IntVar(&stressMaxObj, "max-object", 512, "Largest object payload in bytes")
	cmd.Flags().BoolVar(&stressVerify, "verify", false, "Check heap invariants after every step")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a random allocation workload",
		Long: `The stress command allocates objects, links them through the write
barrier, drops roots, and runs collections at random, then prints the
collector statistics.

Example:
  gcctl stress --steps 100000 --seed 7
  gcctl stress --old-size 1048576 --verify
  gcctl stress --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd.OutOrStdout())
		},
	}
	return cmd
}

// StressResult summarizes a workload run.
type StressResult struct {
	Steps       int
	Seed        int64
	Allocations int
	Links       int
	Exhausted   int // allocations that needed a major collection first
	Stats       gc.Stats
}

func runStress(w io.Writer) error {
	if stressRoots <= 0 || stressMaxObj <= 0 {
		return fmt.Errorf("roots and max-object must be positive")
	}
	c, err := newCollector()
	if err != nil {
		return err
	}
	defer c.Close()

	words := make([]gc.Word, stressRoots)
	if err := c.AddRootRange(words); err != nil {
		return err
	}
	defer c.RemoveRootRange(words)

	rng := rand.New(rand.NewSource(stressSeed))
	res := StressResult{Steps: stressSteps, Seed: stressSeed}

	for step := range stressSteps {
		slot := rng.Intn(len(words))
		switch op := rng.Intn(20); {
		case op < 10:
			size := 16 + rng.Intn(stressMaxObj)
			p, err := c.Alloc(size)
			if errors.Is(err, gc.ErrOldGenExhausted) {
				res.Exhausted++
				if err := c.CollectMajor(); err != nil {
					return err
				}
				p, err = c.Alloc(size)
			}
			if err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			words[slot] = p
			res.Allocations++

		case op < 16:
			dst := rng.Intn(len(words))
			if words[slot] == gc.Nil || words[dst] == gc.Nil {
				continue
			}
			// Word 0 always exists: the smallest object has two.
			if err := c.StoreWord(words[slot], words[dst]); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			res.Links++

		case op < 18:
			words[slot] = gc.Nil

		case op < 19:
			if err := c.CollectMinor(); err != nil && !errors.Is(err, gc.ErrOldGenExhausted) {
				return fmt.Errorf("step %d: %w", step, err)
			}

		default:
			if err := c.CollectMajor(); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
		}

		if stressVerify {
			if err := verify.AllInvariants(c); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
		}
	}

	res.Stats = c.Stats()
	if jsonOut {
		return printJSON(w, res)
	}
	s := res.Stats
	printInfo(w, "Workload: %d steps, seed %d\n", res.Steps, res.Seed)
	printInfo(w, "  Allocations: %d (%d direct to old generation, %d after exhaustion)\n",
		res.Allocations, s.DirectOldAllocs, res.Exhausted)
	printInfo(w, "  Links: %d, remembered now: %d\n", res.Links, s.RememberedWords)
	printInfo(w, "Minor collections: %d, promoted %d chunks (%d bytes)\n",
		s.MinorCollections, s.PromotedChunks, s.PromotedBytes)
	printInfo(w, "Major collections: %d, swept %d chunks (%d bytes)\n",
		s.MajorCollections, s.SweptChunks, s.SweptBytes)
	printInfo(w, "Old generation: %d used, %d free, largest free %d\n",
		s.OldUsedBytes, s.OldFreeBytes, s.OldLargestFree)
	return nil
}
