// Command zebra-solver parses a ZBC puzzle file and prints every consistent
// assignment, driving the resumable branching search of
// github.com/tomas-macha/zebra/internal/search behind a small interactive
// continuation prompt when the iteration budget runs out.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tomas-macha/zebra/internal/grid"
	"github.com/tomas-macha/zebra/internal/logging"
	"github.com/tomas-macha/zebra/internal/search"
	"github.com/tomas-macha/zebra/internal/solver"
	"github.com/tomas-macha/zebra/internal/zbc"
)

var log = logging.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:          "zebra-solver",
		Short:        "Solve zebra-style logic puzzles written in ZBC",
		SilenceUsage: true,
	}

	solveCmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solve a ZBC puzzle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], iterations)
		},
	}
	solveCmd.Flags().IntVar(&iterations, "iterations", 50, "search waves to run before pausing for input")
	cmd.AddCommand(solveCmd)

	return cmd
}

func runSolve(path string, iterations int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Error("failed to read puzzle file")
		return err
	}

	defs, clues, err := zbc.Parse(string(src))
	if err != nil {
		log.WithError(err).Error("failed to parse puzzle")
		return err
	}

	p, err := solver.New(defs, clues)
	if err != nil {
		log.WithError(err).Error("failed to build puzzle")
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	seen := 0

	var stack []search.State
	for {
		result, err := p.Solve(iterations, stack)
		if err != nil {
			log.WithError(err).Error("solve failed")
			return err
		}

		for _, sol := range result.Solutions {
			seen++
			header.Printf("--- Solution %d ---\n", seen)
			fmt.Print(grid.Format(p.Catalog, sol))
			fmt.Println()
		}

		if result.Done {
			fmt.Printf("search exhausted after %d iterations, %d solution(s) found\n", result.Iterations, seen)
			return nil
		}

		stack = result.Stack
		fmt.Printf("paused after %d iterations with %d open branch(es)\n", result.Iterations, result.Options)
		next, ok := promptContinue()
		if !ok {
			return nil
		}
		iterations = next
	}
}

func promptContinue() (int, bool) {
	fmt.Print("Enter new iteration count to continue or 'q' to quit: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, false
	}
	line = strings.TrimSpace(line)
	if line == "q" || line == "Q" {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 {
		fmt.Println("invalid iteration count, quitting")
		return 0, false
	}
	return n, true
}
