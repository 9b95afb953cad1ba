// spacehunter is a headless 2D space-shooter simulation core.
//
// Usage:
//
//	spacehunter simulate         - Run a fresh simulation for N ticks
//	spacehunter resume <save>    - Resume a simulation from a save file
//	spacehunter inspect <save>   - Print the state of a save file
//	spacehunter scores           - Show the best recorded runs
//
// Global flags:
//
//	--tick-rate <rate>  - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.spacehunter/runs.db)
//	--config <path>     - Load game parameters from a custom YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagTickRate int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacehunter",
	Short: "Space Hunter - deterministic space-shooter simulation",
	Long: `Space Hunter is a deterministic 2D space-shooter simulation core.
It runs the full game loop headless: physics, collisions, weapons, enemy
waves, docking and trading, with saves that resume tick-exact.

Available commands:
  simulate - Run a fresh simulation
  resume   - Continue from a save file
  inspect  - Examine a save file
  scores   - View the best recorded runs

Examples:
  spacehunter simulate --ticks 3600 --seed 42
  spacehunter simulate --save run.json
  spacehunter resume run.json --ticks 600
  spacehunter inspect run.json
  spacehunter scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 60, "Simulation ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = stock seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spacehunter/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom game.yaml")

	// Add subcommands
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scoresCmd)
}
