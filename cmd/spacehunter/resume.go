package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semissileman/spacehunter/internal/session"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <save>",
	Short: "Continue a simulation from a save file",
	Long: `Load a save file and continue the simulation for the given number of
ticks. The save must have been produced with the same seed and config for
the run to stay deterministic. A corrupt save starts a fresh game instead.

Examples:
  spacehunter resume run.json --ticks 600
  spacehunter resume run.json --save later.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func runResume(cmd *cobra.Command, args []string) error {
	logger := newLogger("spacehunter")

	s, err := newSession(logger)
	if err != nil {
		return err
	}

	savePath := args[0]
	if err := s.LoadFromFile(savePath); err != nil {
		var corrupt *session.CorruptSaveError
		if errors.As(err, &corrupt) {
			logger.Warn("save file unusable, starting fresh", "path", savePath, "reason", corrupt.Reason)
		} else {
			return fmt.Errorf("load save: %w", err)
		}
	} else {
		hud := s.HUD()
		logger.Info("resumed", "path", savePath, "tick", hud.Tick, "score", hud.Score, "lives", hud.Lives)
	}

	drive(s, flagTicks, logger)

	if flagSavePath == "" {
		flagSavePath = savePath
	}
	return finishRun(s, logger)
}
