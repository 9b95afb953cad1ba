package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/semissileman/spacehunter/internal/collision"
	"github.com/semissileman/spacehunter/internal/config"
	"github.com/semissileman/spacehunter/internal/core"
	"github.com/semissileman/spacehunter/internal/session"
	"github.com/semissileman/spacehunter/internal/storage"
)

var (
	flagTicks    int
	flagSavePath string
	flagNoRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a fresh simulation headless",
	Long: `Run a fresh simulation for the given number of ticks with the built-in
autopilot at the controls. The run is recorded in the runs database and can
optionally be written to a save file for later resumption.

Examples:
  spacehunter simulate --ticks 3600 --seed 42
  spacehunter simulate --ticks 600 --save run.json`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	simulateCmd.Flags().StringVar(&flagSavePath, "save", "", "Write the final state to this save file")
	simulateCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Skip recording the run in the database")

	resumeCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	resumeCmd.Flags().StringVar(&flagSavePath, "save", "", "Write the final state to this save file (default: overwrite the input)")
	resumeCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Skip recording the run in the database")
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

func newSession(logger *log.Logger) (*session.Session, error) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rt := core.RuntimeConfig{
		WorldW:   cfg.World.Width,
		WorldH:   cfg.World.Height,
		TickRate: flagTickRate,
		Seed:     flagSeed,
	}
	logger.Info("session ready",
		"world", fmt.Sprintf("%gx%g", rt.WorldW, rt.WorldH),
		"tick_rate", rt.TickRate,
		"seed", rt.Seed)
	return session.New(cfg, rt), nil
}

// autopilot produces a deterministic input script: cruise with a slow
// weave, keep the laser selected and fire in short bursts.
func autopilot(tick uint64) core.Input {
	in := core.NewInput()
	in.Thrust = 0.6
	switch (tick / 120) % 4 {
	case 0:
		in.Yaw = 0.3
	case 2:
		in.Yaw = -0.3
	}
	if tick%10 < 3 {
		in.SelectBay = 1
		in.Fire = true
	}
	return in
}

// drive advances the session, logging progress once per simulated minute.
func drive(s *session.Session, ticks int, logger *log.Logger) {
	destroyed := 0
	for i := 0; i < ticks; i++ {
		res := s.Tick(autopilot(s.TickCount()))
		for _, ev := range res.Events {
			if ev.Kind == collision.EventDestroyed {
				destroyed++
			}
		}
		if res.GameOver {
			logger.Info("game over", "tick", res.Tick)
			break
		}
		if res.Tick%uint64(60*flagTickRate) == 0 {
			hud := s.HUD()
			logger.Info("progress",
				"tick", res.Tick,
				"score", hud.Score,
				"lives", hud.Lives,
				"level", hud.Level,
				"entities", hud.Entities)
		}
	}

	hud := s.HUD()
	logger.Info("run finished",
		"ticks", s.TickCount(),
		"score", hud.Score,
		"lives", hud.Lives,
		"level", hud.Level,
		"destroyed", destroyed,
		"game_over", hud.GameOver)
}

// finishRun records the run and optionally writes a save file.
func finishRun(s *session.Session, logger *log.Logger) error {
	if !flagNoRecord {
		outcome := "aborted"
		if s.GameOver() {
			outcome = "game over"
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
		} else {
			defer store.Close()
			hud := s.HUD()
			if _, err := store.SaveRun(storage.RunRecord{
				Seed:    flagSeed,
				Score:   hud.Score,
				Level:   hud.Level,
				Ticks:   s.TickCount(),
				Outcome: outcome,
			}); err != nil {
				logger.Warn("could not record run", "error", err)
			}
		}
	}

	if flagSavePath != "" {
		if err := s.SaveToFile(flagSavePath); err != nil {
			return fmt.Errorf("write save: %w", err)
		}
		logger.Info("state saved", "path", flagSavePath)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger := newLogger("spacehunter")

	s, err := newSession(logger)
	if err != nil {
		return err
	}

	drive(s, flagTicks, logger)
	return finishRun(s, logger)
}
