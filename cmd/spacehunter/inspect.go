package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semissileman/spacehunter/internal/entity"
)

var flagRadarRange float64

var inspectCmd = &cobra.Command{
	Use:   "inspect <save>",
	Short: "Examine the state of a save file",
	Long: `Load a save file and print a summary of the simulation state: the
head-up display, the radar picture around the player and an entity census.

Examples:
  spacehunter inspect run.json
  spacehunter inspect run.json --radar-range 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Float64Var(&flagRadarRange, "radar-range", 1, "Radar sweep range as a multiple of the field width")
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger := newLogger("spacehunter")

	s, err := newSession(logger)
	if err != nil {
		return err
	}
	if err := s.LoadFromFile(args[0]); err != nil {
		return fmt.Errorf("load save: %w", err)
	}

	hud := s.HUD()
	fmt.Printf("Save: %s\n\n", args[0])
	fmt.Printf("  Tick      %d\n", hud.Tick)
	fmt.Printf("  Score     %d\n", hud.Score)
	fmt.Printf("  Lives     %d\n", hud.Lives)
	fmt.Printf("  Level     %d\n", hud.Level)
	fmt.Printf("  Shield    %.0f/%.0f\n", hud.Shield, hud.MaxShield)
	fmt.Printf("  Weapon    %s (bay %d, %d rounds, heat %d, %s)\n",
		hud.Weapon, hud.SelectedBay, hud.Ammo, hud.Heat, hud.BayState)
	if hud.Docked {
		fmt.Println("  Docked with supply ship")
	}
	if hud.Respawning {
		fmt.Println("  Respawning")
	}
	if hud.GameOver {
		fmt.Println("  GAME OVER")
	}

	census := map[entity.Kind]int{}
	for _, e := range s.View() {
		census[e.Kind]++
	}
	fmt.Printf("\n  Entities  %d\n", hud.Entities)
	for k := entity.KindShip; k <= entity.KindMine; k++ {
		if census[k] > 0 {
			fmt.Printf("    %-12s %d\n", k, census[k])
		}
	}

	sweep := s.Radar(flagRadarRange)
	fmt.Printf("\nRadar (range %.0f)\n", sweep.Range)
	if sweep.HostileAlert {
		fmt.Println("  HOSTILE CONTACT")
	}
	if len(sweep.Contacts) == 0 {
		fmt.Println("  No contacts.")
		return nil
	}
	for _, c := range sweep.Contacts {
		tag := " "
		if c.Hostile {
			tag = "!"
		}
		fmt.Printf("  %s %-12s bearing %5.1f  range %6.1f  closing %+5.1f\n", tag, c.Kind, c.Bearing, c.Distance, c.Closing)
	}
	return nil
}
