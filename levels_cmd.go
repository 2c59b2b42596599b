package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/protocol/levels"
	"github.com/milk9111/protocol/scene"
	"github.com/milk9111/protocol/world"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Check that every built-in level loads",
	Long: `Loads each scene's level, merges its solid tiles and lists the spawn
point and interaction zones. Exits non-zero if any level is broken.`,
	RunE: runLevels,
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ids := []scene.ID{scene.Boot, scene.Level1, scene.Level2, scene.Level3, scene.Level4}

	fmt.Fprintf(out, "  %-8s  %-5s  %-11s  %s\n", "LEVEL", "RECTS", "SPAWN", "ZONES")
	var failed []string
	for _, id := range ids {
		lvl, err := levels.Load(string(id))
		if err == nil {
			var layout *world.Layout
			if layout, err = world.Build(lvl); err == nil {
				zones := slices.Sorted(maps.Keys(layout.Zones))
				spawn := fmt.Sprintf("%.0f,%.0f", layout.SpawnX, layout.SpawnY)
				fmt.Fprintf(out, "  %-8s  %-5d  %-11s  %s\n", id, layout.Geometry.Len(), spawn, strings.Join(zones, " "))
				continue
			}
		}
		fmt.Fprintf(out, "  %-8s  ERROR: %v\n", id, err)
		failed = append(failed, string(id))
	}
	if len(failed) > 0 {
		return fmt.Errorf("broken levels: %s", strings.Join(failed, ", "))
	}
	return nil
}
