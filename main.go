// protocol is a short narrative platformer. An unfinished intelligence,
// PROTOCOL, watches the operator cross five rooms and judges every choice.
//
// Usage:
//
//	protocol                      - Play from the boot sequence
//	protocol --scene level3       - Start at a scene (branch flags must allow it)
//	protocol --debug              - Hitbox overlays, hot reload, ending restart
//	protocol --offline            - Never call the language model
//
// The model API key is read from the environment variable named in
// game.yaml (GROQ_API_KEY by default). A .env file in the working directory
// is loaded first when present.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagDebug      bool
	flagConfig     string
	flagScene      string
	flagMonitor    bool
	flagDebriefOut string
	flagOffline    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "protocol",
	Short:         "PROTOCOL - a platformer that is watching you",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug mode (hitboxes, hot reload, ending restart)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a game.yaml that overrides the built-in settings")
	rootCmd.Flags().StringVar(&flagScene, "scene", "", "Scene to start in (defaults to start_scene from game.yaml)")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "Use the base monitor instead of the primary one")
	rootCmd.Flags().StringVar(&flagDebriefOut, "debrief-out", "protocol_debrief.pdf", "Where [P] on the ending screen writes the debrief PDF (empty disables)")
	rootCmd.Flags().BoolVar(&flagOffline, "offline", false, "Disable the language model and use fallback texts")
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "protocol",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
