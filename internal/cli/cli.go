// Package cli implements the marionette command-line interface.
//
// # Commands
//
//   - simulate: run the demo puppet headless for a number of frames, driven
//     by an optional TOML, YAML or JSON script
//   - inspect: print the demo puppet's node tree, draw order and parameters
//
// All commands support --verbose (-v) for debug-level logging, which also
// enables per-frame timing logs from the evaluator.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/marionette"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a CLI that logs to w at level and prints results to out.
func New(w, out io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level), out: out}
	marionette.SetLogger(c.Logger.WithPrefix("marionette"))
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	marionette.SetLogger(c.Logger.WithPrefix("marionette"))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "marionette",
		Short:        "marionette evaluates rigged 2D puppets",
		Long:         `marionette drives Inochi2D-style puppets: parameters, deforms, transforms and pendulum physics, evaluated frame by frame.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate("marionette " + version + "\ncommit: " + commit + "\nbuilt: " + date + "\n")

	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.inspectCommand())
	return root
}
