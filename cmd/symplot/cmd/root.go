// Package cmd implements the symplot command line.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/symplot/internal/config"
	"github.com/njchilds90/symplot/internal/logging"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	asJSON  bool

	cfg    *config.Config
	logger *logging.Logger
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

// NewRootCmd builds the symplot command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "symplot",
		Short: "Symbolic expressions for curves, surfaces and implicit plots",
		Long: `symplot builds, simplifies, evaluates and differentiates symbolic
expressions over float64, and samples them over grids for plotting.

Expressions are written in infix form, e.g. "sqrt(x^2 + y^2)"; vectors as
"(cos(t), sin(t), t)".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print expressions as JSON trees")

	root.AddCommand(
		a.simplifyCmd(),
		a.evalCmd(),
		a.diffCmd(),
		a.sampleCmd(),
		a.geometryCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command line and prints a failure to stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorStyle.Render("error:"), err)
	}
	return err
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	a.cfg = cfg
	a.logger = logging.NewOrNop(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	a.logger.Debug("configuration loaded",
		zap.String("file", a.cfgFile),
		zap.String("level", cfg.Logging.Level),
	)
	return nil
}

func heading(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render(text))
}

func field(cmd *cobra.Command, label string, value interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %v\n", labelStyle.Render(label+":"), value)
}
