// Package root contains the root command for the application
package root

import (
	"fjacquet/budget-board/internal/aggregate"
	"fjacquet/budget-board/internal/api"
	"fjacquet/budget-board/internal/classify"
	"fjacquet/budget-board/internal/config"
	"fjacquet/budget-board/internal/export"
	"fjacquet/budget-board/internal/fileutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/metrics"
	"fjacquet/budget-board/internal/normalize"
	"fjacquet/budget-board/internal/session"
	"fjacquet/budget-board/internal/store"
	"fjacquet/budget-board/internal/template"
	"fjacquet/budget-board/internal/workbook"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg holds the application configuration once PersistentPreRun has run
	Cfg *config.Config

	// DataDir overrides the configured data directory when set via flag
	DataDir string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-board",
		Short: "A CLI and HTTP dashboard for monthly budget workbooks.",
		Long: `budget-board loads the monthly xlsx workbooks from the data directory,
labels every transaction, and presents the aggregated budget either as
command line tables or through an HTTP API.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-board!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			if DataDir != "" {
				Cfg.Data.Directory = DataDir
			}

			// Initialize and configure logging
			Log = config.ConfigureLoggingFromConfig(Cfg)
			logging.SetLogger(Log)

			// Set the configured logger for all pipeline packages
			fileutils.SetLogger(Log)
			store.SetLogger(Log)
			workbook.SetLogger(Log)
			normalize.SetLogger(Log)
			classify.SetLogger(Log)
			aggregate.SetLogger(Log)
			session.SetLogger(Log)
			export.SetLogger(Log)
			template.SetLogger(Log)
			api.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "Directory holding the monthly workbooks (overrides configuration)")
}

// NewSession wires the budget pipeline from the loaded configuration.
func NewSession() *session.Session {
	reader := workbook.NewReader(Cfg.Income.Sheet, Cfg.Income.Cell)
	classifier := classify.NewClassifier(store.NewLabelRuleStore(Cfg.Classify.RulesFile))
	engine := metrics.NewEngine(
		Cfg.EmergencyFund.Months,
		Cfg.Thresholds.WantsIncomeRatio,
		Cfg.Thresholds.NeedsIncomeRatio,
		Cfg.Thresholds.SavingsIncomeRatio,
	)
	return session.NewSession(Cfg.Data.Directory, reader, classifier, engine)
}
