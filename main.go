package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-board/cmd/export"
	"fjacquet/budget-board/cmd/load"
	"fjacquet/budget-board/cmd/metrics"
	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/cmd/serve"
	"fjacquet/budget-board/cmd/template"
	"fjacquet/budget-board/internal/config"
	"fjacquet/budget-board/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Apply the log level early so package-level loggers pick it up;
	// PersistentPreRun rebuilds the logger from the full configuration later
	if level := os.Getenv("BUDGET_LOG_LEVEL"); level != "" {
		logging.SetAllLogLevels(strings.ToLower(level))
	}

	// 3. Initialize root command flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(metrics.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(template.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
