// Package template implements the command that writes the starter
// workbooks and, when missing, a starter label rules file.
package template

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/fileutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/store"
	"fjacquet/budget-board/internal/template"
)

var blankOnly bool

// Cmd represents the template command
var Cmd = &cobra.Command{
	Use:   "template",
	Short: "Write the starter workbooks into the data directory",
	Long: `Write Template.xlsx (with sample transactions) and BlankTemplate.xlsx
(header only) into the data directory, creating it when needed. Copy one,
rename it after a month (January.xlsx, Feb.xlsx, ...), and fill it in. A
starter label rules file is written alongside when none exists yet.`,
	Run: templateFunc,
}

func init() {
	Cmd.Flags().BoolVar(&blankOnly, "blank-only", false, "Write only the blank template")
}

// starterRules seeds the label rules file with additive examples so users
// see the format. Neither category is in the built-in table.
var starterRules = map[string]models.Label{
	"Gym":    models.LabelNeeds,
	"Coffee": models.LabelWants,
}

func templateFunc(cmd *cobra.Command, args []string) {
	dataDir := root.Cfg.Data.Directory
	if err := fileutils.EnsureDirectoryExists(dataDir); err != nil {
		root.Log.Fatalf("Error creating data directory: %v", err)
	}

	if !blankOnly {
		path := filepath.Join(dataDir, models.TemplateFileName)
		if err := template.Write(path, false); err != nil {
			root.Log.Fatalf("Error writing template: %v", err)
		}
	}

	blankPath := filepath.Join(dataDir, models.BlankTemplateFileName)
	if err := template.Write(blankPath, true); err != nil {
		root.Log.Fatalf("Error writing blank template: %v", err)
	}

	writeStarterRules(store.NewLabelRuleStore(root.Cfg.Classify.RulesFile))

	root.Log.WithFields(
		logging.Field{Key: logging.FieldDirectory, Value: dataDir},
	).Info("Templates written")
}

// writeStarterRules creates the rules file with example entries. An existing
// file is never touched.
func writeStarterRules(ruleStore *store.LabelRuleStore) {
	if _, err := ruleStore.FindConfigFile(ruleStore.RulesFile); err == nil {
		root.Log.Debug("Label rules file already exists, leaving it alone",
			logging.Field{Key: logging.FieldFile, Value: ruleStore.RulesFile})
		return
	}

	if err := ruleStore.SaveRules(starterRules); err != nil {
		root.Log.WithError(err).Warn("Failed to write starter label rules")
		return
	}
	root.Log.Info("Starter label rules written",
		logging.Field{Key: logging.FieldFile, Value: ruleStore.RulesFile})
}
