package root_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/config"
	"fjacquet/budget-board/internal/session"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "budget-board", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "dashboard")
	assert.Contains(t, root.Cmd.Long, "monthly xlsx workbooks")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestInitRegistersDataDirFlag(t *testing.T) {
	root.Init()

	flag := root.Cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "d", flag.Shorthand)
}

func TestNewSessionFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Data.Directory = t.TempDir()
	cfg.Income.Cell = "O3"
	cfg.EmergencyFund.Months = 6
	cfg.Thresholds.WantsIncomeRatio = 0.30
	cfg.Thresholds.NeedsIncomeRatio = 0.50
	cfg.Thresholds.SavingsIncomeRatio = 0.20
	cfg.Classify.RulesFile = "labels.yaml"
	root.Cfg = cfg

	sess := root.NewSession()

	require.NotNil(t, sess)
	assert.Equal(t, session.StateEmpty, sess.State())
	assert.True(t, sess.Portfolio().Empty())
}
