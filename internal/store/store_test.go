package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-board/internal/models"
)

func TestLoadRules_PreferredFormat(t *testing.T) {
	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "labels.yaml")
	content := `rules:
  Dining Out: Wants
  Gym: Needs
  Crypto: I
`
	require.NoError(t, os.WriteFile(rulesFile, []byte(content), 0600))

	s := NewLabelRuleStore(rulesFile)
	rules, err := s.LoadRules()
	require.NoError(t, err)

	assert.Equal(t, models.LabelWants, rules["dining out"])
	assert.Equal(t, models.LabelNeeds, rules["gym"])
	assert.Equal(t, models.LabelInvestment, rules["crypto"], "single-letter codes work in rule files too")
}

func TestLoadRules_BareMapping(t *testing.T) {
	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "labels.yaml")
	content := "Streaming: Luxury\nRent: Needs\n"
	require.NoError(t, os.WriteFile(rulesFile, []byte(content), 0600))

	s := NewLabelRuleStore(rulesFile)
	rules, err := s.LoadRules()
	require.NoError(t, err)

	assert.Equal(t, models.LabelLuxury, rules["streaming"])
	assert.Equal(t, models.LabelNeeds, rules["rent"])
}

func TestLoadRules_UnknownLabelSkipped(t *testing.T) {
	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "labels.yaml")
	content := `rules:
  Gym: Needs
  Pets: FunMoney
`
	require.NoError(t, os.WriteFile(rulesFile, []byte(content), 0600))

	s := NewLabelRuleStore(rulesFile)
	rules, err := s.LoadRules()
	require.NoError(t, err)

	assert.Len(t, rules, 1)
	assert.Equal(t, models.LabelNeeds, rules["gym"])
	assert.NotContains(t, rules, "pets")
}

func TestLoadRules_MissingFileIsEmpty(t *testing.T) {
	s := NewLabelRuleStore(filepath.Join(t.TempDir(), "nope.yaml"))
	rules, err := s.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadRules_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "labels.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte("rules: [what"), 0600))

	s := NewLabelRuleStore(rulesFile)
	_, err := s.LoadRules()
	assert.Error(t, err)
}

func TestSaveRules_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "labels.yaml")

	s := NewLabelRuleStore(rulesFile)
	err := s.SaveRules(map[string]models.Label{
		"Dining Out": models.LabelWants,
		"Gym":        models.LabelNeeds,
	})
	require.NoError(t, err)

	loaded, err := s.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, models.LabelWants, loaded["dining out"])
	assert.Equal(t, models.LabelNeeds, loaded["gym"])
}
