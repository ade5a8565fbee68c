package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previdlabs/ppp/internal/config"
	"github.com/previdlabs/ppp/internal/editor"
	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/internal/store/casestore"
	"github.com/previdlabs/ppp/internal/ui"
	"github.com/previdlabs/ppp/pkg/log"
)

func TestCatalogLookup(t *testing.T) {
	lookup := CatalogLookup()

	name, docs, ok := lookup("pensao-morte")
	require.True(t, ok)
	assert.Equal(t, "Pensão por Morte", name)
	assert.NotEmpty(t, docs)

	_, _, ok = lookup("nao-existe")
	assert.False(t, ok)
}

func TestCaseEntry(t *testing.T) {
	e := caseEntry{a: model.Atendimento{
		ClientName:  "Maria",
		ClientCPF:   "123.456.789-00",
		BenefitName: "Pensão por Morte",
		ChecklistItems: []model.ChecklistItem{
			{Checked: true}, {Checked: false},
		},
		UpdatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}}

	assert.Equal(t, "Maria", e.Title())
	assert.Contains(t, e.Description(), "1/2")
	assert.Contains(t, e.Description(), "10/03/2026")
	assert.Contains(t, e.FilterValue(), "Pensão")

	blank := caseEntry{a: model.Atendimento{}}
	assert.Equal(t, "(sem nome)", blank.Title())
}

func TestNewModelStartsOnCaseList(t *testing.T) {
	s, err := casestore.Open(filepath.Join(t.TempDir(), "cases.json"), log.NewNop())
	require.NoError(t, err)
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	ed := editor.New(s, CatalogLookup(), editor.Options{Logger: log.NewNop()})
	defer ed.Stop()

	m := newModel(s, ed, cfg, ui.NewTheme("mono", true), log.NewNop())
	assert.Equal(t, viewCases, m.view)
	assert.Equal(t, inputNone, m.input)
	assert.NotEmpty(t, m.benefitList.Items(), "benefit picker must list the catalog")
	assert.NotEmpty(t, m.ruralList.Items(), "rural picker must list the catalog")
}

func TestSyncItemsTracksEditor(t *testing.T) {
	s, err := casestore.Open(filepath.Join(t.TempDir(), "cases.json"), log.NewNop())
	require.NoError(t, err)
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	ed := editor.New(s, CatalogLookup(), editor.Options{Logger: log.NewNop()})
	defer ed.Stop()

	m := newModel(s, ed, cfg, ui.NewTheme("mono", true), log.NewNop())

	ed.SelectBenefit("salario-maternidade")
	m.syncItems()

	assert.Len(t, m.itemList.Items(), len(ed.Snapshot().Items))
	assert.NotEmpty(t, m.itemList.Items())
}
