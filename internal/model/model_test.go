package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/previdlabs/ppp/internal/model"
)

func TestFormatCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "partial 3", input: "123", want: "123"},
		{name: "partial 5", input: "12345", want: "123.45"},
		{name: "partial 8", input: "12345678", want: "123.456.78"},
		{name: "full", input: "12345678900", want: "123.456.789-00"},
		{name: "overflow dropped", input: "123456789001234", want: "123.456.789-00"},
		{name: "letters ignored", input: "123abc456", want: "123.456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.FormatCPF(tt.input))
		})
	}
}

func TestFormatCPFIsIdempotent(t *testing.T) {
	for _, input := range []string{"12345678900", "123.456", "123.456.789-00"} {
		once := model.FormatCPF(input)
		assert.Equal(t, once, model.FormatCPF(once), "mask must be stable on already-masked input")
	}
}

func TestIDGenerators(t *testing.T) {
	assert.True(t, strings.HasPrefix(model.NewCaseID(), "atendimento-"))
	assert.True(t, strings.HasPrefix(model.NewItemID(), "item-"))
	assert.NotEqual(t, model.NewCaseID(), model.NewCaseID())
	assert.NotEqual(t, model.NewItemID(), model.NewItemID())
}

func TestStats(t *testing.T) {
	delivered, pending := model.Stats([]model.ChecklistItem{
		{Checked: true}, {Checked: false}, {Checked: false},
	})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 2, pending)
}
