package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previdlabs/ppp/internal/catalog"
)

func TestBenefitIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range catalog.Benefits() {
		assert.False(t, seen[b.ID], "duplicate benefit id %s", b.ID)
		seen[b.ID] = true
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Documents, "benefit %s has no document template", b.ID)
	}
}

func TestDocuments(t *testing.T) {
	docs, ok := catalog.Documents("pensao-morte")
	require.True(t, ok)
	assert.Contains(t, docs, "Certidão de óbito")

	_, ok = catalog.Documents("nao-existe")
	assert.False(t, ok)
}

func TestDocumentsReturnsACopy(t *testing.T) {
	docs, ok := catalog.Documents("pensao-morte")
	require.True(t, ok)
	docs[0] = "alterado"

	again, _ := catalog.Documents("pensao-morte")
	assert.NotEqual(t, "alterado", again[0])
}

func TestProofTextsFollowCatalogOrder(t *testing.T) {
	proofs := catalog.RuralProofs()
	require.GreaterOrEqual(t, len(proofs), 3)

	// select the third and first proofs, in that order
	selected := map[string]bool{
		proofs[2].ID: true,
		proofs[0].ID: true,
	}
	texts := catalog.ProofTexts(selected)
	require.Len(t, texts, 2)
	assert.Equal(t, proofs[0].Name, texts[0], "catalog order wins over selection order")
	assert.Equal(t, proofs[2].Name, texts[1])
}

func TestProofTextsSkipsUnknownAndUnselected(t *testing.T) {
	texts := catalog.ProofTexts(map[string]bool{
		"nao-existe":     true,
		"itr":            false,
		"cadastro-incra": true,
	})
	require.Len(t, texts, 1)
	assert.Equal(t, "Cadastro do INCRA", texts[0])
}
