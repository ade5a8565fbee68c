package casestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/pkg/log"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cases.json")
}

func openTest(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, log.NewNop())
	require.NoError(t, err)
	return s
}

func someFields(name string) Fields {
	return Fields{
		ClientName:  name,
		ClientCPF:   "123.456.789-00",
		BenefitID:   "bpc-loas",
		BenefitName: "BPC/LOAS - Benefício de Prestação Continuada",
		ChecklistItems: []model.ChecklistItem{
			{ID: model.NewItemID(), Text: "CPF"},
			{ID: model.NewItemID(), Text: "Comprovante de residência", Checked: true},
		},
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := openTest(t, testPath(t))
	assert.True(t, s.Loaded())
	assert.Empty(t, s.All())
}

func TestOpenBadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "garbage", content: "{not json!!"},
		{name: "wrong shape", content: `{"cases": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testPath(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			s := openTest(t, path)
			assert.True(t, s.Loaded())
			assert.Empty(t, s.All(), "bad content must fall back to an empty collection")
		})
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := openTest(t, testPath(t))
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id, err := s.Create(someFields("Maria"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	a, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Maria", a.ClientName)
	assert.True(t, a.CreatedAt.Equal(a.UpdatedAt), "createdAt must equal updatedAt at creation")
	assert.True(t, a.CreatedAt.Equal(now))
}

func TestCreateIDsAreUnique(t *testing.T) {
	s := openTest(t, testPath(t))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := s.Create(someFields("x"))
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	s := openTest(t, testPath(t))
	first, err := s.Create(someFields("primeiro"))
	require.NoError(t, err)
	second, err := s.Create(someFields("segundo"))
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)
}

func TestUpdate(t *testing.T) {
	s := openTest(t, testPath(t))
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	id, err := s.Create(someFields("Maria"))
	require.NoError(t, err)

	later := created.Add(time.Hour)
	s.now = func() time.Time { return later }

	f := someFields("Maria da Silva")
	require.NoError(t, s.Update(id, f))

	a, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Maria da Silva", a.ClientName)
	assert.Equal(t, id, a.ID, "update must not change the id")
	assert.True(t, a.CreatedAt.Equal(created), "update must not change createdAt")
	assert.True(t, a.UpdatedAt.Equal(later), "update must advance updatedAt")
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s := openTest(t, testPath(t))
	id, err := s.Create(someFields("Maria"))
	require.NoError(t, err)

	require.NoError(t, s.Update("atendimento-nope", someFields("outro")))

	a, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Maria", a.ClientName)
	assert.Len(t, s.All(), 1)
}

func TestDelete(t *testing.T) {
	s := openTest(t, testPath(t))
	id, err := s.Create(someFields("Maria"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	_, ok := s.Get(id)
	assert.False(t, ok)

	// unknown id is a no-op
	require.NoError(t, s.Delete(id))
	assert.Empty(t, s.All())
}

func TestGetReflectsLastOperation(t *testing.T) {
	s := openTest(t, testPath(t))

	id, err := s.Create(someFields("a"))
	require.NoError(t, err)
	require.NoError(t, s.Update(id, someFields("b")))
	a, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "b", a.ClientName)

	require.NoError(t, s.Delete(id))
	_, ok = s.Get(id)
	assert.False(t, ok, "get after delete must be absent")
}

func TestRoundTrip(t *testing.T) {
	path := testPath(t)
	s := openTest(t, path)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.Create(someFields("Maria"))
	require.NoError(t, err)
	_, err = s.Create(someFields("João"))
	require.NoError(t, err)
	before := s.All()

	// simulate a restart
	reopened := openTest(t, path)
	after := reopened.All()

	if diff := cmp.Diff(before, after, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("collection changed across restart (-before +after):\n%s", diff)
	}
}

func TestMutationsPersistImmediately(t *testing.T) {
	path := testPath(t)
	s := openTest(t, path)

	id, err := s.Create(someFields("Maria"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(id))

	reopened := openTest(t, path)
	assert.Empty(t, reopened.All(), "delete must be on disk before returning")
}
