package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/features/competency/competencies/dto"
	m "kompetensi_backend/internals/features/competency/competencies/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := database.NewTestDB(t, &m.CompetencyModel{})
	return New(db, nil)
}

func boolPtr(b bool) *bool { return &b }

func mustCreate(t *testing.T, s *Service, name string, active bool) m.CompetencyModel {
	t.Helper()
	row, err := s.Create(context.Background(), dto.CreateCompetencyRequest{
		Name:        name,
		Description: "Deskripsi " + name,
		IsActive:    boolPtr(active),
	})
	require.NoError(t, err)
	return row
}

func TestCreateDefaultsAndRoundTrip(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, dto.CreateCompetencyRequest{Name: "  Leadership ", Description: "Memimpin tim"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.CompetencyID)
	assert.True(t, created.CompetencyIsActive)
	assert.False(t, created.CompetencyDeletedAt.Valid)

	got, err := s.GetByID(ctx, created.CompetencyID)
	require.NoError(t, err)
	assert.Equal(t, "Leadership", got.CompetencyName)
	assert.Equal(t, "Memimpin tim", got.CompetencyDescription)
	assert.True(t, got.CompetencyIsActive)
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	s := newService(t)

	_, err := s.Create(context.Background(), dto.CreateCompetencyRequest{Name: "   ", Description: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	fe, ok := err.(apperr.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe, "competency_name")
	assert.Contains(t, fe, "competency_description")

	rows, err := s.ListAll(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListActiveIsSubsetOfListAll(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	mustCreate(t, s, "A", true)
	mustCreate(t, s, "B", false)
	mustCreate(t, s, "C", true)

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	all, err := s.ListAll(ctx, ListQuery{})
	require.NoError(t, err)

	assert.Len(t, active, 2)
	assert.Len(t, all, 3)

	ids := map[uuid.UUID]bool{}
	for _, r := range all {
		ids[r.CompetencyID] = true
	}
	for _, r := range active {
		assert.True(t, r.CompetencyIsActive)
		assert.True(t, ids[r.CompetencyID])
	}
}

func TestListAllSearchIsCaseInsensitive(t *testing.T) {
	s := newService(t)
	mustCreate(t, s, "Komunikasi Efektif", true)
	mustCreate(t, s, "Leadership", true)

	rows, err := s.ListAll(context.Background(), ListQuery{Search: "KOMUNIKASI"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Komunikasi Efektif", rows[0].CompetencyName)
}

func TestListAllSearchMatchesWildcardsLiterally(t *testing.T) {
	s := newService(t)
	mustCreate(t, s, "Leadership", true)
	mustCreate(t, s, "Target 100%", true)
	ctx := context.Background()

	rows, err := s.ListAll(ctx, ListQuery{Search: "%"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Target 100%", rows[0].CompetencyName)

	rows, err = s.ListAll(ctx, ListQuery{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpdateOnlyChangesPresentFields(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Lama", true)

	out, err := s.Update(ctx, row.CompetencyID, dto.UpdateCompetencyRequest{Name: helper.Set("Baru")})
	require.NoError(t, err)
	assert.Equal(t, "Baru", out.CompetencyName)
	assert.Equal(t, row.CompetencyDescription, out.CompetencyDescription)
	assert.Equal(t, row.CompetencyIsActive, out.CompetencyIsActive)
}

func TestUpdateRejectsClearingRequiredField(t *testing.T) {
	s := newService(t)
	row := mustCreate(t, s, "X", true)

	_, err := s.Update(context.Background(), row.CompetencyID, dto.UpdateCompetencyRequest{Name: helper.Set("  ")})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := newService(t)
	_, err := s.Update(context.Background(), uuid.New(), dto.UpdateCompetencyRequest{Name: helper.Set("x")})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSoftDeleteActiveIsPolicyViolation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Aktif", true)

	_, err := s.SoftDelete(ctx, row.CompetencyID)
	require.Error(t, err)
	assert.True(t, apperr.IsPolicy(err))
	assert.Contains(t, err.Error(), apperr.MsgDeleteActive)

	got, err := s.GetByID(ctx, row.CompetencyID)
	require.NoError(t, err)
	assert.True(t, got.CompetencyIsActive)
	assert.False(t, got.CompetencyDeletedAt.Valid)
}

func TestSoftDeleteInactiveHidesRow(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Nonaktif", false)

	deleted, err := s.SoftDelete(ctx, row.CompetencyID)
	require.NoError(t, err)
	assert.False(t, deleted.CompetencyIsActive)
	assert.True(t, deleted.CompetencyDeletedAt.Valid)

	_, err = s.GetByID(ctx, row.CompetencyID)
	assert.True(t, apperr.IsNotFound(err))

	all, err := s.ListAll(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Update(ctx, row.CompetencyID, dto.UpdateCompetencyRequest{Name: helper.Set("lagi")})
	assert.True(t, apperr.IsNotFound(err))

	// kedua kali: NotFound, bukan jenis error baru
	_, err = s.SoftDelete(ctx, row.CompetencyID)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsPolicy(err))
}

func TestExistsIgnoresSoftDeleted(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Hapus", false)

	ok, err := s.Exists(ctx, row.CompetencyID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.SoftDelete(ctx, row.CompetencyID)
	require.NoError(t, err)

	ok, err = s.Exists(ctx, row.CompetencyID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamesByIDsSkipsDanglingAndDeleted(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	live := mustCreate(t, s, "Hidup", true)
	gone := mustCreate(t, s, "Hilang", false)
	_, err := s.SoftDelete(ctx, gone.CompetencyID)
	require.NoError(t, err)

	names, err := s.NamesByIDs(ctx, []uuid.UUID{live.CompetencyID, gone.CompetencyID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{live.CompetencyID: "Hidup"}, names)
}
