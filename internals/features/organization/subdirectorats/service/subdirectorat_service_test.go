package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/features/organization/subdirectorats/dto"
	m "kompetensi_backend/internals/features/organization/subdirectorats/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := database.NewTestDB(t, &m.SubdirectoratModel{})
	return New(db, nil)
}

func boolPtr(b bool) *bool { return &b }

func mustCreate(t *testing.T, s *Service, name string, active bool) m.SubdirectoratModel {
	t.Helper()
	row, err := s.Create(context.Background(), dto.CreateSubdirectoratRequest{
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

	created, err := s.Create(ctx, dto.CreateSubdirectoratRequest{Name: "  Leadership ", Description: "Menyusun rencana kerja"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.SubdirectoratID)
	assert.True(t, created.SubdirectoratIsActive)
	assert.False(t, created.SubdirectoratDeletedAt.Valid)

	got, err := s.GetByID(ctx, created.SubdirectoratID)
	require.NoError(t, err)
	assert.Equal(t, "Subdit Perencanaan", got.SubdirectoratName)
	assert.Equal(t, "Menyusun rencana kerja", got.SubdirectoratDescription)
	assert.True(t, got.SubdirectoratIsActive)
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	s := newService(t)

	_, err := s.Create(context.Background(), dto.CreateSubdirectoratRequest{Name: "   ", Description: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	fe, ok := err.(apperr.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe, "subdirectorat_name")
	assert.Contains(t, fe, "subdirectorat_description")

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
		ids[r.SubdirectoratID] = true
	}
	for _, r := range active {
		assert.True(t, r.SubdirectoratIsActive)
		assert.True(t, ids[r.SubdirectoratID])
	}
}

func TestListAllSearchIsCaseInsensitive(t *testing.T) {
	s := newService(t)
	mustCreate(t, s, "Subdit Pengembangan SDM", true)
	mustCreate(t, s, "Subdit Perencanaan", true)

	rows, err := s.ListAll(context.Background(), ListQuery{Search: "PENGEMBANGAN"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Subdit Pengembangan SDM", rows[0].SubdirectoratName)
}

func TestUpdateOnlyChangesPresentFields(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Lama", true)

	out, err := s.Update(ctx, row.SubdirectoratID, dto.UpdateSubdirectoratRequest{Name: helper.Set("Baru")})
	require.NoError(t, err)
	assert.Equal(t, "Baru", out.SubdirectoratName)
	assert.Equal(t, row.SubdirectoratDescription, out.SubdirectoratDescription)
	assert.Equal(t, row.SubdirectoratIsActive, out.SubdirectoratIsActive)
}

func TestUpdateRejectsClearingRequiredField(t *testing.T) {
	s := newService(t)
	row := mustCreate(t, s, "X", true)

	_, err := s.Update(context.Background(), row.SubdirectoratID, dto.UpdateSubdirectoratRequest{Name: helper.Set("  ")})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := newService(t)
	_, err := s.Update(context.Background(), uuid.New(), dto.UpdateSubdirectoratRequest{Name: helper.Set("x")})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSoftDeleteActiveIsPolicyViolation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Aktif", true)

	_, err := s.SoftDelete(ctx, row.SubdirectoratID)
	require.Error(t, err)
	assert.True(t, apperr.IsPolicy(err))
	assert.Contains(t, err.Error(), apperr.MsgDeleteActive)

	got, err := s.GetByID(ctx, row.SubdirectoratID)
	require.NoError(t, err)
	assert.True(t, got.SubdirectoratIsActive)
	assert.False(t, got.SubdirectoratDeletedAt.Valid)
}

func TestSoftDeleteInactiveHidesRow(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	row := mustCreate(t, s, "Nonaktif", false)

	deleted, err := s.SoftDelete(ctx, row.SubdirectoratID)
	require.NoError(t, err)
	assert.False(t, deleted.SubdirectoratIsActive)
	assert.True(t, deleted.SubdirectoratDeletedAt.Valid)

	_, err = s.GetByID(ctx, row.SubdirectoratID)
	assert.True(t, apperr.IsNotFound(err))

	all, err := s.ListAll(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Update(ctx, row.SubdirectoratID, dto.UpdateSubdirectoratRequest{Name: helper.Set("lagi")})
	assert.True(t, apperr.IsNotFound(err))

	// kedua kali: NotFound, bukan jenis error baru
	_, err = s.SoftDelete(ctx, row.SubdirectoratID)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsPolicy(err))
}

func TestNamesByIDsSkipsDanglingAndDeleted(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	live := mustCreate(t, s, "Hidup", true)
	gone := mustCreate(t, s, "Hilang", false)
	_, err := s.SoftDelete(ctx, gone.SubdirectoratID)
	require.NoError(t, err)

	names, err := s.NamesByIDs(ctx, []uuid.UUID{live.SubdirectoratID, gone.SubdirectoratID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{live.SubdirectoratID: "Hidup"}, names)
}
