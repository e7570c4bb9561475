package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/testutil"
)

func setupGenerationRepo(t *testing.T) (*GenerationRepository, *gorm.DB, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := NewGenerationRepository(db)
	return repo, db, func() { testutil.CleanupTestDB(t, db) }
}

func TestGenerationRepository_ListByUser(t *testing.T) {
	repo, db, cleanup := setupGenerationRepo(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	voice := testutil.TestVoice(t, db, testutil.WithVoiceName("Nova"))

	first := testutil.TestGeneration(t, db, user.ID, voice.ID, "first")
	second := testutil.TestGeneration(t, db, user.ID, voice.ID, "second")
	testutil.TestGeneration(t, db, other.ID, voice.ID, "not mine")

	// 拉开时间戳，保证倒序稳定
	require.NoError(t, db.Model(&model.GenerationRecord{}).
		Where("id = ?", first.ID).
		Update("generated_at", time.Now().Add(-time.Hour)).Error)

	rows, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, "Nova", rows[0].VoiceName)
}

func TestGenerationRepository_ListByUser_Empty(t *testing.T) {
	repo, db, cleanup := setupGenerationRepo(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	rows, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerationRepository_CountByUser(t *testing.T) {
	repo, db, cleanup := setupGenerationRepo(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	voice := testutil.TestVoice(t, db)
	testutil.TestGeneration(t, db, user.ID, voice.ID, "one")
	testutil.TestGeneration(t, db, user.ID, voice.ID, "two")

	count, err := repo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
