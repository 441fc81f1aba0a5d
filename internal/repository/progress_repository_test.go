package repository

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressUpsertToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	employeeID := model.GenerateUUID()
	itemID := model.GenerateUUID()

	require.NoError(t, repo.Upsert(employeeID, itemID, testTenant, true))

	statusMap, err := repo.CompletionMap(employeeID, []string{itemID})
	require.NoError(t, err)
	assert.True(t, statusMap[itemID])

	var row model.ContentProgress
	require.NoError(t, db.Where("employee_id = ? AND content_item_id = ?", employeeID, itemID).First(&row).Error)
	assert.NotNil(t, row.CompletedAt)

	// 翻回未完成：同一行被更新，不产生第二条
	require.NoError(t, repo.Upsert(employeeID, itemID, testTenant, false))

	var count int64
	require.NoError(t, db.Model(&model.ContentProgress{}).
		Where("employee_id = ? AND content_item_id = ?", employeeID, itemID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	statusMap, err = repo.CompletionMap(employeeID, []string{itemID})
	require.NoError(t, err)
	assert.False(t, statusMap[itemID])
}

func TestCompletionMapDefaultsToFalse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	statusMap, err := repo.CompletionMap(model.GenerateUUID(), []string{"missing-item"})
	require.NoError(t, err)

	// 没有记录的条目不出现在 map 里，取值即 false
	assert.False(t, statusMap["missing-item"])

	statusMap, err = repo.CompletionMap(model.GenerateUUID(), nil)
	require.NoError(t, err)
	assert.Empty(t, statusMap)
}

func TestCountCompleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	employeeID := model.GenerateUUID()
	done := model.GenerateUUID()
	undone := model.GenerateUUID()

	require.NoError(t, repo.Upsert(employeeID, done, testTenant, true))
	require.NoError(t, repo.Upsert(employeeID, undone, testTenant, false))

	count, err := repo.CountCompleted(employeeID, []string{done, undone})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountCompleted(employeeID, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
