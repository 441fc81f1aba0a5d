package repository

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testTenant = "tenant-1"

func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()
	course := &model.Course{TenantID: testTenant, Title: "Onboarding"}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedModules(t *testing.T, repo *ModuleRepository, courseID string, titles ...string) []*model.CourseModule {
	t.Helper()
	out := make([]*model.CourseModule, 0, len(titles))
	for _, title := range titles {
		m := &model.CourseModule{TenantID: testTenant, CourseID: courseID, Title: title}
		require.NoError(t, repo.CreateAt(m, 0))
		out = append(out, m)
	}
	return out
}

func moduleTitles(t *testing.T, repo *ModuleRepository, courseID string) []string {
	t.Helper()
	modules, err := repo.ListByCourse(courseID, testTenant)
	require.NoError(t, err)
	titles := make([]string, 0, len(modules))
	for _, m := range modules {
		titles = append(titles, m.Title)
	}
	return titles
}

func TestModuleAppendKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	seedModules(t, repo, course.ID, "A", "B", "C")

	assert.Equal(t, []string{"A", "B", "C"}, moduleTitles(t, repo, course.ID))

	modules, err := repo.ListByCourse(course.ID, testTenant)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{modules[0].SortOrder, modules[1].SortOrder, modules[2].SortOrder})
}

func TestModuleInsertAtHeadShiftsSiblings(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	seedModules(t, repo, course.ID, "A", "B", "C")

	head := &model.CourseModule{TenantID: testTenant, CourseID: course.ID, Title: "Intro"}
	require.NoError(t, repo.CreateAt(head, 1))

	assert.Equal(t, 1, head.SortOrder)
	assert.Equal(t, []string{"Intro", "A", "B", "C"}, moduleTitles(t, repo, course.ID))

	modules, err := repo.ListByCourse(course.ID, testTenant)
	require.NoError(t, err)
	got := make([]int, 0, len(modules))
	for _, m := range modules {
		got = append(got, m.SortOrder)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestModuleInsertMiddle(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	seedModules(t, repo, course.ID, "A", "B", "C")

	mid := &model.CourseModule{TenantID: testTenant, CourseID: course.ID, Title: "A2"}
	require.NoError(t, repo.CreateAt(mid, 2))

	assert.Equal(t, []string{"A", "A2", "B", "C"}, moduleTitles(t, repo, course.ID))
}

func TestModuleInsertBeyondMaxAppends(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	seedModules(t, repo, course.ID, "A", "B")

	tail := &model.CourseModule{TenantID: testTenant, CourseID: course.ID, Title: "Z"}
	require.NoError(t, repo.CreateAt(tail, 99))

	// 超出当前最大值时不平移任何兄弟，直接按给定值落位
	assert.Equal(t, 99, tail.SortOrder)
	assert.Equal(t, []string{"A", "B", "Z"}, moduleTitles(t, repo, course.ID))
}

func TestModuleMoveBackward(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	mods := seedModules(t, repo, course.ID, "A", "B", "C", "D")

	// D 挪到第2位，中间的整体后移
	require.NoError(t, repo.Move(mods[3].ID, testTenant, 2))

	assert.Equal(t, []string{"A", "D", "B", "C"}, moduleTitles(t, repo, course.ID))
}

func TestModuleMoveForward(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	mods := seedModules(t, repo, course.ID, "A", "B", "C", "D")

	// A 挪到第3位，被越过的整体前移
	require.NoError(t, repo.Move(mods[0].ID, testTenant, 3))

	assert.Equal(t, []string{"B", "C", "A", "D"}, moduleTitles(t, repo, course.ID))
}

func TestModuleMoveToSamePositionIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	mods := seedModules(t, repo, course.ID, "A", "B", "C")

	require.NoError(t, repo.Move(mods[1].ID, testTenant, 2))

	assert.Equal(t, []string{"A", "B", "C"}, moduleTitles(t, repo, course.ID))
}

func TestModuleDeleteLeavesGap(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	mods := seedModules(t, repo, course.ID, "A", "B", "C")

	require.NoError(t, repo.Delete(mods[1].ID, testTenant))

	// 不压缩编号，剩余顺序不变
	assert.Equal(t, []string{"A", "C"}, moduleTitles(t, repo, course.ID))

	modules, err := repo.ListByCourse(course.ID, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 1, modules[0].SortOrder)
	assert.Equal(t, 3, modules[1].SortOrder)
}

func TestModuleOrderingScopedByTenant(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	seedModules(t, repo, course.ID, "A", "B")

	// 另一租户同 course_id 下的数据不参与平移
	other := &model.CourseModule{TenantID: "tenant-2", CourseID: course.ID, Title: "X", SortOrder: 1}
	require.NoError(t, db.Create(other).Error)

	head := &model.CourseModule{TenantID: testTenant, CourseID: course.ID, Title: "Intro"}
	require.NoError(t, repo.CreateAt(head, 1))

	var check model.CourseModule
	require.NoError(t, db.Where("id = ?", other.ID).First(&check).Error)
	assert.Equal(t, 1, check.SortOrder)
}

func TestContentItemOrdering(t *testing.T) {
	db := newTestDB(t)
	moduleRepo := NewModuleRepository(db)
	contentRepo := NewContentItemRepository(db)
	course := seedCourse(t, db)
	mods := seedModules(t, moduleRepo, course.ID, "A")

	titles := []string{"one", "two", "three"}
	items := make([]*model.ContentItem, 0, len(titles))
	for _, title := range titles {
		item := &model.ContentItem{
			TenantID: testTenant,
			ModuleID: mods[0].ID,
			Title:    title,
			Type:     model.ContentLink,
			URL:      "https://example.com/" + title,
		}
		require.NoError(t, contentRepo.CreateAt(item, 0))
		items = append(items, item)
	}

	head := &model.ContentItem{
		TenantID: testTenant,
		ModuleID: mods[0].ID,
		Title:    "zero",
		Type:     model.ContentLink,
		URL:      "https://example.com/zero",
	}
	require.NoError(t, contentRepo.CreateAt(head, 1))

	listed, err := contentRepo.ListByModule(mods[0].ID, testTenant)
	require.NoError(t, err)
	got := make([]string, 0, len(listed))
	for _, it := range listed {
		got = append(got, it.Title)
	}
	assert.Equal(t, []string{"zero", "one", "two", "three"}, got)

	require.NoError(t, contentRepo.Move(items[2].ID, testTenant, 1))
	listed, err = contentRepo.ListByModule(mods[0].ID, testTenant)
	require.NoError(t, err)
	assert.Equal(t, "three", listed[0].Title)
}

func TestListByModuleIDsBatched(t *testing.T) {
	db := newTestDB(t)
	moduleRepo := NewModuleRepository(db)
	contentRepo := NewContentItemRepository(db)
	course := seedCourse(t, db)
	mods := seedModules(t, moduleRepo, course.ID, "A", "B")

	for i, moduleID := range []string{mods[0].ID, mods[1].ID} {
		item := &model.ContentItem{
			TenantID: testTenant,
			ModuleID: moduleID,
			Title:    []string{"a1", "b1"}[i],
			Type:     model.ContentLink,
		}
		require.NoError(t, contentRepo.CreateAt(item, 0))
	}

	items, err := contentRepo.ListByModuleIDs([]string{mods[0].ID, mods[1].ID}, testTenant)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = contentRepo.ListByModuleIDs(nil, testTenant)
	require.NoError(t, err)
	assert.Empty(t, items)
}
