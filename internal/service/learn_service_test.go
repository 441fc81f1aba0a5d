package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTenant = "tenant-1"

type learnFixture struct {
	db         *gorm.DB
	learn      *LearnService
	assignment *repository.AssignmentRepository
	course     *model.Course
	modules    []*model.CourseModule
	items      []*model.ContentItem
	employeeID string
}

func newLearnFixture(t *testing.T) *learnFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	assignmentRepo := repository.NewAssignmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	contentRepo := repository.NewContentItemRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	f := &learnFixture{
		db:         db,
		assignment: assignmentRepo,
		employeeID: model.GenerateUUID(),
		learn: NewLearnService(assignmentRepo, courseRepo, moduleRepo,
			contentRepo, progressRepo, profileRepo),
	}

	f.course = &model.Course{TenantID: testTenant, Title: "Onboarding", Status: model.CoursePublished}
	require.NoError(t, courseRepo.Create(f.course))

	for _, title := range []string{"Basics", "Advanced"} {
		m := &model.CourseModule{TenantID: testTenant, CourseID: f.course.ID, Title: title}
		require.NoError(t, moduleRepo.CreateAt(m, 0))
		f.modules = append(f.modules, m)
	}

	for _, seed := range []struct {
		moduleID string
		title    string
		duration float64
	}{
		{f.modules[0].ID, "intro", 0},
		{f.modules[0].ID, "setup", 0},
		{f.modules[1].ID, "deep-dive", 754.6},
	} {
		item := &model.ContentItem{
			TenantID: testTenant,
			ModuleID: seed.moduleID,
			Title:    seed.title,
			Type:     model.ContentLink,
			URL:      "https://example.com",
			Duration: seed.duration,
		}
		require.NoError(t, contentRepo.CreateAt(item, 0))
		f.items = append(f.items, item)
	}

	return f
}

func (f *learnFixture) assign(t *testing.T) {
	t.Helper()
	_, _, err := f.assignment.Replace(f.employeeID, testTenant, []string{f.course.ID})
	require.NoError(t, err)
}

func TestBuildCourseTreeAssemblesInOrder(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	tree, err := f.learn.BuildCourseTree(f.employeeID, f.course.ID)
	require.NoError(t, err)

	require.Len(t, tree.Modules, 2)
	assert.Equal(t, "Basics", tree.Modules[0].Title)
	assert.Equal(t, "Advanced", tree.Modules[1].Title)

	require.Len(t, tree.Modules[0].Items, 2)
	assert.Equal(t, "intro", tree.Modules[0].Items[0].Title)
	assert.Equal(t, "setup", tree.Modules[0].Items[1].Title)

	// 视频时长原样带入，小数部分不丢失
	require.Len(t, tree.Modules[1].Items, 1)
	assert.InDelta(t, 754.6, tree.Modules[1].Items[0].Duration, 0.001)

	// 没有进度记录时一律未完成
	for _, m := range tree.Modules {
		for _, it := range m.Items {
			assert.False(t, it.Completed)
		}
	}
}

func TestBuildCourseTreeFailClosedWithoutAssignment(t *testing.T) {
	f := newLearnFixture(t)

	tree, err := f.learn.BuildCourseTree(f.employeeID, f.course.ID)

	assert.Nil(t, tree)
	assert.ErrorIs(t, err, util.ErrTreeUnavailable)
}

func TestBuildCourseTreeUnknownCourse(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	// 课程不存在与未授权对外同一种错误
	tree, err := f.learn.BuildCourseTree(f.employeeID, "missing")
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, util.ErrTreeUnavailable)
}

func TestBuildCourseTreeIdempotent(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	first, err := f.learn.BuildCourseTree(f.employeeID, f.course.ID)
	require.NoError(t, err)
	second, err := f.learn.BuildCourseTree(f.employeeID, f.course.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSetProgressReflectedInTree(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	target := f.items[0]
	require.NoError(t, f.learn.SetProgress(f.employeeID, testTenant, target.ID, true))

	tree, err := f.learn.BuildCourseTree(f.employeeID, f.course.ID)
	require.NoError(t, err)
	assert.True(t, tree.Modules[0].Items[0].Completed)

	// 翻回未完成
	require.NoError(t, f.learn.SetProgress(f.employeeID, testTenant, target.ID, false))
	tree, err = f.learn.BuildCourseTree(f.employeeID, f.course.ID)
	require.NoError(t, err)
	assert.False(t, tree.Modules[0].Items[0].Completed)
}

func TestSetProgressRequiresAssignment(t *testing.T) {
	f := newLearnFixture(t)

	err := f.learn.SetProgress(f.employeeID, testTenant, f.items[0].ID, true)
	assert.ErrorIs(t, err, util.ErrNotAssigned)

	err = f.learn.SetProgress(f.employeeID, testTenant, "missing", true)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestGetLectureNeighbors(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	view, err := f.learn.GetLecture(f.employeeID, f.course.ID, f.items[1].ID)
	require.NoError(t, err)

	assert.Equal(t, "setup", view.Item.Title)
	require.NotNil(t, view.Neighbors.Prev)
	require.NotNil(t, view.Neighbors.Next)
	assert.Equal(t, f.items[0].ID, view.Neighbors.Prev.ContentItemID)
	// 下一项跨模块
	assert.Equal(t, f.items[2].ID, view.Neighbors.Next.ContentItemID)

	_, err = f.learn.GetLecture(f.employeeID, f.course.ID, "missing")
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestAssignedCoursesAggregation(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	require.NoError(t, f.learn.SetProgress(f.employeeID, testTenant, f.items[0].ID, true))

	views, err := f.learn.AssignedCourses(f.employeeID, testTenant)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, 3, views[0].TotalItems)
	assert.Equal(t, 1, views[0].Completed)
	assert.InDelta(t, 33.3, views[0].Percent, 0.4)
}

func TestCourseProgressRollup(t *testing.T) {
	f := newLearnFixture(t)
	f.assign(t)

	profileRepo := repository.NewProfileRepository(f.db)
	profile := &model.Profile{FullName: "Ada", Email: "ada@example.com", Role: model.Employee, Active: true}
	profile.ID = f.employeeID
	require.NoError(t, profileRepo.Create(profile))

	require.NoError(t, f.learn.SetProgress(f.employeeID, testTenant, f.items[0].ID, true))
	require.NoError(t, f.learn.SetProgress(f.employeeID, testTenant, f.items[1].ID, true))

	views, err := f.learn.CourseProgress(f.course.ID, testTenant)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, "Ada", views[0].FullName)
	assert.Equal(t, 2, views[0].Completed)
	assert.Equal(t, 3, views[0].TotalItems)

	_, err = f.learn.CourseProgress("missing", testTenant)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
