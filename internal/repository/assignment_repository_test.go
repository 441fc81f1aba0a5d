package repository

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourses(t *testing.T, repo *CourseRepository, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for _, title := range titles {
		course := &model.Course{TenantID: testTenant, Title: title}
		require.NoError(t, repo.Create(course))
		ids = append(ids, course.ID)
	}
	return ids
}

func TestAssignmentReplaceDiff(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db)
	courseIDs := seedCourses(t, NewCourseRepository(db), "A", "B", "C")
	employeeID := model.GenerateUUID()

	added, removed, err := repo.Replace(employeeID, testTenant, courseIDs[:2])
	require.NoError(t, err)
	assert.ElementsMatch(t, courseIDs[:2], added)
	assert.Empty(t, removed)

	// B 保留，A 移除，C 新增
	added, removed, err = repo.Replace(employeeID, testTenant, courseIDs[1:])
	require.NoError(t, err)
	assert.Equal(t, []string{courseIDs[2]}, added)
	assert.Equal(t, []string{courseIDs[0]}, removed)

	current, err := repo.CourseIDsFor(employeeID, testTenant)
	require.NoError(t, err)
	assert.ElementsMatch(t, courseIDs[1:], current)
}

func TestAssignmentReplaceIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db)
	courseIDs := seedCourses(t, NewCourseRepository(db), "A")
	employeeID := model.GenerateUUID()

	_, _, err := repo.Replace(employeeID, testTenant, courseIDs)
	require.NoError(t, err)

	added, removed, err := repo.Replace(employeeID, testTenant, courseIDs)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestAssignmentFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db)
	courseIDs := seedCourses(t, NewCourseRepository(db), "A")
	employeeID := model.GenerateUUID()

	_, _, err := repo.Replace(employeeID, testTenant, courseIDs)
	require.NoError(t, err)

	assignment, err := repo.Find(employeeID, courseIDs[0])
	require.NoError(t, err)
	assert.Equal(t, testTenant, assignment.TenantID)

	_, err = repo.Find(employeeID, "other-course")
	assert.Error(t, err)
}

func TestEmployeeIDsFor(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepository(db)
	courseIDs := seedCourses(t, NewCourseRepository(db), "A")

	first := model.GenerateUUID()
	second := model.GenerateUUID()
	for _, employeeID := range []string{first, second} {
		_, _, err := repo.Replace(employeeID, testTenant, courseIDs)
		require.NoError(t, err)
	}

	ids, err := repo.EmployeeIDsFor(courseIDs[0], testTenant)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, ids)
}
