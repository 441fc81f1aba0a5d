package service

import (
	"errors"

	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// LearnService 员工学习视角：课程树、相邻导航、完成进度
type LearnService struct {
	assignmentRepo *repository.AssignmentRepository
	courseRepo     *repository.CourseRepository
	moduleRepo     *repository.ModuleRepository
	contentRepo    *repository.ContentItemRepository
	progressRepo   *repository.ProgressRepository
	profileRepo    *repository.ProfileRepository
}

func NewLearnService(
	assignmentRepo *repository.AssignmentRepository,
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	contentRepo *repository.ContentItemRepository,
	progressRepo *repository.ProgressRepository,
	profileRepo *repository.ProfileRepository,
) *LearnService {
	return &LearnService{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		contentRepo:    contentRepo,
		progressRepo:   progressRepo,
		profileRepo:    profileRepo,
	}
}

// BuildCourseTree 组装某员工可见的课程内容树
// 未授权与课程不存在统一返回 ErrTreeUnavailable，不向调用方区分两种情况
func (s *LearnService) BuildCourseTree(employeeID, courseID string) (*CourseTree, error) {
	assignment, err := s.assignmentRepo.Find(employeeID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTreeUnavailable
		}
		return nil, err
	}

	course, err := s.courseRepo.FindByID(courseID, assignment.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTreeUnavailable
		}
		return nil, err
	}

	modules, err := s.moduleRepo.ListByCourse(courseID, assignment.TenantID)
	if err != nil {
		return nil, err
	}

	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	items, err := s.contentRepo.ListByModuleIDs(moduleIDs, assignment.TenantID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	completion, err := s.progressRepo.CompletionMap(employeeID, itemIDs)
	if err != nil {
		return nil, err
	}

	// 按模块分组，ListByModuleIDs 已经按模块内顺序排好
	itemsByModule := make(map[string][]ContentNode, len(modules))
	for _, it := range items {
		itemsByModule[it.ModuleID] = append(itemsByModule[it.ModuleID], ContentNode{
			ID:        it.ID,
			ModuleID:  it.ModuleID,
			Title:     it.Title,
			Type:      it.Type,
			URL:       it.URL,
			MimeType:  it.MimeType,
			Duration:  it.Duration,
			SortOrder: it.SortOrder,
			Completed: completion[it.ID],
		})
	}

	tree := &CourseTree{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		ImageURL:    course.ImageURL,
		Status:      string(course.Status),
		Modules:     make([]ModuleNode, 0, len(modules)),
	}
	for _, m := range modules {
		tree.Modules = append(tree.Modules, ModuleNode{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			SortOrder:   m.SortOrder,
			Items:       itemsByModule[m.ID],
		})
	}
	return tree, nil
}

// LectureView 单个内容项加前后邻居
type LectureView struct {
	Item      *ContentNode `json:"item"`
	Neighbors Neighbors    `json:"neighbors"`
}

// GetLecture 取内容项详情及课程内的上一个、下一个
func (s *LearnService) GetLecture(employeeID, courseID, contentItemID string) (*LectureView, error) {
	tree, err := s.BuildCourseTree(employeeID, courseID)
	if err != nil {
		return nil, err
	}

	var item *ContentNode
	for _, n := range FlattenTree(tree) {
		if n.ID == contentItemID {
			node := n
			item = &node
			break
		}
	}
	if item == nil {
		return nil, util.ErrContentNotFound
	}

	return &LectureView{
		Item:      item,
		Neighbors: ComputeNeighbors(tree, contentItemID),
	}, nil
}

// SetProgress 标记内容项完成状态，同一(员工,内容项)幂等覆盖
// 内容项必须属于该员工被授权的课程
func (s *LearnService) SetProgress(employeeID, tenantID, contentItemID string, completed bool) error {
	item, err := s.contentRepo.FindByIDScoped(contentItemID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContentNotFound
		}
		return err
	}

	module, err := s.moduleRepo.FindByID(item.ModuleID, tenantID)
	if err != nil {
		return err
	}

	if _, err := s.assignmentRepo.Find(employeeID, module.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotAssigned
		}
		return err
	}

	return s.progressRepo.Upsert(employeeID, contentItemID, tenantID, completed)
}

// AssignedCourseView 员工课程列表里一行的聚合视图
type AssignedCourseView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Status      string  `json:"status"`
	TotalItems  int     `json:"totalItems"`
	Completed   int     `json:"completedItems"`
	Percent     float64 `json:"percent"`
}

// AssignedCourses 员工被授权课程及完成度聚合
func (s *LearnService) AssignedCourses(employeeID, tenantID string) ([]AssignedCourseView, error) {
	courseIDs, err := s.assignmentRepo.CourseIDsFor(employeeID, tenantID)
	if err != nil {
		return nil, err
	}

	views := make([]AssignedCourseView, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		course, err := s.courseRepo.FindByID(courseID, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		itemIDs, err := s.courseItemIDs(courseID, tenantID)
		if err != nil {
			return nil, err
		}

		completed, err := s.progressRepo.CountCompleted(employeeID, itemIDs)
		if err != nil {
			return nil, err
		}

		views = append(views, AssignedCourseView{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			ImageURL:    course.ImageURL,
			Status:      string(course.Status),
			TotalItems:  len(itemIDs),
			Completed:   int(completed),
			Percent:     percent(int(completed), len(itemIDs)),
		})
	}
	return views, nil
}

// EmployeeProgressView 课程维度下单个员工的完成度
type EmployeeProgressView struct {
	EmployeeID string  `json:"employeeId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Completed  int     `json:"completedItems"`
	TotalItems int     `json:"totalItems"`
	Percent    float64 `json:"percent"`
}

// CourseProgress 管理端：某课程所有被授权员工的完成度汇总
func (s *LearnService) CourseProgress(courseID, tenantID string) ([]EmployeeProgressView, error) {
	if _, err := s.courseRepo.FindByID(courseID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	itemIDs, err := s.courseItemIDs(courseID, tenantID)
	if err != nil {
		return nil, err
	}

	employeeIDs, err := s.assignmentRepo.EmployeeIDsFor(courseID, tenantID)
	if err != nil {
		return nil, err
	}

	views := make([]EmployeeProgressView, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		profile, err := s.profileRepo.FindByID(employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		completed, err := s.progressRepo.CountCompleted(employeeID, itemIDs)
		if err != nil {
			return nil, err
		}

		views = append(views, EmployeeProgressView{
			EmployeeID: profile.ID,
			FullName:   profile.FullName,
			Email:      profile.Email,
			Completed:  int(completed),
			TotalItems: len(itemIDs),
			Percent:    percent(int(completed), len(itemIDs)),
		})
	}
	return views, nil
}

// EmployeeProgress 管理端：某员工在各授权课程的完成度汇总
func (s *LearnService) EmployeeProgress(employeeID, tenantID string) ([]AssignedCourseView, error) {
	return s.AssignedCourses(employeeID, tenantID)
}

func (s *LearnService) courseItemIDs(courseID, tenantID string) ([]string, error) {
	modules, err := s.moduleRepo.ListByCourse(courseID, tenantID)
	if err != nil {
		return nil, err
	}
	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	items, err := s.contentRepo.ListByModuleIDs(moduleIDs, tenantID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids, nil
}

func percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
