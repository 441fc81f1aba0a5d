package service

import "lms_backend/internal/model"

// CourseTree 课程内容树，按排序规则组装后的只读视图
type CourseTree struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Status      string       `json:"status"`
	Modules     []ModuleNode `json:"modules"`
}

type ModuleNode struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	SortOrder   int           `json:"sortOrder"`
	Items       []ContentNode `json:"items"`
}

type ContentNode struct {
	ID          string            `json:"id"`
	ModuleID    string            `json:"moduleId"`
	Title       string            `json:"title"`
	Type        model.ContentType `json:"type"`
	URL         string            `json:"url"`
	MimeType    string            `json:"mimeType,omitempty"`
	Duration    float64           `json:"duration,omitempty"`
	SortOrder   int               `json:"sortOrder"`
	Completed   bool              `json:"completed"`
}

// NavTarget 相邻内容项的跳转目标
type NavTarget struct {
	ContentItemID string `json:"contentItemId"`
	ModuleID      string `json:"moduleId"`
	Title         string `json:"title"`
}

// Neighbors 当前内容项在课程里的前后邻居，任一侧不存在时为nil
type Neighbors struct {
	Prev *NavTarget `json:"prev"`
	Next *NavTarget `json:"next"`
}

// FlattenTree 按模块顺序再按模块内顺序展开成单一线性序列
func FlattenTree(tree *CourseTree) []ContentNode {
	if tree == nil {
		return nil
	}
	var flat []ContentNode
	for _, m := range tree.Modules {
		flat = append(flat, m.Items...)
	}
	return flat
}

// ComputeNeighbors 在展开序列里按ID定位当前项并取两侧邻居
// 序列里找不到该ID时两侧都为nil
func ComputeNeighbors(tree *CourseTree, contentItemID string) Neighbors {
	flat := FlattenTree(tree)

	idx := -1
	for i, n := range flat {
		if n.ID == contentItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Neighbors{}
	}

	var nav Neighbors
	if idx > 0 {
		nav.Prev = navTarget(flat[idx-1])
	}
	if idx < len(flat)-1 {
		nav.Next = navTarget(flat[idx+1])
	}
	return nav
}

func navTarget(n ContentNode) *NavTarget {
	return &NavTarget{ContentItemID: n.ID, ModuleID: n.ModuleID, Title: n.Title}
}
