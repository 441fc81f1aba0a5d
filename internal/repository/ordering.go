package repository

import (
	"gorm.io/gorm"
)

// 模块与内容条目共用同一套显式 sort_order 重排逻辑：
// 先平移邻居再落位目标，两步必须在同一事务内完成，乱序会产生位置冲突。
// 删除后不压缩编号，读取始终按 sort_order 排序，空洞是允许的。

// shiftFrom 把 parent 范围内 sort_order >= from 的兄弟整体平移 delta
func shiftFrom(tx *gorm.DB, mdl interface{}, parentCol, parentID, tenantID string, from, delta int) error {
	return tx.Model(mdl).
		Where(parentCol+" = ? AND tenant_id = ? AND sort_order >= ?", parentID, tenantID, from).
		UpdateColumn("sort_order", gorm.Expr("sort_order + ?", delta)).Error
}

// shiftRange 把 parent 范围内 sort_order 落在 [from, to] 的兄弟整体平移 delta
func shiftRange(tx *gorm.DB, mdl interface{}, parentCol, parentID, tenantID string, from, to, delta int) error {
	return tx.Model(mdl).
		Where(parentCol+" = ? AND tenant_id = ? AND sort_order BETWEEN ? AND ?", parentID, tenantID, from, to).
		UpdateColumn("sort_order", gorm.Expr("sort_order + ?", delta)).Error
}

// maxSortOrder 读取 parent 范围内当前最大的 sort_order，空集合返回 0
func maxSortOrder(tx *gorm.DB, mdl interface{}, parentCol, parentID, tenantID string) (int, error) {
	var max int
	err := tx.Model(mdl).
		Where(parentCol+" = ? AND tenant_id = ?", parentID, tenantID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

// insertPosition 为插入腾出 position：占用者及其后继全部后移一位（insert-before 语义）。
// position 大于当前最大值时直接追加，不平移。返回实际落位。
func insertPosition(tx *gorm.DB, mdl interface{}, parentCol, parentID, tenantID string, position int) (int, error) {
	max, err := maxSortOrder(tx, mdl, parentCol, parentID, tenantID)
	if err != nil {
		return 0, err
	}

	if position <= 0 || position > max {
		// 追加到末尾
		if position <= 0 {
			position = max + 1
		}
		return position, nil
	}

	if err := shiftFrom(tx, mdl, parentCol, parentID, tenantID, position, +1); err != nil {
		return 0, err
	}
	return position, nil
}

// movePosition 把目标从 oldOrder 挪到 newOrder：
// 前移时 [new, old-1] 后移一位，后移时 [old+1, new] 前移一位，随后目标落位由调用方完成。
func movePosition(tx *gorm.DB, mdl interface{}, parentCol, parentID, tenantID string, oldOrder, newOrder int) error {
	if newOrder == oldOrder {
		return nil
	}

	if newOrder < oldOrder {
		return shiftRange(tx, mdl, parentCol, parentID, tenantID, newOrder, oldOrder-1, +1)
	}
	return shiftRange(tx, mdl, parentCol, parentID, tenantID, oldOrder+1, newOrder, -1)
}
