package util

import (
	"strconv"
)

// ParsePosition 解析排序位置，要求非负整数
func ParsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidPosition
	}
	return n, nil
}
