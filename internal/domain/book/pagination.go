package book

import "math"

// 分页默认值与上限
const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// NormalizePage 校验分页参数
// page或pageSize小于1返回ErrInvalidPage；pageSize超过上限时截断为MaxPageSize
// 偏移量超出int范围的page截断为最后一个可表示的页，结果必然为空
func NormalizePage(page, pageSize int) (int, int, error) {
	if page < 1 || pageSize < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxPage := math.MaxInt/pageSize + 1; page > maxPage {
		page = maxPage
	}
	return page, pageSize, nil
}

// Offset 计算跳过的记录数，溢出时返回math.MaxInt
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
