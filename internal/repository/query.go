package repository

import (
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ==================== 通用查询构造 ====================

// PageQuery 分页与排序请求
type PageQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDirection"`
}

// Page 分页查询结果
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// SearchCondition 查询条件
type SearchCondition = func(db *gorm.DB) *gorm.DB

var namer = schema.NamingStrategy{}

// MakeCondition 根据过滤对象的 search 标签构造查询条件
// search:"contains" 大小写敏感的子串匹配；search:"exact" 等值匹配
// 未赋值的字段（零值/空指针）不产生约束；列名取字段的 snake_case，
// 可用 column 标签覆盖。所有值都走参数绑定，不拼接进 SQL 文本
func MakeCondition(filter interface{}) SearchCondition {
	return func(db *gorm.DB) *gorm.DB {
		if filter == nil {
			return db
		}
		v := reflect.ValueOf(filter)
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return db
			}
			v = v.Elem()
		}
		t := v.Type()
		if t.Kind() != reflect.Struct {
			return db
		}

		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			kind := field.Tag.Get("search")
			if kind == "" || kind == "-" {
				continue
			}

			fv := v.Field(i)
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			} else if fv.IsZero() {
				continue
			}

			column := field.Tag.Get("column")
			if column == "" {
				column = namer.ColumnName("", field.Name)
			}

			switch kind {
			case "contains":
				// SQLite 的 LIKE 对 ASCII 不区分大小写，用 instr 保证大小写敏感的包含匹配
				db = db.Where("instr("+column+", ?) > 0", fv.Interface())
			case "exact":
				db = db.Where(column+" = ?", fv.Interface())
			}
		}
		return db
	}
}

// OrderClause 构造排序子句
// orderBy 不在 sortable 白名单内时回退到 created_at，避免查询失败
func OrderClause(pq PageQuery, sortable map[string]bool) string {
	column := namer.ColumnName("", strings.TrimSpace(pq.OrderBy))
	if pq.OrderBy == "" || !sortable[column] {
		column = "created_at"
	}
	dir := strings.ToUpper(pq.OrderDir)
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}
	return column + " " + dir
}

// FindPage 执行分页查询：同一过滤条件下先计数再取页
// 返回 {items, total, page, pageSize}
func FindPage[T any](db *gorm.DB, cond SearchCondition, pq PageQuery, sortable map[string]bool) (*Page[T], error) {
	var items []T
	var total int64

	query := db.Model(new(T)).Scopes(cond)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	if pq.Page < 1 {
		pq.Page = 1
	}
	if pq.PageSize < 1 {
		pq.PageSize = 20
	}
	offset := (pq.Page - 1) * pq.PageSize

	err := query.
		Order(OrderClause(pq, sortable)).
		Limit(pq.PageSize).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: pq.Page, PageSize: pq.PageSize}, nil
}

// sortableColumns 组装白名单
func sortableColumns(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}
