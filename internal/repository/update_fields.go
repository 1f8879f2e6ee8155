package repository

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// ==================== 更新字段归一化 ====================
// 部分更新的字段以 map 进来，键可能写成 JSON 名、Go 字段名或列名。
// gorm 的 map Updates 会把 Go 字段名解析成列、把未知键当裸列名拼进 SQL，
// 所以先统一解析成列名：id/created_at 一律丢弃，解析不出来的键直接拒绝

// UnknownFieldError 无法解析到实体列的更新键
type UnknownFieldError struct {
	Key string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("未知的更新字段: %s", e.Key)
}

var updateSchemaCache sync.Map

// 创建后不可变的列，传进来直接丢弃
var immutableColumns = map[string]struct{}{
	"id":         {},
	"created_at": {},
}

// NormalizeUpdates 把更新 map 的键统一解析为 entity 的列名
// 同一个键的列名、Go 字段名、JSON 名都能命中；重复解析是幂等的
func NormalizeUpdates(entity interface{}, fields map[string]interface{}) (map[string]interface{}, error) {
	s, err := schema.Parse(entity, &updateSchemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, err
	}

	columns := make(map[string]string, len(s.Fields)*3)
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		columns[f.DBName] = f.DBName
		columns[f.Name] = f.DBName
		if name := jsonFieldName(f); name != "" {
			columns[name] = f.DBName
		}
	}

	normalized := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		column, ok := columns[key]
		if !ok {
			return nil, &UnknownFieldError{Key: key}
		}
		if _, fixed := immutableColumns[column]; fixed {
			continue
		}
		normalized[column] = value
	}
	return normalized, nil
}

func jsonFieldName(f *schema.Field) string {
	tag, ok := f.StructField.Tag.Lookup("json")
	if !ok {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "-" {
		return ""
	}
	return tag
}
