package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开嵌入式 SQLite 数据库
// path: 数据库文件路径，":memory:" 表示内存库（测试用）
func Open(path string) (*gorm.DB, error) {
	// 单进程单写者部署，打开 WAL 并限制 busy 等待，避免偶发的 SQLITE_BUSY
	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	if path == ":memory:" {
		dsn = path
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite 只有一个写者，连接数不需要放大
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

// MustOpen 打开数据库，失败直接退出
func MustOpen(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	return db
}
