// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"treasure_backend/internal/platform/quota"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
	// ConnectTimeout は接続リトライを諦めるまでの時間です。0なら1回だけ試行します。
	ConnectTimeout time.Duration
}

// Dialector はドライバー名に対応するGORMのDialectorを返します。
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenDB はデータベースに接続し、利用台帳のテーブルをマイグレーションします。
// 接続に失敗した場合は ConnectTimeout の間リトライします。
func OpenDB(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var db *gorm.DB
	deadline := time.Now().Add(cfg.ConnectTimeout)
	for {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		logrus.WithError(err).WithField("driver", cfg.Driver).Warn("DB connect failed, retrying...")
		time.Sleep(3 * time.Second)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate は必要なテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&quota.UsageModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
