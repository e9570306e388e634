package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Entry struct {
	Key       string `gorm:"primaryKey;column:item_key"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "local_storage" }

// SQLiteStore is a single-user key-value file, the terminal host's equivalent of browser
// localStorage.
type SQLiteStore struct {
	DB *gorm.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session: empty sqlite path")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open token db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate token db: %w", err)
	}
	return &SQLiteStore{DB: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.DB.WithContext(ctx).Where("item_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	if e.Value == "" {
		return "", ErrNotFound
	}
	return e.Value, nil
}

// Put belongs to the login flow that owns the token; the storefront only reads.
func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	e := Entry{Key: key, Value: value}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error; err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
