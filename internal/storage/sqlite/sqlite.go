// Package sqlite реализует хранилище пользователей во встроенном файле SQLite
// через gorm. Схема создаётся AutoMigrate при открытии.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage"
)

// userRecord — строка таблицы users.
type userRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toModel() *models.User {
	return &models.User{
		ID:           strconv.FormatUint(uint64(r.ID), 10),
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}

// Storage хранит пользователей в файле SQLite.
type Storage struct {
	db *gorm.DB
}

// New открывает (или создаёт) файл базы по пути dbPath и мигрирует схему.
// При debug=true SQL-запросы пишутся стандартным логгером gorm.
func New(dbPath string, debug bool) (*Storage, error) {
	const op = "storage.sqlite.New"

	if err := os.MkdirAll(filepath.Dir(dbPath), fs.ModePerm); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gormLogger := logger.Discard
	if debug {
		gormLogger = logger.Default
	}
	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	dsn := dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{db: db}, nil
}

// Close выполняет checkpoint WAL и закрывает файл.
func (s *Storage) Close() error {
	const op = "storage.sqlite.Close"
	if err := s.db.Exec("PRAGMA wal_checkpoint;").Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return sqlDB.Close()
}

// CreateUser вставляет пользователя; дубликат email даёт storage.ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.sqlite.CreateUser"

	rec := userRecord{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec.toModel(), nil
}

// GetUserByEmail ищет пользователя по точному email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.sqlite.GetUserByEmail"

	var rec userRecord
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec.toModel(), nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
