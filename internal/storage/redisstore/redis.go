// Package redisstore хранит пользователей как JSON-документы в Redis.
//
// Документ лежит по ключу users:email:<email>; уникальность email
// обеспечивается атомарным SET NX.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/mayukh-auth/internal/config"
	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage"
)

const keyPrefix = "users:email:"

type document struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Storage — хранилище пользователей в Redis.
type Storage struct {
	Db  *redis.Client
	now func() time.Time
}

// New подключается к Redis и проверяет соединение PING-ом.
func New(ctx context.Context, cfg config.RedisConnection) (*Storage, error) {
	const op = "storage.redisstore.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{Db: db, now: time.Now}, nil
}

// Close закрывает клиент Redis.
func (s *Storage) Close() error {
	return s.Db.Close()
}

func userKey(email string) string {
	return keyPrefix + email
}

// CreateUser сохраняет документ, если ключа для email ещё нет.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.redisstore.CreateUser"

	doc := document{
		ID:           uuid.NewString(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    s.now().UTC(),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.Db.SetNX(ctx, userKey(user.Email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}
	return doc.toModel(), nil
}

// GetUserByEmail читает документ пользователя.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.redisstore.GetUserByEmail"

	val, err := s.Db.Get(ctx, userKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc document
	if err = json.Unmarshal(val, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), nil
}

func (d document) toModel() *models.User {
	return &models.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}
