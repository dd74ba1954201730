// Package models содержит доменную модель пользователя портала
// и событие регистрации, которое публикуется после успешного signup.
package models

import "time"

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string    // Идентификатор, назначается хранилищем при создании
	Email        string    // Электронная почта (уникальная, без нормализации)
	PasswordHash string    // bcrypt-хэш пароля
	Role         string    // Роль, выбранная при регистрации
	CreatedAt    time.Time // Момент создания записи
}

// SignupEvent — сообщение о новом пользователе для брокера.
type SignupEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSignupEvent собирает событие из созданного пользователя.
func NewSignupEvent(u *User) SignupEvent {
	return SignupEvent{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
