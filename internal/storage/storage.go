// Package storage объявляет общие ошибки хранилищ пользователей.
// Конкретные реализации лежат в подпакетах postgresql, sqlite и redisstore.
package storage

import "errors"

var (
	// ErrUserExists — пользователь с таким email уже сохранён.
	ErrUserExists = errors.New("user with this email already exists")
	// ErrUserNotFound — пользователь с таким email не найден.
	ErrUserNotFound = errors.New("user not found")
)
