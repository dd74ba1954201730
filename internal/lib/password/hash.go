// Package password хэширует и проверяет пароли пользователей через bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength — предел bcrypt на длину пароля в байтах.
const MaxLength = 72

// ErrTooLong возвращается, если пароль длиннее MaxLength байт.
var ErrTooLong = errors.New("password exceeds 72 bytes")

// ErrMismatch возвращается Compare, если пароль не подходит к хэшу.
var ErrMismatch = errors.New("password does not match hash")

// Hash возвращает bcrypt-хэш пароля с солью и стоимостью по умолчанию.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%s: %w", op, ErrTooLong)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сверяет пароль с хэшем за постоянное время.
//
// Несовпадение даёт ErrMismatch; повреждённый хэш — обёрнутую ошибку bcrypt.
// Пароль длиннее MaxLength не мог быть захэширован, поэтому это тоже ErrMismatch.
func Compare(hash, password string) error {
	const op = "password.Compare"
	if len(password) > MaxLength {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
