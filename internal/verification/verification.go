// Package verification содержит хранилище токенов подтверждения email.
// Токены живут только в памяти процесса: перезапуск аннулирует все
// незавершённые подтверждения.
package verification

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// TTL задаёт срок действия токена подтверждения.
const TTL = 24 * time.Hour

// ErrInvalidToken возвращается для неизвестного или просроченного токена.
var ErrInvalidToken = errors.New("invalid or expired token")

type tokenData struct {
	email    string
	name     string
	expires  time.Time
	verified bool
}

// Verifier выдаёт и проверяет токены подтверждения email.
type Verifier struct {
	mu     sync.Mutex
	tokens map[string]tokenData
	now    func() time.Time
}

// New создаёт пустое хранилище токенов.
func New() *Verifier {
	return &Verifier{
		tokens: make(map[string]tokenData),
		now:    time.Now,
	}
}

// Issue выдаёт новый токен подтверждения для пары email и имени.
func (v *Verifier) Issue(email, name string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	v.mu.Lock()
	v.tokens[token] = tokenData{
		email:   email,
		name:    name,
		expires: v.now().Add(TTL),
	}
	v.mu.Unlock()

	return token, nil
}

// Verify помечает токен подтверждённым и возвращает связанный email.
// Просроченный токен удаляется и считается невалидным.
func (v *Verifier) Verify(token string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	data, ok := v.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}

	if data.expires.Before(v.now()) {
		delete(v.tokens, token)
		return "", ErrInvalidToken
	}

	data.verified = true
	v.tokens[token] = data

	return data.email, nil
}

// IsVerified сообщает, был ли токен успешно подтверждён.
func (v *Verifier) IsVerified(token string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	data, ok := v.tokens[token]
	return ok && data.verified
}
