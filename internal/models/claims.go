package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role — роль учётной записи. Закрытый набор значений — внешний контракт
// Account-сервиса, консоль его не расширяет.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleSubAdmin  Role = "Sub-Admin"
	RoleVolunteer Role = "Volunteer"
)

// Known сообщает, входит ли роль в известный набор.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleVolunteer:
		return true
	}

	return false
}

// Claims — типизированное содержимое access-токена.
//
// Поля обязательные для валидного токена: UserID, Role и exp (через
// RegisteredClaims). Остальные — как выдаёт Account-сервис.
// Claims всегда производны от текущей пары токенов и никогда
// не мутируются независимо от неё.
type Claims struct {
	// UserID — идентификатор учётной записи (subject).
	UserID int64 `json:"user_id"`
	// Role — роль, по которой гейтится доступ к разделам консоли.
	Role Role `json:"role"`
	// TokenType — тип токена ("access").
	TokenType string `json:"token_type"`
	// Username — логин для отображения в шапке консоли.
	Username string `json:"username"`

	jwt.RegisteredClaims
}
