package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shelterops/shelter-console/internal/models"
)

// ErrMalformedToken — access-токен не разбирается или не содержит
// обязательных полей; для консоли такой токен эквивалентен отсутствию сессии.
var ErrMalformedToken = errors.New("malformed access token")

// DecodeClaims — единственная точка декодирования access-токена.
//
// Подпись не проверяется: секрет знает только Account-сервис, консоль
// извлекает claims исключительно для отображения и гейтинга маршрутов.
// Срок действия здесь тоже не проверяется — свежесть пары подтверждает
// refresh, а не локальные часы.
// Обязательные поля: user_id, role, exp; их отсутствие — ErrMalformedToken.
func DecodeClaims(access string) (*models.Claims, error) {
	const op = "session.DecodeClaims"

	var claims models.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	if claims.UserID == 0 || claims.Role == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	return &claims, nil
}
