package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/shelterops/shelter-console/internal/models"
)

// mintAccess подписывает тестовый access-токен. Подпись консоль не
// проверяет, секрет нужен только для структурно корректного токена.
func mintAccess(t *testing.T, claims models.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	return signed
}

func testClaims(userID int64, role models.Role) models.Claims {
	return models.Claims{
		UserID:    userID,
		Role:      role,
		TokenType: "access",
		Username:  "shelter-admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        "jti-1",
		},
	}
}

func TestDecodeClaims_OK(t *testing.T) {
	t.Parallel()

	access := mintAccess(t, testClaims(42, models.RoleAdmin))

	got, err := DecodeClaims(access)
	require.NoError(t, err)
	require.EqualValues(t, 42, got.UserID)
	require.Equal(t, models.RoleAdmin, got.Role)
	require.Equal(t, "access", got.TokenType)
	require.Equal(t, "shelter-admin", got.Username)
	require.NotNil(t, got.ExpiresAt)
}

func TestDecodeClaims_NotAJWT(t *testing.T) {
	t.Parallel()

	_, err := DecodeClaims("definitely-not-a-token")
	require.ErrorIs(t, err, ErrMalformedToken)
}

// Срок действия намеренно не проверяется: просроченный, но структурно
// целый токен декодируется — свежесть подтверждает refresh.
func TestDecodeClaims_ExpiredStillDecodes(t *testing.T) {
	t.Parallel()

	claims := testClaims(7, models.RoleVolunteer)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	got, err := DecodeClaims(mintAccess(t, claims))
	require.NoError(t, err)
	require.EqualValues(t, 7, got.UserID)
}

func TestDecodeClaims_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.Claims)
	}{
		{name: "no_user_id", mutate: func(c *models.Claims) { c.UserID = 0 }},
		{name: "no_role", mutate: func(c *models.Claims) { c.Role = "" }},
		{name: "no_exp", mutate: func(c *models.Claims) { c.ExpiresAt = nil }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims := testClaims(42, models.RoleSubAdmin)
			tt.mutate(&claims)

			_, err := DecodeClaims(mintAccess(t, claims))
			require.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
