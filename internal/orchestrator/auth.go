package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shelterops/shelter-console/internal/models"
)

// Login обменивает логин/пароль на пару токенов.
//
// Шлюз отвечает 200 и при отказе Account-сервиса, поэтому успех
// распознаётся по наличию обоих токенов в теле.
func (c *Client) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "orchestrator.Login"

	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var pair models.TokenPair
	if err := c.postJSON(ctx, "/login/", in, false, &pair); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return &pair, nil
}

// VerifyOTP предъявляет одноразовый код, авторизуясь access-токеном из
// первого шага входа. Возвращает true только при структурном признаке
// успеха в теле ответа; 200 без ключа "success" — отказ по коду.
func (c *Client) VerifyOTP(ctx context.Context, access, code string) (bool, error) {
	const op = "orchestrator.VerifyOTP"

	in := struct {
		OTP string `json:"otp"`
	}{OTP: code}

	raw, err := json.Marshal(in)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var body marker
	if err := c.do(ctx, http.MethodPost, "/otp/", "application/json", bytes.NewReader(raw), access, &body); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return body.success(), nil
}

// RefreshToken обменивает refresh-токен на новую пару.
// Как и login, шлюз отвечает 200 при отказе — валидируем состав тела.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*models.TokenPair, error) {
	const op = "orchestrator.RefreshToken"

	in := struct {
		Refresh string `json:"refresh"`
	}{Refresh: refresh}

	var pair models.TokenPair
	if err := c.postJSON(ctx, "/refreshToken/", in, false, &pair); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &pair, nil
}

// VerifyAccessToken проверяет access-токен на стороне Account-сервиса.
// 200 — токен действителен, 400 — нет.
func (c *Client) VerifyAccessToken(ctx context.Context, access string) error {
	const op = "orchestrator.VerifyAccessToken"

	in := struct {
		Token string `json:"token"`
	}{Token: access}

	if err := c.postJSON(ctx, "/verifyToken/", in, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return nil
}
