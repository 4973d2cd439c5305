// orchestrator — HTTP-клиент API-шлюза платформы приюта.
//
// Шлюз проксирует вызовы к внутренним сервисам (Account/Dogs/Walks/Payment)
// и принимает авторизацию через заголовок Authorization: Bearer <access>.
// Особенность контракта: login/refreshToken отвечают 200 даже при отказе
// апстрима — отказ распознаётся по составу JSON-тела, а не по HTTP-статусу.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelterops/shelter-console/internal/pkg/log"
)

var (
	// ErrInvalidCredentials — шлюз не выдал пару токенов по логину/паролю.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — refresh-токен не принят или ответ без новой пары.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated — запрос отклонён по авторизации (401/403) либо
	// у сессии нет access-токена для его выполнения.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт (дубликат username и т.п.).
	ErrConflict = errors.New("conflict")
	// ErrUnexpectedStatus — прочие неуспешные статусы шлюза.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// TokenSource отдаёт текущий access-токен сессии для защищённых вызовов.
// Реализуется хранилищем сессии; false — сессии нет.
type TokenSource interface {
	AccessToken() (string, bool)
}

// Client — клиент шлюза. Безопасен для конкурентного использования.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// New создаёт клиент шлюза.
// tokens может быть nil — тогда доступны только неавторизованные вызовы.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// bearer возвращает access-токен текущей сессии для защищённого вызова.
func (c *Client) bearer() (string, error) {
	if c.tokens == nil {
		return "", ErrUnauthenticated
	}

	token, ok := c.tokens.AccessToken()
	if !ok {
		return "", ErrUnauthenticated
	}

	return token, nil
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
// Каждый запрос получает X-Request-Id для сквозной трассировки.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, bearer string, out any) error {
	const op = "orchestrator.do"

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		log.From(ctx).Debug("orchestrator_request_rejected",
			slog.String("op", op),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

// postJSON — POST с JSON-телом; withAuth добавляет Bearer текущей сессии.
func (c *Client) postJSON(ctx context.Context, path string, in any, withAuth bool, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("orchestrator.postJSON: %w", err)
	}

	var token string
	if withAuth {
		if token, err = c.bearer(); err != nil {
			return fmt.Errorf("orchestrator.postJSON: %w", err)
		}
	}

	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(raw), token, out)
}

// postForm — POST с form-телом (add/update-эндпоинты шлюза); всегда авторизован.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	token, err := c.bearer()
	if err != nil {
		return fmt.Errorf("orchestrator.postForm: %w", err)
	}

	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", body, token, out)
}

// getJSON — авторизованный GET.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	token, err := c.bearer()
	if err != nil {
		return fmt.Errorf("orchestrator.getJSON: %w", err)
	}

	return c.do(ctx, http.MethodGet, path, "", nil, token, out)
}

// statusToError — маппинг HTTP-статусов шлюза на ошибки клиента.
func statusToError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthenticated
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}
}

// marker — структурный признак успеха в теле ответа: часть эндпоинтов шлюза
// (otp, accountExists, dogExists) отвечает 200 и кладёт в тело ключ
// "success" либо "error".
type marker map[string]json.RawMessage

func (m marker) success() bool {
	_, ok := m["success"]
	return ok
}
