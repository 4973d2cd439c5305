package models

// TokenPair — пара токенов, которой Orchestrator отвечает на login/refreshToken.
//
// Описание:
//   - Access — короткоживущий JWT для авторизации запросов к защищённым
//     эндпоинтам шлюза; клиент извлекает из него claims, но не проверяет подпись;
//   - Refresh — долгоживущий токен, предъявляемый только для выпуска новой пары.
//
// Инвариант: пара всегда записывается и читается как единое целое — в durable-
// хранилище не бывает состояния, где присутствует только один из токенов.
type TokenPair struct {
	// Access — JWT для заголовка Authorization.
	Access string `json:"access"`
	// Refresh — токен для обновления пары.
	Refresh string `json:"refresh"`
}

// Clone возвращает независимую копию пары (nil-safe).
func (p *TokenPair) Clone() *TokenPair {
	if p == nil {
		return nil
	}

	cp := *p
	return &cp
}
