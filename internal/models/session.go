package models

// Session — агрегат текущего состояния аутентификации консоли.
//
// Инварианты:
//   - Claims == nil ⇔ Tokens == nil (читатель никогда не видит пару без claims);
//   - Loading == true только до завершения первоначального bootstrap,
//     обратно в true флаг не возвращается.
type Session struct {
	// Tokens — текущая пара токенов; nil в неаутентифицированном состоянии.
	Tokens *TokenPair
	// Claims — декодированное содержимое access-токена; nil вместе с Tokens.
	Claims *Claims
	// Loading — признак незавершённого bootstrap.
	Loading bool
}

// Authenticated сообщает, есть ли у консоли действующая сессия.
func (s Session) Authenticated() bool {
	return s.Tokens != nil
}
