// redact — маскирование чувствительных значений перед логированием.
// Токены и пароли не попадают в логи ни в каком виде, логин — частично.
package redact

// Username оставляет первые две руны логина, остальное маскирует.
func Username(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
