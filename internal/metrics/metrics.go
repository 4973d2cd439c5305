// metrics — счётчики жизненного цикла сессии для /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginSuccesses — успешно завершённые входы (оба шага).
	LoginSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_login_success_total",
		Help: "Successful two-step logins.",
	})

	// LoginFailures — отказы на шаге учётных данных или транспортные сбои входа.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_login_failure_total",
		Help: "Login attempts rejected at the credentials step or failed in transport.",
	})

	// OTPRejections — отказы на шаге одноразового кода.
	OTPRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_otp_rejected_total",
		Help: "Login attempts rejected at the OTP step.",
	})

	// RefreshSuccesses — успешные фоновые обновления пары токенов.
	RefreshSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_refresh_success_total",
		Help: "Successful token refresh attempts.",
	})

	// RefreshFailures — неуспешные обновления (фатальные для сессии).
	RefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_refresh_failure_total",
		Help: "Failed token refresh attempts.",
	})

	// ForcedLogouts — принудительные выходы по сбою refresh.
	ForcedLogouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_console_forced_logout_total",
		Help: "Sessions terminated because a refresh attempt failed.",
	})
)
