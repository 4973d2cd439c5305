// log — прокидывание *slog.Logger через context.Context.
//
// Консоль кладёт корневой логгер в контекст один раз при старте процесса;
// фоновые задачи (таймер refresh) наследуют его через свой базовый контекст,
// поэтому отдельной прокладки логгера в каждый компонент не требуется.
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с прикреплённым логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From достаёт логгер из контекста; без логгера (или с мусором под ключом)
// возвращает slog.Default().
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}
