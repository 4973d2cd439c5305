// storage задаёт контракт durable-хранилища пары токенов — аналога
// browser localStorage: единственный ключ, переживающий перезапуск процесса.
package storage

import (
	"context"
	"errors"

	"github.com/shelterops/shelter-console/internal/models"
)

var (
	// ErrNotFound — durable-записи нет; консоль стартует неаутентифицированной.
	ErrNotFound = errors.New("not found")
	// ErrCorrupted — запись есть, но не разбирается как пара токенов.
	ErrCorrupted = errors.New("corrupted entry")
)

// TokenStorage выполняет операции над единственной durable-записью.
//
// Семантика:
//   - Save всегда пишет пару целиком (единый JSON-объект {access, refresh});
//   - Load возвращает ErrNotFound при отсутствии записи и ErrCorrupted,
//     если запись не читается;
//   - Clear идемпотентен: удаление отсутствующей записи — не ошибка.
type TokenStorage interface {
	// Load читает сохранённую пару токенов.
	Load(ctx context.Context) (*models.TokenPair, error)
	// Save сохраняет пару токенов дословно.
	Save(ctx context.Context, pair *models.TokenPair) error
	// Clear удаляет durable-запись.
	Clear(ctx context.Context) error
}
