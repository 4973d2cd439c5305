// session содержит ядро консоли: хранилище текущей сессии (Store)
// и контроллер её жизненного цикла (Controller).
//
// Store — единственный владелец агрегата Session; остальное приложение
// получает только чтение (Current/Subscribe) и две способности через
// Controller: «войти» и «выйти». Store передаётся зависимостям явно,
// глобального состояния пакет не держит.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shelterops/shelter-console/internal/models"
	"github.com/shelterops/shelter-console/internal/pkg/log"
	"github.com/shelterops/shelter-console/internal/storage"
)

// Subscriber — колбэк на изменение сессии; вызывается синхронно после
// каждой зафиксированной мутации.
type Subscriber func(models.Session)

// Store — потокобезопасное хранилище сессии поверх durable-хранилища пары.
//
// Каждая зафиксированная мутация увеличивает эпоху. Асинхронные операции
// (login/refresh) запоминают эпоху на старте и фиксируют результат через
// SetIfCurrent: если сессию успели сменить, поздний результат отбрасывается.
type Store struct {
	mu      sync.RWMutex
	session models.Session
	epoch   uint64
	subs    []Subscriber

	storage storage.TokenStorage
}

// NewStore создаёт Store в состоянии «идёт bootstrap».
func NewStore(st storage.TokenStorage) *Store {
	return &Store{
		session: models.Session{Loading: true},
		storage: st,
	}
}

// Current возвращает снимок текущей сессии; не блокирует.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Snapshot возвращает снимок сессии вместе с эпохой, согласованно.
func (s *Store) Snapshot() (models.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked(), s.epoch
}

// Epoch возвращает текущую эпоху сессии.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.epoch
}

// AccessToken отдаёт access-токен текущей сессии (orchestrator.TokenSource).
func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session.Tokens == nil {
		return "", false
	}

	return s.session.Tokens.Access, true
}

// Subscribe регистрирует подписчика на изменения сессии.
// Подписка возможна только на этапе сборки приложения, до первых мутаций.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
}

// Set фиксирует новую пару токенов (или nil — выход).
//
// Непустая пара: claims декодируются до фиксации, пара пишется в durable-
// хранилище дословно; ошибка декодирования или записи — отказ без мутации.
// nil: durable-запись удаляется, память очищается безусловно — выход не
// может завершиться ошибкой, сбой удаления только логируется.
func (s *Store) Set(ctx context.Context, pair *models.TokenPair) error {
	s.mu.Lock()
	_, err := s.setLocked(ctx, pair)

	return err
}

// SetIfCurrent — как Set, но фиксирует результат только если эпоха не
// изменилась с момента старта асинхронной операции. Возвращает эпоху
// зафиксированного состояния и признак фиксации: всё, что вооружается
// под новую пару (таймер refresh), обязано привязываться к возвращённой
// эпохе, а не перечитывать её после отпускания замка.
func (s *Store) SetIfCurrent(ctx context.Context, epoch uint64, pair *models.TokenPair) (uint64, bool, error) {
	s.mu.Lock()
	if s.epoch != epoch {
		cur := s.epoch
		s.mu.Unlock()

		return cur, false, nil
	}

	next, err := s.setLocked(ctx, pair)
	if err != nil {
		return epoch, false, err
	}

	return next, true, nil
}

// setLocked — общий путь фиксации; вызывается с захваченным s.mu
// и освобождает его сам (до вызова подписчиков). Возвращает эпоху
// зафиксированного состояния.
func (s *Store) setLocked(ctx context.Context, pair *models.TokenPair) (uint64, error) {
	const op = "session.store.set"

	var claims *models.Claims
	if pair != nil {
		c, err := DecodeClaims(pair.Access)
		if err != nil {
			s.mu.Unlock()
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		claims = c

		if err := s.storage.Save(ctx, pair); err != nil {
			s.mu.Unlock()
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if err := s.storage.Clear(ctx); err != nil {
			log.From(ctx).Error("durable_clear_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	s.session.Tokens = pair.Clone()
	s.session.Claims = claims
	s.epoch++
	next := s.epoch

	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}

	return next, nil
}

// seed поднимает пару из durable-хранилища в память без повторной записи.
// Используется только на bootstrap; флаг Loading не трогает.
func (s *Store) seed(pair *models.TokenPair, claims *models.Claims) {
	s.mu.Lock()
	s.session.Tokens = pair.Clone()
	s.session.Claims = claims
	s.epoch++

	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// MarkReady завершает bootstrap; обратного перехода нет.
func (s *Store) MarkReady() {
	s.mu.Lock()
	if !s.session.Loading {
		s.mu.Unlock()
		return
	}

	s.session.Loading = false
	snap := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// snapshotLocked — копия сессии под захваченным мьютексом.
// Пара копируется, чтобы читатель не мог мутировать внутреннее состояние.
func (s *Store) snapshotLocked() models.Session {
	return models.Session{
		Tokens:  s.session.Tokens.Clone(),
		Claims:  s.session.Claims,
		Loading: s.session.Loading,
	}
}
