// file реализует storage.TokenStorage поверх единственного JSON-файла.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shelterops/shelter-console/internal/models"
	"github.com/shelterops/shelter-console/internal/storage"
)

// DefaultFileName — имя durable-записи; совпадает с ключом,
// под которым пару хранил прежний веб-клиент.
const DefaultFileName = "authTokens.json"

// Storage — файловое durable-хранилище пары токенов.
type Storage struct {
	path string
}

// New создаёт хранилище по явному пути к файлу.
func New(path string) (*Storage, error) {
	const op = "storage.file.New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{path: path}, nil
}

// DefaultPath возвращает путь по умолчанию в пользовательской
// конфигурационной директории.
func DefaultPath() (string, error) {
	const op = "storage.file.DefaultPath"

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return filepath.Join(dir, "shelter-console", DefaultFileName), nil
}

// Load читает пару токенов из файла.
func (s *Storage) Load(_ context.Context) (*models.TokenPair, error) {
	const op = "storage.file.Load"

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCorrupted)
	}

	// Полпары быть не может — такую запись считаем битой.
	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCorrupted)
	}

	return &pair, nil
}

// Save записывает пару атомарно: во временный файл с последующим rename,
// чтобы читатель не увидел усечённую запись.
func (s *Storage) Save(_ context.Context, pair *models.TokenPair) error {
	const op = "storage.file.Save"

	if pair == nil {
		return fmt.Errorf("%s: nil pair", op)
	}

	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".authTokens-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет файл; отсутствие файла — не ошибка.
func (s *Storage) Clear(_ context.Context) error {
	const op = "storage.file.Clear"

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
