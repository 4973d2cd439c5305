package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "9100"
orchestrator:
  url: "http://orchestrator:8000"
  timeout: "3s"
session:
  refresh_interval: "5m"
  tokens_path: "/var/lib/shelter-console/authTokens.json"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
orchestrator:
  url: "http://localhost:8000"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
orchestrator:
  url: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, "9100", cfg.HTTP.Port)
	require.Equal(t, "0.0.0.0:9100", cfg.HTTP.Addr())

	require.Equal(t, "http://orchestrator:8000", cfg.Orchestrator.URL)
	require.Equal(t, 3*time.Second, cfg.Orchestrator.Timeout)

	require.Equal(t, 5*time.Minute, cfg.Session.RefreshInterval)
	require.Equal(t, "/var/lib/shelter-console/authTokens.json", cfg.Session.TokensPath)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "minimal.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "127.0.0.1:8090", cfg.HTTP.Addr())
	require.Equal(t, 10*time.Second, cfg.Orchestrator.Timeout)
	// Дефолтный период фонового refresh — 9 минут.
	require.Equal(t, 9*time.Minute, cfg.Session.RefreshInterval)
	require.Empty(t, cfg.Session.TokensPath)
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.Orchestrator.URL)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)

	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://orchestrator:8000", cfg.Orchestrator.URL)
}

func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ORCHESTRATOR_URL", "http://env-only:8000")
	t.Setenv("REFRESH_INTERVAL", "2m")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://env-only:8000", cfg.Orchestrator.URL)
	require.Equal(t, 2*time.Minute, cfg.Session.RefreshInterval)
}

func TestLoad_EnvOnly_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("CONFIG_PATH", "")
	// t.Setenv регистрирует восстановление, Unsetenv делает переменную отсутствующей.
	t.Setenv("ORCHESTRATOR_URL", "")
	require.NoError(t, os.Unsetenv("ORCHESTRATOR_URL"))

	_, err := Load("")
	require.Error(t, err)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
