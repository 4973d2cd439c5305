package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shelterops/shelter-console/internal/metrics"
	"github.com/shelterops/shelter-console/internal/models"
	"github.com/shelterops/shelter-console/internal/nav"
	"github.com/shelterops/shelter-console/internal/pkg/log"
	"github.com/shelterops/shelter-console/internal/pkg/redact"
)

// DefaultRefreshInterval — период фонового обновления пары токенов.
const DefaultRefreshInterval = 9 * time.Minute

// Статусы для формы входа. Намеренно одно сообщение и на неверный пароль,
// и на сетевой сбой: форма не должна выдавать существование учётной записи.
const (
	StatusInvalidCredentials = "Invalid credentials!"
	StatusInvalidOTP         = "Invalid OTP!"
)

// Gateway — операции шлюза, нужные жизненному циклу сессии.
type Gateway interface {
	// Login обменивает логин/пароль на пару токенов.
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	// VerifyOTP предъявляет одноразовый код с access-токеном первого шага.
	VerifyOTP(ctx context.Context, access, code string) (bool, error)
	// RefreshToken обменивает refresh-токен на новую пару.
	RefreshToken(ctx context.Context, refresh string) (*models.TokenPair, error)
}

// Controller — контроллер жизненного цикла сессии; единственный компонент,
// которому позволено менять пару токенов в Store.
//
// Состояния: Unauthenticated → Authenticating → Authenticated; сбой
// refresh схлопывается в Unauthenticated немедленно, без ретраев.
type Controller struct {
	store    *Store
	gateway  Gateway
	nav      nav.Navigator
	interval time.Duration

	// baseCtx — контекст процесса для срабатываний фонового таймера.
	baseCtx context.Context

	// refreshMu гарантирует не более одной попытки refresh одновременно.
	refreshMu sync.Mutex

	timerMu sync.Mutex
	timer   *time.Timer
	// timerEpoch — эпоха пары, под которую вооружён текущий таймер;
	// растёт монотонно, запоздавшее вооружение под старую эпоху — no-op.
	timerEpoch uint64
	closed     bool
}

// NewController создаёт контроллер. interval <= 0 — период по умолчанию.
func NewController(ctx context.Context, store *Store, gw Gateway, navigator nav.Navigator, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &Controller{
		store:    store,
		gateway:  gw,
		nav:      navigator,
		interval: interval,
		baseCtx:  ctx,
	}
}

// Bootstrap выполняется один раз на старте процесса: поднимает durable-пару,
// если она есть, и сразу подтверждает её свежесть через refresh. Флаг
// Loading снимается в любом исходе и обратно не поднимается.
func (c *Controller) Bootstrap(ctx context.Context) {
	const op = "session.controller.Bootstrap"

	defer c.store.MarkReady()

	lg := log.From(ctx)

	pair, err := c.store.storage.Load(ctx)
	if err != nil {
		// Отсутствие записи — штатный холодный старт; битая запись
		// равносильна её отсутствию.
		lg.Debug("bootstrap_no_session", slog.String("op", op), slog.String("reason", err.Error()))
		return
	}

	claims, err := DecodeClaims(pair.Access)
	if err != nil {
		lg.Warn("bootstrap_malformed_token", slog.String("op", op))
		_ = c.store.storage.Clear(ctx)
		return
	}

	// Оптимистично поднимаем сессию, свежесть подтвердит refresh.
	c.store.seed(pair, claims)
	c.refresh(ctx)
}

// Login — вход в два шага: учётные данные, затем одноразовый код.
// Вход «целиком или никак»: пара из первого шага не фиксируется, пока
// не принят код. Ошибки не возвращаются — форма получает статус через
// onStatus и не нуждается в собственной обработке отказов.
func (c *Controller) Login(ctx context.Context, form LoginForm, onStatus func(string)) {
	const op = "session.controller.Login"

	if onStatus == nil {
		onStatus = func(string) {}
	}
	onStatus("")

	lg := log.From(ctx)

	if err := form.Validate(); err != nil {
		onStatus(statusForFormError(err))
		return
	}

	// Эпоха на старте: конкурирующий login/logout обесценит результат.
	_, epoch := c.store.Snapshot()

	pair, err := c.gateway.Login(ctx, form.Username, form.Password)
	if err != nil {
		metrics.LoginFailures.Inc()
		// Неверный пароль и сетевой сбой неразличимы для формы.
		lg.Warn("login_rejected",
			slog.String("op", op),
			slog.String("username", redact.Username(form.Username)),
		)
		onStatus(StatusInvalidCredentials)
		return
	}

	ok, err := c.gateway.VerifyOTP(ctx, pair.Access, form.OTP)
	if err != nil {
		metrics.LoginFailures.Inc()
		lg.Warn("otp_call_failed",
			slog.String("op", op),
			slog.String("username", redact.Username(form.Username)),
		)
		onStatus(StatusInvalidCredentials)
		return
	}
	if !ok {
		metrics.OTPRejections.Inc()
		// Пара из первого шага отбрасывается, вход начинается заново.
		onStatus(StatusInvalidOTP)
		return
	}

	next, committed, err := c.store.SetIfCurrent(ctx, epoch, pair)
	if err != nil {
		lg.Error("login_commit_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		onStatus(StatusInvalidCredentials)
		return
	}
	if !committed {
		lg.Debug("login_superseded", slog.String("op", op))
		return
	}

	metrics.LoginSuccesses.Inc()
	lg.Info("login_ok",
		slog.String("op", op),
		slog.String("username", redact.Username(form.Username)),
	)

	c.armTimer(next)
	c.nav.Push(nav.RouteHome)
}

// Logout — синхронный безусловный выход; идемпотентен и не может
// завершиться ошибкой.
func (c *Controller) Logout(ctx context.Context) {
	c.stopTimer()
	_ = c.store.Set(ctx, nil)
	c.nav.Push(nav.RouteLogin)
}

// Refresh — немедленная попытка обновления (для bootstrap и тестов);
// фоновые попытки идут через таймер.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx)
}

// Close останавливает фоновый таймер; контроллер больше не перевооружается.
func (c *Controller) Close() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// refresh выполняет одну попытку обновления пары. Любой сбой фатален для
// сессии: принудительный выход без ретраев. Одновременно выполняется не
// более одной попытки.
func (c *Controller) refresh(ctx context.Context) {
	const op = "session.controller.refresh"

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	lg := log.From(ctx)

	sess, epoch := c.store.Snapshot()
	if sess.Tokens == nil {
		return
	}

	pair, err := c.gateway.RefreshToken(ctx, sess.Tokens.Refresh)
	if err != nil {
		metrics.RefreshFailures.Inc()
		lg.Warn("refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		c.forceLogout(ctx, epoch)
		return
	}

	next, committed, err := c.store.SetIfCurrent(ctx, epoch, pair)
	if err != nil {
		metrics.RefreshFailures.Inc()
		lg.Error("refresh_commit_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		c.forceLogout(ctx, epoch)
		return
	}
	if !committed {
		// Сессию сменили, пока ответ был в пути, — результат отбрасываем.
		lg.Debug("refresh_superseded", slog.String("op", op))
		return
	}

	metrics.RefreshSuccesses.Inc()

	// Перевооружаемся на НОВУЮ эпоху: таймер прежней пары больше не сработает.
	c.armTimer(next)
}

// forceLogout — выход по сбою refresh. Гардится эпохой: если пользователь
// успел выйти или войти заново, ни сессию, ни таймер чужой пары не трогаем —
// сначала эпоха, потом снос таймера, и только таймера своей линии.
func (c *Controller) forceLogout(ctx context.Context, epoch uint64) {
	_, cleared, _ := c.store.SetIfCurrent(ctx, epoch, nil)
	if !cleared {
		return
	}

	c.stopTimerThrough(epoch)

	metrics.ForcedLogouts.Inc()
	log.From(ctx).Info("forced_logout", slog.String("op", "session.controller.forceLogout"))
	c.nav.Push(nav.RouteLogin)
}

// armTimer вооружает таймер refresh, привязанный к эпохе пары; прежний
// таймер останавливается — два периодических обновления сосуществовать
// не могут. Вооружение под эпоху не новее уже вооружённой — no-op.
func (c *Controller) armTimer(epoch uint64) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if c.closed || epoch <= c.timerEpoch {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
	}

	c.timerEpoch = epoch
	c.timer = time.AfterFunc(c.interval, func() {
		// Сработавший таймер обязан принадлежать текущей эпохе.
		if c.store.Epoch() != epoch {
			return
		}

		c.refresh(c.baseCtx)
	})
}

func (c *Controller) stopTimer() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// stopTimerThrough останавливает таймер, только если он вооружён под эпоху
// не новее указанной: таймер сессии, пришедшей на смену, остаётся жить.
func (c *Controller) stopTimerThrough(epoch uint64) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if c.timer != nil && c.timerEpoch <= epoch {
		c.timer.Stop()
		c.timer = nil
	}
}
