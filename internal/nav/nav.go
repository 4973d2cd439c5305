// nav — маршруты консоли и гейты доступа по ролям.
//
// Контроллер сессии получает Navigator явным параметром (никаких глобальных
// синглтонов): в приложении это роутер представлений, в тестах — мок.
package nav

import (
	"sync"

	"github.com/shelterops/shelter-console/internal/models"
)

// Маршруты консоли. Совпадают с адресами прежнего веб-клиента.
const (
	// RouteLogin — форма входа; единственный маршрут без сессии.
	RouteLogin = "/admin"
	// RouteHome — домашняя страница после входа.
	RouteHome = "/admin/home"

	RouteDogs       = "/admin/dogs"
	RouteCategories = "/admin/categories"
	RouteWalks      = "/admin/records"
	RouteAccounts   = "/admin/accounts"
	RoutePayments   = "/admin/payments"
)

// adminOnly — разделы, доступные только роли Admin.
var adminOnly = map[string]bool{
	RouteAccounts: true,
	RoutePayments: true,
}

// Navigator переключает текущее представление консоли.
type Navigator interface {
	// Push делает маршрут текущим.
	Push(route string)
}

// Allowed сообщает, пустит ли консоль пользователя с данными claims на маршрут.
// nil claims открывает только форму входа; разделы из adminOnly требуют Admin.
func Allowed(route string, claims *models.Claims) bool {
	if route == RouteLogin {
		return true
	}

	if claims == nil {
		return false
	}

	if adminOnly[route] {
		return claims.Role == models.RoleAdmin
	}

	return true
}

// Router — потокобезопасная реализация Navigator для приложения:
// хранит текущий маршрут и отдаёт его представлениям.
type Router struct {
	mu      sync.RWMutex
	current string
}

// NewRouter создаёт роутер с начальным маршрутом формы входа.
func NewRouter() *Router {
	return &Router{current: RouteLogin}
}

// Push делает маршрут текущим.
func (r *Router) Push(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = route
}

// Current возвращает текущий маршрут.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}
