package lifecycle

import (
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

// Порядок движения заказа вперёд. cancelled: отдельная ветка.
var forward = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

func Initial() models.OrderStatus { return models.OrderStatusPending }

func Statuses() []models.OrderStatus {
	out := make([]models.OrderStatus, 0, len(forward)+1)
	out = append(out, forward...)
	return append(out, models.OrderStatusCancelled)
}

func IsValid(s models.OrderStatus) bool {
	if s == models.OrderStatusCancelled {
		return true
	}
	return rank(s) >= 0
}

func IsTerminal(s models.OrderStatus) bool {
	return s == models.OrderStatusDelivered || s == models.OrderStatusCancelled
}

func rank(s models.OrderStatus) int {
	for i, st := range forward {
		if st == s {
			return i
		}
	}
	return -1
}

// Next: следующий статус по прямому пути, false для терминальных.
func Next(s models.OrderStatus) (models.OrderStatus, bool) {
	r := rank(s)
	if r < 0 || r+1 >= len(forward) {
		return "", false
	}
	return forward[r+1], true
}

// CanTransition: один шаг вперёд либо отмена из любого нетерминального статуса.
func CanTransition(from, to models.OrderStatus) bool {
	if !IsValid(from) || !IsValid(to) || from == to || IsTerminal(from) {
		return false
	}
	if to == models.OrderStatusCancelled {
		return true
	}
	next, ok := Next(from)
	return ok && next == to
}

// Allowed перечисляет статусы, в которые можно перейти из from.
func Allowed(from models.OrderStatus) []models.OrderStatus {
	var out []models.OrderStatus
	for _, to := range Statuses() {
		if CanTransition(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// Transition проверяет переход и возвращает копию заказа с новым статусом.
// force снимает ограничения порядка, но не допускает неизвестных статусов
// и перехода в тот же статус.
func Transition(order *models.Order, to models.OrderStatus, force bool) (*models.Order, error) {
	if !IsValid(to) {
		return nil, &TransitionError{From: order.Status, To: to, Kind: KindUnknownStatus}
	}
	if order.Status == to {
		return nil, &TransitionError{From: order.Status, To: to, Kind: KindNoop}
	}
	if !force && !CanTransition(order.Status, to) {
		return nil, &TransitionError{From: order.Status, To: to, Kind: KindIllegal}
	}
	out := *order
	out.Status = to
	return &out, nil
}
