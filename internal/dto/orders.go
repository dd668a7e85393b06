package dto

import (
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	// Force: только для администратора, снимает ограничения порядка статусов.
	Force bool `json:"force"`
}

// TrackResponse: ответ публичного трекинга.
type TrackResponse struct {
	Success bool          `json:"success"`
	Order   *models.Order `json:"order,omitempty"`
	Message string        `json:"message,omitempty"`
}

type StartSessionRequest struct {
	Cart []models.CartLineItem `json:"cart"`
}

type StepValidationResponse struct {
	Valid bool   `json:"valid"`
	Step  string `json:"step"`
	Next  string `json:"next"`
}

// WatchEvent: одно SSE-событие стрима трекинга.
type WatchEvent struct {
	Order         *models.Order `json:"order,omitempty"`
	Fetching      bool          `json:"fetching"`
	Error         string        `json:"error,omitempty"`
	Terminal      bool          `json:"terminal"`
	Changed       bool          `json:"changed"`
	LastUpdatedAt *time.Time    `json:"last_updated_at,omitempty"`
}
