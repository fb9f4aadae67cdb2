package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Avicola-api/internal/application/alerts"
	"github.com/jhoicas/Avicola-api/internal/application/dto"
	"github.com/jhoicas/Avicola-api/internal/application/notification"
	"github.com/jhoicas/Avicola-api/internal/domain"
)

// NotificationHandler maneja notificaciones y la generación de alertas (protegido).
type NotificationHandler struct {
	notifications *notification.UseCase
	alerts        *alerts.GenerateAlertsUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(notifications *notification.UseCase, alertsUC *alerts.GenerateAlertsUseCase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, alerts: alertsUC}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	list, err := h.notifications.List(c.Context(), userID, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.FromNotification(n))
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Contador de notificaciones no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	n, err := h.notifications.UnreadCount(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.UnreadCountResponse{Count: n})
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.notifications.MarkRead(c.Context(), userID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas las notificaciones como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := GetUserID(c)
	n, err := h.notifications.MarkAllRead(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"updated": n})
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.notifications.Delete(c.Context(), userID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateAlerts godoc
// @Summary      Generar alertas (poll del cliente cada 5 minutos)
// @Description  Corre los escáneres de condiciones y crea las notificaciones nuevas.
//
//	Idempotente: repetir la llamada con el mismo estado no crea duplicados.
//	Un fallo parcial de escáneres no bloquea la respuesta.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GenerateAlertsResponse
// @Router       /api/alerts/generate [post]
func (h *NotificationHandler) GenerateAlerts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	created, err := h.alerts.GenerateAlerts(c.Context(), userID)
	if err != nil {
		// Un fallo parcial de escáneres ya viene absorbido por el motor (fail-open);
		// aquí solo llega el fallo total, y el cliente que hace polling lo tolera.
		if errors.Is(err, domain.ErrScanFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SCAN_FAILED", Message: "no se pudo evaluar ninguna condición de alerta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.NotificationResponse, 0, len(created))
	for _, n := range created {
		out = append(out, dto.FromNotification(n))
	}
	return c.JSON(dto.GenerateAlertsResponse{Created: len(out), Notifications: out})
}
