package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// RegisterAdminNotificationRoutes registers admin-only notification routes
func (h *NotificationHandler) RegisterAdminNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListAllNotifications)
}

// ListAllNotifications is the admin inspection view across every recipient
func (h *NotificationHandler) ListAllNotifications(c echo.Context) error {
	page, limit := parsePagination(c)

	notifications, total, err := h.notificationRepository.ListAll(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}

// GetNotifications returns paginated notifications for the authenticated user
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := parsePagination(c)

	notifications, total, err := h.notificationRepository.GetByRecipientID(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.enrichNotifications(notifications),
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read; idempotent and missing-tolerant
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notifID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(notifID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification read")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks all of the authenticated user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notifications read")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteNotification hard-deletes a notification.
// TODO: add an ownership check; any authenticated user can currently delete
// any notification by id, matching the behavior this replaces.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	notifID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.DeleteNotification(notifID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete notification")
	}
	return c.NoContent(http.StatusNoContent)
}
