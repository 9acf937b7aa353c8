package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/internal/services"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers message routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/:userId", h.GetConversation)
	g.DELETE("/messages/:id", h.DeleteMessage)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	req := new(models.SendMessageRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.Content == "" && req.ImagePath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message must have content or an image")
	}
	if req.ReceiverID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}
	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
	}

	message := &models.Message{
		SenderID:   currentUserID,
		ReceiverID: req.ReceiverID,
		Content:    services.SanitizeUserText(req.Content),
		ImagePath:  req.ImagePath,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, message)
}

// GetConversations lists the users the authenticated user has exchanged messages with
func (h *MessageHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	peerIDs, err := h.messageRepository.GetConversationPeers(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch conversations")
	}

	peers := make([]models.UserCompact, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		if user, err := h.userRepository.GetUserByID(peerID); err == nil {
			peers = append(peers, user.ToCompact())
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": peers})
}

// GetConversation returns messages between the authenticated user and a peer, oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	peerID, err := parseIDParam(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	page, limit := parsePagination(c)

	messages, err := h.messageRepository.GetConversation(currentUserID, peerID, limit, (page-1)*limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch messages")
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// DeleteMessage deletes a message the authenticated user sent
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	claims := getClaims(c)

	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message ID")
	}

	message, err := h.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Message not found")
	}
	if !claims.CanModify(message.SenderID) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own messages")
	}

	if err := h.messageRepository.DeleteMessage(messageID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete message")
	}
	return c.NoContent(http.StatusNoContent)
}
