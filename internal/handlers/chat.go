package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"market-service/internal/models"
	"market-service/internal/observability"
	"market-service/internal/repositories"
	"market-service/internal/telemetry"
)

// ChatHandler manages conversation and offer endpoints.
type ChatHandler struct {
	conversationRepo repositories.ConversationRepository
	listingRepo      repositories.ListingRepository
	emitter          *telemetry.AuditEmitter
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(conversationRepo repositories.ConversationRepository, listingRepo repositories.ListingRepository, emitter *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		emitter:          emitter,
	}
}

// ListSessions returns the authenticated user's conversation threads,
// newest activity first.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	userID := c.GetString("userID")

	sessions, err := h.conversationRepo.ListSessions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": sessions})
}

// Unread reports the total unread counter across the user's sessions.
func (h *ChatHandler) Unread(c *gin.Context) {
	userID := c.GetString("userID")

	total, err := h.conversationRepo.TotalUnread(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": total})
}

// Start creates or reuses the session between the caller and the listing's
// seller. The listing label and seller id are copied from the listing so
// the thread survives later profile edits unchanged.
func (h *ChatHandler) Start(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		ListingID string `json:"listing_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingRepo.GetByID(c.Request.Context(), req.ListingID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrListingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "listing not found"})
		return
	}

	if listing.SellerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot chat with yourself"})
		return
	}

	session, err := h.conversationRepo.GetOrCreateSession(c.Request.Context(), listing.ID, userID, listing.SellerID, listing.Model)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat_id": session.ID})
}

// GetMessages returns the session log and clears the unread counter for the
// viewing participant.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	sessionID := c.Param("chat_id")

	session, ok := h.requireParticipant(c, sessionID)
	if !ok {
		return
	}

	msgs, err := h.conversationRepo.ListMessages(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	if err := h.conversationRepo.MarkSessionRead(c.Request.Context(), session.ID, c.GetString("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostMessage appends a message to the session. Offers start pending.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	sessionID := c.Param("chat_id")
	userID := c.GetString("userID")

	if _, ok := h.requireParticipant(c, sessionID); !ok {
		return
	}

	var req struct {
		Kind        models.MessageKind `json:"type" binding:"omitempty,oneof=text image sticker audio offer call_log"`
		Content     string             `json:"content" binding:"required"`
		OfferAmount int                `json:"offer_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.conversationRepo.AppendMessage(c.Request.Context(), sessionID, userID, req.Kind, req.Content, req.OfferAmount)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "failed to store message"})
		return
	}

	if msg.Kind == models.KindOffer {
		h.emitter.Emit(c.Request.Context(), "INFO",
			fmt.Sprintf("offer placed chat=%s message=%s amount=%d", sessionID, msg.ID, msg.OfferAmount),
			requestIDFromContext(c), userIDFromContext(c))
	}

	c.JSON(http.StatusCreated, msg)
}

// RespondToOffer applies an accept/reject decision to a pending offer. A
// decided offer stays decided: re-responding yields 409.
func (h *ChatHandler) RespondToOffer(c *gin.Context) {
	sessionID := c.Param("chat_id")
	messageID := c.Param("message_id")
	userID := c.GetString("userID")

	if _, ok := h.requireParticipant(c, sessionID); !ok {
		return
	}

	var req struct {
		Decision models.OfferStatus `json:"decision" binding:"required,oneof=accepted rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.conversationRepo.RespondToOffer(c.Request.Context(), sessionID, messageID, req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		case errors.Is(err, repositories.ErrOfferNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "offer already decided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to respond to offer"})
		}
		return
	}

	observability.IncOfferResponse(string(req.Decision))
	h.emitter.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("offer %s chat=%s message=%s by=%s", req.Decision, sessionID, messageID, userID),
		requestIDFromContext(c), userIDFromContext(c))

	c.JSON(http.StatusOK, gin.H{"status": req.Decision})
}

func (h *ChatHandler) requireParticipant(c *gin.Context, sessionID string) (models.ChatSession, bool) {
	userID := c.GetString("userID")

	session, err := h.conversationRepo.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "chat not found"})
		return models.ChatSession{}, false
	}
	if !session.Participant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat member"})
		return models.ChatSession{}, false
	}
	return session, true
}
