package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"market-service/internal/models"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrMessageNotFound = errors.New("message not found")
	// ErrOfferNotPending guards the offer state machine: pending is the only
	// state a decision may leave from; accepted and rejected are terminal.
	ErrOfferNotPending = errors.New("offer is not pending")
)

// ConversationRepository owns chat sessions and their message logs.
type ConversationRepository interface {
	GetOrCreateSession(ctx context.Context, listingID, buyerID, sellerID, listingModel string) (models.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (models.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error)
	ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	AppendMessage(ctx context.Context, sessionID, senderID string, kind models.MessageKind, content string, offerAmount int) (models.ChatMessage, error)
	RespondToOffer(ctx context.Context, sessionID, messageID string, decision models.OfferStatus) error
	MarkSessionRead(ctx context.Context, sessionID, userID string) error
	TotalUnread(ctx context.Context, userID string) (int, error)
}

// ConversationRepo is the in-memory implementation of ConversationRepository.
// Each session exclusively owns its append-only message log.
type ConversationRepo struct {
	mu       sync.RWMutex
	sessions []models.ChatSession
	messages map[string][]models.ChatMessage
}

// NewConversationRepo constructs an empty ConversationRepo.
func NewConversationRepo() *ConversationRepo {
	return &ConversationRepo{messages: make(map[string][]models.ChatMessage)}
}

// GetOrCreateSession returns the existing session for (listing, buyer) or
// creates one. At most one session exists per such pair.
func (r *ConversationRepo) GetOrCreateSession(ctx context.Context, listingID, buyerID, sellerID, listingModel string) (models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.ListingID == listingID && s.BuyerID == buyerID {
			return s, nil
		}
	}

	session := models.ChatSession{
		ID:           newID("chat"),
		ListingID:    listingID,
		ListingModel: listingModel,
		BuyerID:      buyerID,
		SellerID:     sellerID,
		LastMessage:  "Chat started",
		LastUpdated:  time.Now().UTC(),
	}
	r.sessions = append(r.sessions, session)
	return session, nil
}

// GetSession fetches a session by id.
func (r *ConversationRepo) GetSession(ctx context.Context, sessionID string) (models.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return models.ChatSession{}, ErrSessionNotFound
}

// ListSessions returns the sessions where the user is buyer or seller,
// most recently updated first.
func (r *ConversationRepo) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	r.mu.RLock()
	result := make([]models.ChatSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Participant(userID) {
			result = append(result, s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastUpdated.After(result[j].LastUpdated)
	})
	return result, nil
}

// ListMessages returns the full log in append order. A known session with
// no messages yields an empty slice, not an error.
func (r *ConversationRepo) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.sessionExists(sessionID) {
		return nil, ErrSessionNotFound
	}
	msgs := make([]models.ChatMessage, len(r.messages[sessionID]))
	copy(msgs, r.messages[sessionID])
	return msgs, nil
}

// AppendMessage constructs a message of the given kind, appends it to the
// session log and refreshes the session preview. Non-text kinds get a fixed
// placeholder preview instead of their raw payload. Only the counterpart's
// unread counter moves.
func (r *ConversationRepo) AppendMessage(ctx context.Context, sessionID, senderID string, kind models.MessageKind, content string, offerAmount int) (models.ChatMessage, error) {
	if kind == "" {
		kind = models.KindText
	}

	msg := models.ChatMessage{
		ID:        newID("msg"),
		SessionID: sessionID,
		SenderID:  senderID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	switch kind {
	case models.KindImage:
		msg.ImageURL = content
	case models.KindSticker:
		msg.StickerURL = content
	case models.KindAudio:
		msg.AudioURL = content
	case models.KindOffer:
		msg.Text = content
		msg.OfferAmount = offerAmount
		msg.OfferStatus = models.OfferPending
	default:
		msg.Text = content
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.sessionIndex(sessionID)
	if idx < 0 {
		return models.ChatMessage{}, ErrSessionNotFound
	}

	r.messages[sessionID] = append(r.messages[sessionID], msg)

	r.sessions[idx].LastMessage = preview(kind, content)
	r.sessions[idx].LastUpdated = msg.CreatedAt
	if senderID == r.sessions[idx].BuyerID {
		r.sessions[idx].SellerUnread++
	} else {
		r.sessions[idx].BuyerUnread++
	}

	return msg, nil
}

// RespondToOffer applies a decision to a pending offer message. A decision
// on an already-decided offer fails with ErrOfferNotPending; the terminal
// states admit no further transitions.
func (r *ConversationRepo) RespondToOffer(ctx context.Context, sessionID, messageID string, decision models.OfferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.messages[sessionID]
	if !ok {
		return ErrMessageNotFound
	}
	for i := range log {
		if log[i].ID != messageID {
			continue
		}
		if log[i].Kind != models.KindOffer {
			return ErrMessageNotFound
		}
		if log[i].OfferStatus != models.OfferPending {
			return ErrOfferNotPending
		}
		log[i].OfferStatus = decision
		return nil
	}
	return ErrMessageNotFound
}

// MarkSessionRead clears the viewing participant's unread counter. The
// counterpart's counter is untouched.
func (r *ConversationRepo) MarkSessionRead(ctx context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.sessionIndex(sessionID)
	if idx < 0 {
		return ErrSessionNotFound
	}
	switch userID {
	case r.sessions[idx].BuyerID:
		r.sessions[idx].BuyerUnread = 0
	case r.sessions[idx].SellerID:
		r.sessions[idx].SellerUnread = 0
	}
	return nil
}

// TotalUnread sums the user's side of the unread counters across their
// sessions.
func (r *ConversationRepo) TotalUnread(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, s := range r.sessions {
		total += s.UnreadFor(userID)
	}
	return total, nil
}

func (r *ConversationRepo) sessionIndex(sessionID string) int {
	for i, s := range r.sessions {
		if s.ID == sessionID {
			return i
		}
	}
	return -1
}

func (r *ConversationRepo) sessionExists(sessionID string) bool {
	return r.sessionIndex(sessionID) >= 0
}

func preview(kind models.MessageKind, content string) string {
	switch kind {
	case models.KindAudio:
		return "🎤 Voice Message"
	case models.KindImage:
		return "🖼️ Photo"
	case models.KindSticker:
		return "Sticker"
	case models.KindCallLog:
		return "📞 Call"
	default:
		return content
	}
}
