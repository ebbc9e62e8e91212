package models

import "time"

// MessageKind is the variant tag of a chat message.
type MessageKind string

const (
	KindText    MessageKind = "text"
	KindImage   MessageKind = "image"
	KindSticker MessageKind = "sticker"
	KindAudio   MessageKind = "audio"
	KindOffer   MessageKind = "offer"
	KindCallLog MessageKind = "call_log"
)

// ChatMessage belongs to exactly one session; the session owns the log and
// messages are append-only. Exactly one payload field is populated, matching
// Kind. Offers additionally carry an amount and a tri-state status.
type ChatMessage struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"session_id"`
	SenderID    string      `json:"sender_id"`
	Kind        MessageKind `json:"type"`
	Text        string      `json:"text,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	StickerURL  string      `json:"sticker_url,omitempty"`
	AudioURL    string      `json:"audio_url,omitempty"`
	OfferAmount int         `json:"offer_amount,omitempty"`
	OfferStatus OfferStatus `json:"offer_status,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
