package models

import "time"

// ChatSession is a buyer-seller conversation thread tied to one listing.
// ListingModel is a display label copied from the listing at creation time.
// Unread counters are per participant: a message increments the counterpart's
// counter only, so senders never badge their own thread.
type ChatSession struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	ListingModel string    `json:"listing_model"`
	BuyerID      string    `json:"buyer_id"`
	SellerID     string    `json:"seller_id"`
	LastMessage  string    `json:"last_message"`
	LastUpdated  time.Time `json:"last_updated"`
	BuyerUnread  int       `json:"buyer_unread"`
	SellerUnread int       `json:"seller_unread"`
}

// Participant reports whether the user is on either side of the session.
func (s ChatSession) Participant(userID string) bool {
	return s.BuyerID == userID || s.SellerID == userID
}

// UnreadFor returns the unread counter for the given participant.
func (s ChatSession) UnreadFor(userID string) int {
	switch userID {
	case s.BuyerID:
		return s.BuyerUnread
	case s.SellerID:
		return s.SellerUnread
	}
	return 0
}
