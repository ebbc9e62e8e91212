package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"market-service/internal/agent"
	"market-service/internal/models"
	"market-service/internal/repositories"
)

type ListingRepositoryMock struct {
	mock.Mock
}

func (m *ListingRepositoryMock) Create(ctx context.Context, input models.ListingInput, seller models.User) (models.Listing, error) {
	args := m.Called(ctx, input, seller)
	var listing models.Listing
	if val := args.Get(0); val != nil {
		listing = val.(models.Listing)
	}
	return listing, args.Error(1)
}

func (m *ListingRepositoryMock) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ListingRepositoryMock) GetByID(ctx context.Context, id string) (models.Listing, error) {
	args := m.Called(ctx, id)
	var listing models.Listing
	if val := args.Get(0); val != nil {
		listing = val.(models.Listing)
	}
	return listing, args.Error(1)
}

func (m *ListingRepositoryMock) Query(ctx context.Context, search string, tab models.Tab, filters *models.QueryFilters) ([]models.Listing, error) {
	args := m.Called(ctx, search, tab, filters)
	var listings []models.Listing
	if val := args.Get(0); val != nil {
		listings = val.([]models.Listing)
	}
	return listings, args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) GetOrCreateSession(ctx context.Context, listingID, buyerID, sellerID, listingModel string) (models.ChatSession, error) {
	args := m.Called(ctx, listingID, buyerID, sellerID, listingModel)
	var session models.ChatSession
	if val := args.Get(0); val != nil {
		session = val.(models.ChatSession)
	}
	return session, args.Error(1)
}

func (m *ConversationRepositoryMock) GetSession(ctx context.Context, sessionID string) (models.ChatSession, error) {
	args := m.Called(ctx, sessionID)
	var session models.ChatSession
	if val := args.Get(0); val != nil {
		session = val.(models.ChatSession)
	}
	return session, args.Error(1)
}

func (m *ConversationRepositoryMock) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	args := m.Called(ctx, userID)
	var sessions []models.ChatSession
	if val := args.Get(0); val != nil {
		sessions = val.([]models.ChatSession)
	}
	return sessions, args.Error(1)
}

func (m *ConversationRepositoryMock) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

func (m *ConversationRepositoryMock) AppendMessage(ctx context.Context, sessionID, senderID string, kind models.MessageKind, content string, offerAmount int) (models.ChatMessage, error) {
	args := m.Called(ctx, sessionID, senderID, kind, content, offerAmount)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *ConversationRepositoryMock) RespondToOffer(ctx context.Context, sessionID, messageID string, decision models.OfferStatus) error {
	args := m.Called(ctx, sessionID, messageID, decision)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) MarkSessionRead(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) TotalUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Authenticate(ctx context.Context, phone string) (models.User, error) {
	args := m.Called(ctx, phone)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	args := m.Called(ctx, id, patch)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) RegisterPending(ctx context.Context, input models.PendingUser) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

type ParserMock struct {
	mock.Mock
}

func (m *ParserMock) Parse(ctx context.Context, text string) (models.ListingInput, error) {
	args := m.Called(ctx, text)
	var input models.ListingInput
	if val := args.Get(0); val != nil {
		input = val.(models.ListingInput)
	}
	return input, args.Error(1)
}

var _ repositories.ListingRepository = (*ListingRepositoryMock)(nil)
var _ repositories.ConversationRepository = (*ConversationRepositoryMock)(nil)
var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ agent.Parser = (*ParserMock)(nil)
