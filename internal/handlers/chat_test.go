package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market-service/internal/mocks"
	"market-service/internal/models"
	"market-service/internal/repositories"
)

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	r.GET("/chats", handler.ListSessions)
	r.POST("/chats/start", handler.Start)
	r.GET("/chats/:chat_id/messages", handler.GetMessages)
	r.POST("/chats/:chat_id/messages", handler.PostMessage)
	r.POST("/chats/:chat_id/messages/:message_id/respond", handler.RespondToOffer)
	r.GET("/profile/unread", handler.Unread)
	return r
}

func participantSession() models.ChatSession {
	return models.ChatSession{ID: "chat_1", ListingID: "lst_1", BuyerID: "u1", SellerID: "seller_1"}
}

func TestListSessionsSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("ListSessions", mock.Anything, "u1").
		Return([]models.ChatSession{participantSession()}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Chats []models.ChatSession `json:"chats"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Chats, 1)
	assert.Equal(t, "chat_1", resp.Chats[0].ID)

	convRepo.AssertExpectations(t)
}

func TestUnreadTotal(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("TotalUnread", mock.Anything, "u1").Return(4, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/profile/unread", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unread":4}`, rec.Body.String())
	convRepo.AssertExpectations(t)
}

func TestStartChatSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	listingRepo := new(mocks.ListingRepositoryMock)
	handler := NewChatHandler(convRepo, listingRepo, nil)
	router := setupChatRouter(handler)

	listingRepo.On("GetByID", mock.Anything, "lst_1").
		Return(models.Listing{ID: "lst_1", Model: "iPhone 15", SellerID: "seller_1"}, nil).Once()
	convRepo.On("GetOrCreateSession", mock.Anything, "lst_1", "u1", "seller_1", "iPhone 15").
		Return(participantSession(), nil).Once()

	body := bytes.NewBufferString(`{"listing_id":"lst_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/start", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"chat_id":"chat_1"}`, rec.Body.String())

	listingRepo.AssertExpectations(t)
	convRepo.AssertExpectations(t)
}

func TestStartChatWithOwnListing(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	listingRepo := new(mocks.ListingRepositoryMock)
	handler := NewChatHandler(convRepo, listingRepo, nil)
	router := setupChatRouter(handler)

	listingRepo.On("GetByID", mock.Anything, "lst_1").
		Return(models.Listing{ID: "lst_1", SellerID: "u1"}, nil).Once()

	body := bytes.NewBufferString(`{"listing_id":"lst_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/start", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	convRepo.AssertNotCalled(t, "GetOrCreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartChatListingMissing(t *testing.T) {
	listingRepo := new(mocks.ListingRepositoryMock)
	handler := NewChatHandler(new(mocks.ConversationRepositoryMock), listingRepo, nil)
	router := setupChatRouter(handler)

	listingRepo.On("GetByID", mock.Anything, "lst_missing").
		Return(models.Listing{}, repositories.ErrListingNotFound).Once()

	body := bytes.NewBufferString(`{"listing_id":"lst_missing"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/start", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	listingRepo.AssertExpectations(t)
}

func TestGetMessagesMarksSessionRead(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("ListMessages", mock.Anything, "chat_1").
		Return([]models.ChatMessage{{ID: "msg_1", Kind: models.KindText, Text: "hi"}}, nil).Once()
	convRepo.On("MarkSessionRead", mock.Anything, "chat_1", "u1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/chat_1/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Messages, 1)

	convRepo.AssertExpectations(t)
}

func TestGetMessagesNotParticipant(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").
		Return(models.ChatSession{ID: "chat_1", BuyerID: "u2", SellerID: "seller_1"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/chat_1/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	convRepo.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything)
}

func TestGetMessagesSessionMissing(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_missing").
		Return(models.ChatSession{}, repositories.ErrSessionNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/chat_missing/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestPostMessageSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("AppendMessage", mock.Anything, "chat_1", "u1", models.KindText, "still available?", 0).
		Return(models.ChatMessage{ID: "msg_1", Kind: models.KindText, Text: "still available?"}, nil).Once()

	body := bytes.NewBufferString(`{"type":"text","content":"still available?"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestPostOfferMessage(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("AppendMessage", mock.Anything, "chat_1", "u1", models.KindOffer, "Offer: ₦380,000", 380000).
		Return(models.ChatMessage{ID: "msg_1", Kind: models.KindOffer, OfferAmount: 380000, OfferStatus: models.OfferPending}, nil).Once()

	body := bytes.NewBufferString(`{"type":"offer","content":"Offer: ₦380,000","offer_amount":380000}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var msg models.ChatMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, models.OfferPending, msg.OfferStatus)

	convRepo.AssertExpectations(t)
}

func TestPostMessageMissingContent(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()

	body := bytes.NewBufferString(`{"type":"text"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	convRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRespondToOfferAccepted(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("RespondToOffer", mock.Anything, "chat_1", "msg_1", models.OfferAccepted).Return(nil).Once()

	body := bytes.NewBufferString(`{"decision":"accepted"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages/msg_1/respond", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"accepted"}`, rec.Body.String())
	convRepo.AssertExpectations(t)
}

func TestRespondToOfferAlreadyDecided(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("RespondToOffer", mock.Anything, "chat_1", "msg_1", models.OfferRejected).
		Return(repositories.ErrOfferNotPending).Once()

	body := bytes.NewBufferString(`{"decision":"rejected"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages/msg_1/respond", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestRespondToOfferMissingMessage(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()
	convRepo.On("RespondToOffer", mock.Anything, "chat_1", "msg_missing", models.OfferAccepted).
		Return(repositories.ErrMessageNotFound).Once()

	body := bytes.NewBufferString(`{"decision":"accepted"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages/msg_missing/respond", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestRespondToOfferInvalidDecision(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewChatHandler(convRepo, new(mocks.ListingRepositoryMock), nil)
	router := setupChatRouter(handler)

	convRepo.On("GetSession", mock.Anything, "chat_1").Return(participantSession(), nil).Once()

	body := bytes.NewBufferString(`{"decision":"maybe"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/chat_1/messages/msg_1/respond", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	convRepo.AssertNotCalled(t, "RespondToOffer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
