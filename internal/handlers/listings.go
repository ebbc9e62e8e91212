package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market-service/internal/agent"
	"market-service/internal/catalog"
	"market-service/internal/models"
	"market-service/internal/observability"
	"market-service/internal/repositories"
	"market-service/internal/telemetry"
)

// ListingHandler manages listing browse, post and delete endpoints.
type ListingHandler struct {
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	parser      agent.Parser
	emitter     *telemetry.AuditEmitter
}

// NewListingHandler builds a ListingHandler.
func NewListingHandler(listingRepo repositories.ListingRepository, userRepo repositories.UserRepository, parser agent.Parser, emitter *telemetry.AuditEmitter) *ListingHandler {
	return &ListingHandler{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		parser:      parser,
		emitter:     emitter,
	}
}

// List answers the browse query: tab partition, free-text search, filters
// and sort order all come from query parameters.
func (h *ListingHandler) List(c *gin.Context) {
	tab := models.Tab(c.DefaultQuery("tab", string(models.TabSupply)))
	search := c.Query("search")
	filters := filtersFromQuery(c)

	observability.IncListingQuery(string(tab))

	listings, err := h.listingRepo.Query(c.Request.Context(), search, tab, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// Get returns a single listing by id.
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrListingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Create posts a new listing on behalf of the authenticated user. Unset
// fields are defaulted by the store; the seller block is a snapshot of the
// caller's profile at this moment.
func (h *ListingHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var input models.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seller, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	listing, err := h.listingRepo.Create(c.Request.Context(), input, seller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create listing"})
		return
	}

	observability.IncListingCreated(string(listing.Type))
	h.emitter.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("listing created id=%s type=%s model=%q", listing.ID, listing.Type, listing.Model),
		requestIDFromContext(c), userIDFromContext(c))

	c.JSON(http.StatusCreated, listing)
}

// Delete removes the caller's own listing. The store-level delete is
// idempotent; the ownership check is what turns an absent id into a 404
// here.
func (h *ListingHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	listing, err := h.listingRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrListingNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "listing not found"})
		return
	}
	if listing.SellerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the listing owner"})
		return
	}

	if _, err := h.listingRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete listing"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("listing deleted id=%s", id),
		requestIDFromContext(c), userIDFromContext(c))

	c.Status(http.StatusNoContent)
}

// Suggestions answers typeahead lookups against the model catalog.
func (h *ListingHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": catalog.Suggest(c.Query("q"))})
}

// Parse hands free text to the agent parser and returns the extracted
// partial listing for the posting form to prefill.
func (h *ListingHandler) Parse(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.parser.Parse(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, agent.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent parser not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to parse listing text"})
		return
	}

	c.JSON(http.StatusOK, input)
}

func filtersFromQuery(c *gin.Context) *models.QueryFilters {
	filters := &models.QueryFilters{
		MinPrice: intQuery(c, "min_price"),
		MaxPrice: intQuery(c, "max_price"),
		SortBy:   models.SortOrder(c.Query("sort")),
	}
	for _, v := range splitCSV(c.Query("conditions")) {
		filters.Conditions = append(filters.Conditions, models.Condition(v))
	}
	for _, v := range splitCSV(c.Query("regions")) {
		filters.Regions = append(filters.Regions, models.Region(v))
	}
	filters.Storage = splitCSV(c.Query("storage"))
	return filters
}

func intQuery(c *gin.Context, key string) int {
	val, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return val
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
