package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-hub/internal/service"
)

// ListingHandler expone listings y sus comentarios.
type ListingHandler struct {
	logger      *zap.Logger
	listingServ *service.ListingService
	commentServ *service.CommentService
}

func NewListingHandler(logger *zap.Logger, listingServ *service.ListingService, commentServ *service.CommentService) *ListingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingHandler{
		logger:      logger,
		listingServ: listingServ,
		commentServ: commentServ,
	}
}

type createListingRequest struct {
	Title         string   `json:"title" binding:"required"`
	Location      string   `json:"location" binding:"required"`
	Price         float64  `json:"price"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Size          string   `json:"size"`
	ImageURL      string   `json:"image_url"`
	Description   string   `json:"description"`
	AvailableFrom string   `json:"available_from"`
	Amenities     []string `json:"amenities"`
	Status        string   `json:"status"`
	ContactName   string   `json:"contact_name"`
	ContactPhone  string   `json:"contact_phone"`
}

// CreateListing maneja POST /listings.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	ownerID, ok := principal(c)
	if !ok {
		return
	}
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "create listing", err)
		return
	}

	var availableFrom *time.Time
	if v := strings.TrimSpace(req.AvailableFrom); v != "" {
		day, err := time.Parse(time.DateOnly, v)
		if err != nil {
			badRequest(c, h.logger, "create listing", err)
			return
		}
		availableFrom = &day
	}

	listing, err := h.listingServ.Create(c.Request.Context(), ownerID, service.CreateListingInput{
		Title:         req.Title,
		Location:      req.Location,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Size:          req.Size,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		AvailableFrom: availableFrom,
		Amenities:     req.Amenities,
		Status:        req.Status,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
	})
	if err != nil {
		writeServiceError(c, h.logger, "create listing", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// ListListings maneja GET /listings.
func (h *ListingHandler) ListListings(c *gin.Context) {
	listings, err := h.listingServ.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, "list listings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetListing maneja GET /listings/:id.
func (h *ListingHandler) GetListing(c *gin.Context) {
	detail, err := h.listingServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "get listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": detail})
}

// CreateComment maneja POST /listings/:id/comments.
func (h *ListingHandler) CreateComment(c *gin.Context) {
	authorID, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "create comment", err)
		return
	}
	comment, err := h.commentServ.Create(c.Request.Context(), c.Param("id"), authorID, req.Content)
	if err != nil {
		writeServiceError(c, h.logger, "create comment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments maneja GET /listings/:id/comments.
func (h *ListingHandler) ListComments(c *gin.Context) {
	comments, err := h.commentServ.ListByListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
