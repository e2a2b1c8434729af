package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/booking"
	"github.com/zvrva/stayfinder/internal/service/listings"
)

type ListingHandler struct {
	service  listings.ListingUseCase
	bookings booking.BookingUseCase
}

type createListingRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Location     string   `json:"location" binding:"required"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	HostName     string   `json:"hostName" binding:"required"`
	MaxGuests    int      `json:"maxGuests" binding:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms" binding:"required,gt=0"`
	Bathrooms    int      `json:"bathrooms" binding:"required,gt=0"`
	PropertyType string   `json:"propertyType" binding:"required"`
}

type updateListingRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Location     *string  `json:"location"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	HostName     *string  `json:"hostName"`
	MaxGuests    *int     `json:"maxGuests"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	PropertyType *string  `json:"propertyType"`
	IsAvailable  *bool    `json:"isAvailable"`
}

// listingView is the flattened shape the frontend consumes: the first image
// is surfaced separately from the full gallery.
type listingView struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Image       string   `json:"image"`
	HostName    string   `json:"hostName"`
	Type        string   `json:"type"`
	Guests      int      `json:"guests"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

func toListingView(l domain.Listing) listingView {
	firstImage := ""
	if len(l.Images) > 0 {
		firstImage = l.Images[0]
	}
	return listingView{
		ID:          l.ID,
		Title:       l.Title,
		Location:    l.Location,
		Price:       l.Price,
		Rating:      l.Rating,
		Reviews:     l.Reviews,
		Image:       firstImage,
		HostName:    l.HostName,
		Type:        string(l.PropertyType),
		Guests:      l.MaxGuests,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Description: l.Description,
		Amenities:   l.Amenities,
		Images:      l.Images,
	}
}

func NewListingHandler(service listings.ListingUseCase, bookings booking.BookingUseCase) *ListingHandler {
	return &ListingHandler{service: service, bookings: bookings}
}

func (h *ListingHandler) Register(router *gin.RouterGroup, authRequired, hostOnly gin.HandlerFunc) {
	router.GET("", h.search)
	router.GET("/:id", h.get)
	router.GET("/:id/availability", h.availability)
	router.POST("", authRequired, hostOnly, h.create)
	router.PUT("/:id", authRequired, hostOnly, h.update)
	router.DELETE("/:id", authRequired, hostOnly, h.delete)
}

func (h *ListingHandler) search(c *gin.Context) {
	criteria := domain.SearchCriteria{
		Location:      c.Query("location"),
		PropertyTypes: c.QueryArray("propertyType"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		criteria.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		criteria.MaxPrice = &v
	}
	if raw := c.Query("guests"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests"})
			return
		}
		criteria.Guests = v
	}
	for _, pt := range criteria.PropertyTypes {
		if !domain.ValidPropertyType(pt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid propertyType"})
			return
		}
	}

	found, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]listingView, 0, len(found))
	for _, l := range found {
		views = append(views, toListingView(l))
	}
	c.JSON(http.StatusOK, views)
}

func (h *ListingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	listing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingView(*listing))
}

func (h *ListingHandler) availability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	checkIn, err := parseDate(c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkIn date"})
		return
	}
	checkOut, err := parseDate(c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOut date"})
		return
	}

	available, err := h.bookings.IsAvailable(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *ListingHandler) create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if !domain.ValidPropertyType(req.PropertyType) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "propertyType", Message: "unknown property type"}}})
		return
	}

	listing := &domain.Listing{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Location:     req.Location,
		Images:       req.Images,
		Amenities:    req.Amenities,
		HostID:       callerID(c),
		HostName:     req.HostName,
		MaxGuests:    req.MaxGuests,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		PropertyType: domain.PropertyType(req.PropertyType),
	}
	if err := h.service.Create(c.Request.Context(), listing); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingView(*listing))
}

func (h *ListingHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.PropertyType != nil && !domain.ValidPropertyType(*req.PropertyType) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "propertyType", Message: "unknown property type"}}})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "price", Message: "must be positive"}}})
		return
	}
	for field, value := range map[string]*int{
		"maxGuests": req.MaxGuests,
		"bedrooms":  req.Bedrooms,
		"bathrooms": req.Bathrooms,
	} {
		if value != nil && *value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: field, Message: "must be positive"}}})
			return
		}
	}

	updated, err := h.service.Update(c.Request.Context(), id, callerID(c), domain.ListingUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Location:     req.Location,
		Images:       req.Images,
		Amenities:    req.Amenities,
		HostName:     req.HostName,
		MaxGuests:    req.MaxGuests,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		PropertyType: req.PropertyType,
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingView(*updated))
}

func (h *ListingHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing removed"})
}

// parseDate accepts plain dates or full RFC3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
