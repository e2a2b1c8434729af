package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ListingID int64  `json:"listing" binding:"required"`
	CheckIn   string `json:"checkIn" binding:"required"`
	CheckOut  string `json:"checkOut" binding:"required"`
	Guests    int    `json:"guests" binding:"required,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bookingResponse struct {
	ID            int64   `json:"id"`
	ListingID     int64   `json:"listing"`
	GuestID       int64   `json:"guest"`
	ReferenceCode string  `json:"referenceCode"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	Guests        int     `json:"guests"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		ListingID:     b.ListingID,
		GuestID:       b.GuestID,
		ReferenceCode: b.ReferenceCode,
		CheckIn:       b.CheckIn.Format(time.RFC3339),
		CheckOut:      b.CheckOut.Format(time.RFC3339),
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, guestOnly, hostOnly gin.HandlerFunc) {
	router.POST("", guestOnly, h.create)
	router.GET("/my-bookings", h.myBookings)
	router.GET("/host-bookings", hostOnly, h.hostBookings)
	router.PUT("/:id/status", hostOnly, h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "checkIn", Message: "invalid date"}}})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "checkOut", Message: "invalid date"}}})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ListingID: req.ListingID,
		GuestID:   callerID(c),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    req.Guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(*created))
}

func (h *BookingHandler) myBookings(c *gin.Context) {
	bookings, err := h.service.ListForGuest(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) hostBookings(c *gin.Context) {
	bookings, err := h.service.ListForHost(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if !domain.ValidBookingStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "status", Message: "unknown status"}}})
		return
	}

	updated, err := h.service.SetStatus(c.Request.Context(), id, callerID(c), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*updated))
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
