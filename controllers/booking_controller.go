package controllers

import (
	"fmt"
	"strconv"
	"time"

	"stay/config"
	"stay/dto"
	"stay/errors"
	"stay/models"
	"stay/response"
	"stay/services"
	"stay/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 10 * time.Minute

type BookingController struct {
	service *services.BookingService
	redis   *redis.Client
}

func NewBookingController(service *services.BookingService, redisCli *redis.Client) *BookingController {
	return &BookingController{
		service: service,
		redis:   redisCli,
	}
}

func convertToBookingResponse(booking models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID: booking.ID,
		Property: dto.BookingPropertyResponse{
			ID:             booking.Property.ID,
			Name:           booking.Property.Name,
			Address:        booking.Property.Address,
			Price:          booking.Property.Price,
			CurrencySymbol: booking.Property.CurrencySymbol,
			Avatar:         booking.Property.Avatar,
		},
		StartDate: booking.StartDate.Format("02/01/2006"),
		EndDate:   booking.EndDate.Format("02/01/2006"),
		Nights:    booking.Nights(),
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
	if booking.Guest != nil {
		resp.Guest = dto.BookingGuestResponse{
			Name:        booking.Guest.Name,
			Email:       booking.Guest.Email,
			PhoneNumber: booking.Guest.PhoneNumber,
		}
	}
	return resp
}

// respondBookingError map lỗi của service sang response HTTP
func respondBookingError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound:
		response.NotFound(c)
	case errors.ErrCodeConflict:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeLimitExceeded,
		errors.ErrCodeInvalidTransition,
		errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidStatus,
		errors.ErrCodeInvalidFormat:
		response.BadRequest(c, appErr.Message)
	default:
		response.ServerError(c)
	}
}

// invalidateCache xóa các key danh sách bị ảnh hưởng khi một booking thay đổi.
// Danh sách của khách không cache nên không có key để xóa.
func (bc *BookingController) invalidateCache(propertyID uint) {
	if bc.redis == nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, bc.redis, "bookings:all")
	_ = services.DeleteFromRedis(config.Ctx, bc.redis, "bookings:active")
	_ = services.DeleteFromRedis(config.Ctx, bc.redis, fmt.Sprintf("bookings:property:%d", propertyID))
}

// Create khách gửi yêu cầu đặt chỗ mới
func (bc *BookingController) Create(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	startDate, endDate, err := validator.ParseDateRange(request.StartDate, request.EndDate)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	booking, err := bc.service.Create(currentUserID, request.PropertyID, startDate, endDate)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bc.invalidateCache(booking.PropertyID)
	response.Success(c, convertToBookingResponse(*booking))
}

// Cancel khách tự hủy đơn đặt của mình
func (bc *BookingController) Cancel(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	booking, err := bc.service.Cancel(uint(bookingID), currentUserID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bc.invalidateCache(booking.PropertyID)
	response.Success(c, gin.H{"message": "Đã hủy đơn đặt"})
}

// EditStatus chủ nhà / nhân viên đổi trạng thái đơn đặt
func (bc *BookingController) EditStatus(c *gin.Context) {
	var request dto.EditBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := bc.service.EditStatus(request.ID, request.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bc.invalidateCache(booking.PropertyID)
	response.Success(c, convertToBookingResponse(*booking))
}

// Delete chủ nhà xóa hẳn đơn đặt
func (bc *BookingController) Delete(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	booking, err := bc.service.GetByID(uint(bookingID))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if err := bc.service.Delete(uint(bookingID)); err != nil {
		respondBookingError(c, err)
		return
	}

	bc.invalidateCache(booking.PropertyID)
	response.Success(c, gin.H{"message": "Đã xóa đơn đặt"})
}

// Detail lấy chi tiết một đơn đặt
func (bc *BookingController) Detail(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	booking, err := bc.service.GetByID(uint(bookingID))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(*booking))
}

// ListAll lấy toàn bộ đơn đặt cho dashboard, có cache Redis
func (bc *BookingController) ListAll(c *gin.Context) {
	var bookings []models.Booking

	cacheKey := "bookings:all"
	if bc.redis != nil {
		if err := services.GetFromRedis(config.Ctx, bc.redis, cacheKey, &bookings); err == nil && len(bookings) > 0 {
			bc.respondList(c, bookings)
			return
		}
	}

	bookings, err := bc.service.ListAll()
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if bc.redis != nil {
		_ = services.SetToRedis(config.Ctx, bc.redis, cacheKey, bookings, cacheTTL)
	}
	bc.respondList(c, bookings)
}

// ListActive lấy các đơn đặt đang giữ chỗ
func (bc *BookingController) ListActive(c *gin.Context) {
	var bookings []models.Booking

	cacheKey := "bookings:active"
	if bc.redis != nil {
		if err := services.GetFromRedis(config.Ctx, bc.redis, cacheKey, &bookings); err == nil && len(bookings) > 0 {
			bc.respondList(c, bookings)
			return
		}
	}

	bookings, err := bc.service.ListActive()
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if bc.redis != nil {
		_ = services.SetToRedis(config.Ctx, bc.redis, cacheKey, bookings, cacheTTL)
	}
	bc.respondList(c, bookings)
}

// ListForProperty lấy đơn đặt của một chỗ nghỉ, dùng cho lịch trên trang chi tiết
func (bc *BookingController) ListForProperty(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Query("propertyId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "propertyId không hợp lệ")
		return
	}

	var bookings []models.Booking

	cacheKey := fmt.Sprintf("bookings:property:%d", propertyID)
	if bc.redis != nil {
		if err := services.GetFromRedis(config.Ctx, bc.redis, cacheKey, &bookings); err == nil && len(bookings) > 0 {
			bc.respondList(c, bookings)
			return
		}
	}

	bookings, err = bc.service.ListForProperty(uint(propertyID))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if bc.redis != nil {
		_ = services.SetToRedis(config.Ctx, bc.redis, cacheKey, bookings, cacheTTL)
	}
	bc.respondList(c, bookings)
}

// ListForGuest lấy lịch sử đặt chỗ của khách đang đăng nhập
func (bc *BookingController) ListForGuest(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	bookings, total, err := bc.service.ListForGuest(currentUserID, page, limit)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(booking))
	}
	response.SuccessWithPagination(c, bookingResponses, page, limit, int(total))
}

func (bc *BookingController) respondList(c *gin.Context, bookings []models.Booking) {
	bookingResponses := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(booking))
	}
	response.Success(c, bookingResponses)
}
