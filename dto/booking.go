package dto

import "time"

// CreateBookingRequest là DTO cho request tạo booking, ngày theo định dạng dd/mm/yyyy
type CreateBookingRequest struct {
	PropertyID uint   `json:"propertyId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

// EditBookingRequest là DTO cho request đổi trạng thái booking
type EditBookingRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// BookingGuestResponse là DTO cho thông tin khách trong booking
type BookingGuestResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// BookingPropertyResponse là DTO cho thông tin chỗ nghỉ trong booking
type BookingPropertyResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Price          float64 `json:"price"`
	CurrencySymbol string  `json:"currencySymbol"`
	Avatar         string  `json:"avatar"`
}

type BookingResponse struct {
	ID        uint                    `json:"id"`
	Property  BookingPropertyResponse `json:"property"`
	Guest     BookingGuestResponse    `json:"guest"`
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Nights    int                     `json:"nights"`
	Status    string                  `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}
