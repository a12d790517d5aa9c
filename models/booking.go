package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusBooked    = "booked"
	BookingStatusCancelled = "cancelled"
	BookingStatusDeclined  = "declined"
)

// ActiveStatuses là các trạng thái đang giữ chỗ (tính vào kiểm tra trùng lịch)
var ActiveStatuses = []string{BookingStatusPending, BookingStatusBooked}

type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `json:"propertyId"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"property"`
	GuestID    uint      `json:"guestId"`
	Guest      *User     `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	StartDate  time.Time `json:"startDate"` // Ngày nhận chỗ
	EndDate    time.Time `json:"endDate"`   // Ngày trả chỗ
	Status     string    `gorm:"type:varchar(16);default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsActive kiểm tra booking có đang giữ chỗ không
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusBooked
}

// Nights số đêm của booking
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// IsValidStatus kiểm tra status có thuộc danh sách trạng thái hợp lệ không
func IsValidStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusBooked, BookingStatusCancelled, BookingStatusDeclined:
		return true
	}
	return false
}
