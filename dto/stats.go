package dto

import "time"

// MonthlyBookingStats là số booking đã duyệt theo 12 tháng gần nhất, cũ nhất trước
type MonthlyBookingStats struct {
	Months []string `json:"months"`
	Counts []int    `json:"counts"`
}

// RevenueStats là doanh thu theo 12 tháng gần nhất cộng tổng và trung bình mọi thời điểm
type RevenueStats struct {
	Months  []string  `json:"months"`
	Values  []float64 `json:"values"`
	Total   float64   `json:"total"`
	Average float64   `json:"average"`
}

// StatusCounts là số booking theo từng trạng thái
type StatusCounts struct {
	Booked    int64 `json:"booked"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Declined  int64 `json:"declined"`
}

// OccupancyStats là tỉ lệ lấp đầy tính trên số đêm từ booking đầu tiên đến hôm nay
type OccupancyStats struct {
	Rate            int `json:"rate"`
	BookedNights    int `json:"bookedNights"`
	AvailableNights int `json:"availableNights"`
}

// CleaningGap là khoảng trống giữa hai booking liên tiếp của một chỗ nghỉ,
// dùng để xếp lịch dọn dẹp
type CleaningGap struct {
	PropertyID uint      `json:"propertyId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}
