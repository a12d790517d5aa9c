package services

import (
	"math"
	"sort"
	"time"

	apperrors "stay/errors"
	"stay/dto"
	"stay/models"

	"gorm.io/gorm"
)

// StatsService tính các số liệu thống kê từ tập booking hiện tại.
// Chỉ đọc, không cache, tính lại mỗi lần gọi.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService tạo instance mới của StatsService
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// monthBuckets trả về mốc đầu của 12 tháng gần nhất, cũ nhất trước
func monthBuckets() []time.Time {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	buckets := make([]time.Time, 0, 12)
	for i := 11; i >= 0; i-- {
		buckets = append(buckets, first.AddDate(0, -i, 0))
	}
	return buckets
}

func (s *StatsService) bookedBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").
		Where("status = ?", models.BookingStatusBooked).
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy booking đã duyệt", err)
	}
	return bookings, nil
}

// MonthlyBookingCounts đếm booking đã duyệt theo tháng tạo trong 12 tháng gần nhất
func (s *StatsService) MonthlyBookingCounts() (dto.MonthlyBookingStats, error) {
	stats := dto.MonthlyBookingStats{
		Months: make([]string, 0, 12),
		Counts: make([]int, 0, 12),
	}

	bookings, err := s.bookedBookings()
	if err != nil {
		return stats, err
	}

	for _, monthStart := range monthBuckets() {
		nextMonth := monthStart.AddDate(0, 1, 0)

		count := 0
		for _, booking := range bookings {
			if !booking.CreatedAt.Before(monthStart) && booking.CreatedAt.Before(nextMonth) {
				count++
			}
		}

		stats.Months = append(stats.Months, monthStart.Format("Jan 06"))
		stats.Counts = append(stats.Counts, count)
	}
	return stats, nil
}

// RevenueStats cộng giá chỗ nghỉ của từng booking đã duyệt theo tháng tạo.
// Tổng và trung bình tính trên toàn bộ booking đã duyệt, không chỉ 12 tháng.
func (s *StatsService) RevenueStats() (dto.RevenueStats, error) {
	stats := dto.RevenueStats{
		Months: make([]string, 0, 12),
		Values: make([]float64, 0, 12),
	}

	bookings, err := s.bookedBookings()
	if err != nil {
		return stats, err
	}

	for _, monthStart := range monthBuckets() {
		nextMonth := monthStart.AddDate(0, 1, 0)

		value := 0.0
		for _, booking := range bookings {
			if !booking.CreatedAt.Before(monthStart) && booking.CreatedAt.Before(nextMonth) {
				value += booking.Property.Price
			}
		}

		stats.Months = append(stats.Months, monthStart.Format("Jan 06"))
		stats.Values = append(stats.Values, value)
	}

	for _, booking := range bookings {
		stats.Total += booking.Property.Price
	}
	if len(bookings) > 0 {
		stats.Average = stats.Total / float64(len(bookings))
	}
	return stats, nil
}

// StatusCounts đếm booking theo từng trạng thái
func (s *StatsService) StatusCounts() (dto.StatusCounts, error) {
	var counts dto.StatusCounts

	rows := []struct {
		Status string
		Count  int64
	}{}
	err := s.db.Model(&models.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return counts, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đếm theo trạng thái", err)
	}

	for _, row := range rows {
		switch row.Status {
		case models.BookingStatusBooked:
			counts.Booked = row.Count
		case models.BookingStatusPending:
			counts.Pending = row.Count
		case models.BookingStatusCancelled:
			counts.Cancelled = row.Count
		case models.BookingStatusDeclined:
			counts.Declined = row.Count
		}
	}
	return counts, nil
}

// OccupancyRate tính tỉ lệ lấp đầy. Mẫu số là tổng số đêm từ booking đã duyệt
// sớm nhất của từng chỗ nghỉ đến hôm nay, chỗ nghỉ chưa có booking đã duyệt
// không đóng góp gì. Tử số là tổng số đêm của mọi booking đã duyệt.
func (s *StatsService) OccupancyRate() (dto.OccupancyStats, error) {
	var stats dto.OccupancyStats

	bookings, err := s.bookedBookings()
	if err != nil {
		return stats, err
	}

	earliestStart := make(map[uint]time.Time)
	for _, booking := range bookings {
		stats.BookedNights += booking.Nights()

		current, ok := earliestStart[booking.PropertyID]
		if !ok || booking.StartDate.Before(current) {
			earliestStart[booking.PropertyID] = booking.StartDate
		}
	}

	today := startOfToday()
	for _, start := range earliestStart {
		days := int(today.Sub(start).Hours() / 24)
		if days > 0 {
			stats.AvailableNights += days
		}
	}

	if stats.AvailableNights == 0 {
		return stats, nil
	}

	stats.Rate = int(math.Round(100 * float64(stats.BookedNights) / float64(stats.AvailableNights)))
	return stats, nil
}

// CleaningGaps liệt kê khoảng trống giữa các booking liên tiếp của một chỗ nghỉ
func (s *StatsService) CleaningGaps(propertyID uint) ([]dto.CleaningGap, error) {
	var bookings []models.Booking
	err := s.db.Where("property_id = ?", propertyID).Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy booking của chỗ nghỉ", err)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartDate.Before(bookings[j].StartDate)
	})

	gaps := make([]dto.CleaningGap, 0)
	for i := 0; i < len(bookings)-1; i++ {
		current := bookings[i]
		next := bookings[i+1]
		if next.StartDate.After(current.EndDate) {
			gaps = append(gaps, dto.CleaningGap{
				PropertyID: propertyID,
				Start:      current.EndDate,
				End:        next.StartDate,
			})
		}
	}
	return gaps, nil
}
