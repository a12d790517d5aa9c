package services

import (
	"errors"
	"sync"
	"time"

	apperrors "stay/errors"
	"stay/models"

	"stay/config"
	"stay/services/logger"
	"stay/services/notification"

	"gorm.io/gorm"
)

// BookingService quản lý vòng đời đặt chỗ: tạo, hủy, đổi trạng thái, xóa.
// Tạo mới phải qua kiểm tra giới hạn của khách và kiểm tra trùng lịch,
// được serialize theo từng chỗ nghỉ và từng khách để hai request đồng thời
// không cùng giữ một đêm và một khách không vượt giới hạn qua nhiều chỗ nghỉ.
type BookingService struct {
	db         *gorm.DB
	mailer     Mailer
	notifier   notification.Service
	settings   config.Settings
	logger     logger.Logger
	locks      sync.Map // propertyID -> *sync.Mutex
	guestLocks sync.Map // guestID -> *sync.Mutex
}

// NewBookingService tạo instance mới của BookingService
func NewBookingService(db *gorm.DB, mailer Mailer, settings config.Settings, l logger.Logger) *BookingService {
	return &BookingService{
		db:       db,
		mailer:   mailer,
		settings: settings,
		logger:   l,
	}
}

// SetNotifier gắn service broadcast realtime cho dashboard
func (s *BookingService) SetNotifier(n notification.Service) {
	s.notifier = n
}

func (s *BookingService) lockFor(propertyID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(propertyID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *BookingService) guestLockFor(guestID uint) *sync.Mutex {
	mu, _ := s.guestLocks.LoadOrStore(guestID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// startOfToday trả về 0h hôm nay
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// HasConflict kiểm tra khoảng ngày có trùng với booking đang giữ chỗ nào
// của chỗ nghỉ không. Hai khoảng [a,b] và [c,d] trùng khi a <= d và b >= c,
// ngày trả chỗ trùng ngày nhận chỗ của đơn khác cũng tính là trùng.
// excludeID khác 0 để bỏ qua chính booking đang được sửa.
func (s *BookingService) HasConflict(propertyID uint, startDate, endDate time.Time, excludeID uint) (bool, error) {
	query := s.db.Model(&models.Booking{}).
		Where("property_id = ? AND status IN ?", propertyID, models.ActiveStatuses).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi kiểm tra trùng lịch", err)
	}
	return count > 0, nil
}

// ActiveCount đếm số booking đang giữ chỗ của khách có ngày trả chỗ từ hôm nay trở đi
func (s *BookingService) ActiveCount(guestID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("guest_id = ? AND status IN ? AND end_date >= ?", guestID, models.ActiveStatuses, startOfToday()).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đếm booking của khách", err)
	}
	return count, nil
}

// Create tạo booking mới với trạng thái pending.
// Kiểm tra giới hạn và trùng lịch rồi ghi được thực hiện trong cùng một
// critical section, serialize theo cả chỗ nghỉ lẫn khách. Thứ tự lấy lock
// cố định: chỗ nghỉ trước, khách sau, để không deadlock.
func (s *BookingService) Create(guestID uint, propertyID uint, startDate, endDate time.Time) (*models.Booking, error) {
	if !startDate.Before(endDate) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày trả chỗ phải sau ngày nhận chỗ", nil)
	}

	mu := s.lockFor(propertyID)
	mu.Lock()
	defer mu.Unlock()

	guestMu := s.guestLockFor(guestID)
	guestMu.Lock()
	defer guestMu.Unlock()

	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy chỗ nghỉ", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm chỗ nghỉ", err)
	}

	count, err := s.ActiveCount(guestID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.settings.BookingLimit) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeLimitExceeded, "Bạn đã đạt giới hạn số đơn đặt đang hiệu lực", nil)
	}

	conflict, err := s.HasConflict(propertyID, startDate, endDate, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewAppError(apperrors.ErrCodeConflict, "Khoảng ngày này đã có người đặt", nil)
	}

	booking := models.Booking{
		PropertyID: propertyID,
		GuestID:    guestID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     models.BookingStatusPending,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&booking).Error
	}); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tạo booking", err)
	}

	if err := s.db.Preload("Property").Preload("Guest").First(&booking, booking.ID).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đọc lại booking", err)
	}

	// Gửi mail báo đã nhận yêu cầu, lỗi gửi không làm hỏng booking
	go s.sendGuestMail(&booking, bookingReceivedEmail)
	s.broadcast(&booking, "yêu cầu mới")

	return &booking, nil
}

// Cancel khách tự hủy booking của mình
func (s *BookingService) Cancel(bookingID uint, guestID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Where("id = ? AND guest_id = ?", bookingID, guestID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy đơn đặt", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm đơn đặt", err)
	}

	state := models.GetBookingState(booking.Status)
	if err := state.Cancel(&booking); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidTransition, "Đơn đặt đã bị hủy hoặc từ chối trước đó", err)
	}

	booking.UpdatedAt = time.Now()
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi hủy đơn đặt", err)
	}

	// Khách tự hủy nên không cần gửi mail
	s.broadcast(&booking, "khách đã hủy")

	return &booking, nil
}

// EditStatus chủ nhà / nhân viên đổi trạng thái booking. Mọi trạng thái hợp lệ
// đều được chấp nhận, nhưng khi đưa booking trở lại trạng thái giữ chỗ thì
// phải kiểm tra lại trùng lịch (bỏ qua chính nó).
func (s *BookingService) EditStatus(bookingID uint, status string) (*models.Booking, error) {
	if !models.IsValidStatus(status) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, "Trạng thái không hợp lệ", nil)
	}

	var booking models.Booking
	if err := s.db.Preload("Property").Preload("Guest").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy đơn đặt", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm đơn đặt", err)
	}

	activeTarget := status == models.BookingStatusPending || status == models.BookingStatusBooked
	if activeTarget && !booking.IsActive() {
		mu := s.lockFor(booking.PropertyID)
		mu.Lock()
		defer mu.Unlock()

		conflict, err := s.HasConflict(booking.PropertyID, booking.StartDate, booking.EndDate, booking.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, apperrors.NewAppError(apperrors.ErrCodeConflict, "Khoảng ngày này đã có người đặt", nil)
		}
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi cập nhật trạng thái", err)
	}

	go s.sendGuestMail(&booking, bookingStatusEmail)
	s.broadcast(&booking, "đổi trạng thái: "+status)

	return &booking, nil
}

// Delete chủ nhà xóa hẳn booking. Mail báo xóa được gửi trước khi xóa
// để còn đọc được tên chỗ nghỉ và tên khách.
func (s *BookingService) Delete(bookingID uint) error {
	var booking models.Booking
	if err := s.db.Preload("Property").Preload("Guest").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy đơn đặt", err)
		}
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm đơn đặt", err)
	}

	s.sendGuestMail(&booking, bookingDeletedEmail)

	if err := s.db.Delete(&models.Booking{}, bookingID).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi xóa đơn đặt", err)
	}

	s.broadcast(&booking, "đã xóa")
	return nil
}

// GetByID lấy booking theo ID
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Property").Preload("Guest").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy đơn đặt", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm đơn đặt", err)
	}
	return &booking, nil
}

// ListForProperty lấy tất cả booking của một chỗ nghỉ
func (s *BookingService) ListForProperty(propertyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Guest").
		Where("property_id = ?", propertyID).
		Order("start_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách booking", err)
	}
	return bookings, nil
}

// ListForGuest lấy booking của một khách, có phân trang
func (s *BookingService) ListForGuest(guestID uint, page, limit int) ([]models.Booking, int64, error) {
	var total int64
	if err := s.db.Model(&models.Booking{}).Where("guest_id = ?", guestID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đếm booking", err)
	}

	var bookings []models.Booking
	err := s.db.Preload("Property").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách booking", err)
	}
	return bookings, total, nil
}

// ListAll lấy toàn bộ booking
func (s *BookingService) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").Preload("Guest").
		Order("updated_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách booking", err)
	}
	return bookings, nil
}

// ListActive lấy các booking đang giữ chỗ
func (s *BookingService) ListActive() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").Preload("Guest").
		Where("status IN ?", models.ActiveStatuses).
		Order("start_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách booking", err)
	}
	return bookings, nil
}

// DeclineExpiredPending chuyển các booking pending đã qua ngày trả chỗ sang declined,
// chạy từ cron job hằng đêm
func (s *BookingService) DeclineExpiredPending() (int64, error) {
	result := s.db.Model(&models.Booking{}).
		Where("status = ? AND end_date < ?", models.BookingStatusPending, startOfToday()).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusDeclined,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi dọn booking quá hạn", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *BookingService) sendGuestMail(booking *models.Booking, compose func(*models.Booking) (string, string)) {
	if s.mailer == nil || booking.Guest == nil || booking.Guest.Email == "" {
		return
	}
	subject, body := compose(booking)
	if err := s.mailer.Send(booking.Guest.Email, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Error("Gửi email cho booking %d không thành công: %v", booking.ID, err)
		}
	}
}

func (s *BookingService) broadcast(booking *models.Booking, event string) {
	if s.notifier == nil {
		return
	}
	message := notification.NewMessageBuilder(booking.ID, booking.PropertyID, event).Build()
	if err := s.notifier.SendMessage(message); err != nil && s.logger != nil {
		s.logger.Error("Broadcast sự kiện booking %d không thành công: %v", booking.ID, err)
	}
}
