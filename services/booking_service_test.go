package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"stay/config"
	apperrors "stay/errors"
	"stay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Mỗi test một database in-memory riêng, cache=shared để dùng chung
	// giữa các connection trong pool
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Property{}, &models.Booking{}))
	return db
}

func newTestBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(db, nil, config.Settings{BookingLimit: 2}, nil)
}

func seedProperty(t *testing.T, db *gorm.DB, price float64) models.Property {
	t.Helper()
	property := models.Property{
		OwnerID: 1,
		Name:    "Căn hộ view biển",
		Price:   price,
		Address: "Đà Nẵng",
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func seedGuest(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	guest := models.User{Name: "Khách test", Email: email}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func assertErrCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, property.ID, booking.PropertyID)
	assert.Equal(t, 4, booking.Nights())
}

func TestCreateBookingInvalidRange(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	_, err := service.Create(guest.ID, property.ID, d(2024, time.June, 5), d(2024, time.June, 5))
	assertErrCode(t, err, apperrors.ErrCodeInvalidRange)

	_, err = service.Create(guest.ID, property.ID, d(2024, time.June, 5), d(2024, time.June, 1))
	assertErrCode(t, err, apperrors.ErrCodeInvalidRange)
}

func TestCreateBookingPropertyNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	guest := seedGuest(t, db, "guest@example.com")

	_, err := service.Create(guest.ID, 999, d(2024, time.June, 1), d(2024, time.June, 5))
	assertErrCode(t, err, apperrors.ErrCodeNotFound)
}

func TestCreateBookingConflict(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "a@example.com")
	other := seedGuest(t, db, "b@example.com")

	_, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	// Ngày nhận chỗ trùng ngày trả chỗ của đơn khác vẫn tính là trùng
	_, err = service.Create(other.ID, property.ID, d(2024, time.June, 5), d(2024, time.June, 10))
	assertErrCode(t, err, apperrors.ErrCodeConflict)

	// Hôm sau ngày trả chỗ thì được
	_, err = service.Create(other.ID, property.ID, d(2024, time.June, 6), d(2024, time.June, 10))
	require.NoError(t, err)
}

func TestCreateBookingConflictIgnoresInactive(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "a@example.com")
	other := seedGuest(t, db, "b@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	_, err = service.Cancel(booking.ID, guest.ID)
	require.NoError(t, err)

	// Đơn đã hủy không chặn khoảng ngày nữa
	_, err = service.Create(other.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)
}

func TestCreateBookingLimit(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	guest := seedGuest(t, db, "guest@example.com")

	p1 := seedProperty(t, db, 100)
	p2 := seedProperty(t, db, 100)
	p3 := seedProperty(t, db, 100)

	start := startOfToday().AddDate(0, 1, 0)

	first, err := service.Create(guest.ID, p1.ID, start, start.AddDate(0, 0, 3))
	require.NoError(t, err)
	_, err = service.Create(guest.ID, p2.ID, start, start.AddDate(0, 0, 3))
	require.NoError(t, err)

	// Giới hạn mặc định là 2 đơn đang hiệu lực
	_, err = service.Create(guest.ID, p3.ID, start, start.AddDate(0, 0, 3))
	assertErrCode(t, err, apperrors.ErrCodeLimitExceeded)

	// Hủy một đơn thì đặt tiếp được
	_, err = service.Cancel(first.ID, guest.ID)
	require.NoError(t, err)
	_, err = service.Create(guest.ID, p3.ID, start, start.AddDate(0, 0, 3))
	require.NoError(t, err)
}

func TestCreateBookingLimitIgnoresPastBookings(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	guest := seedGuest(t, db, "guest@example.com")

	p1 := seedProperty(t, db, 100)
	p2 := seedProperty(t, db, 100)
	p3 := seedProperty(t, db, 100)

	// Hai đơn đã qua ngày trả chỗ không tính vào giới hạn
	past := startOfToday().AddDate(0, -1, 0)
	require.NoError(t, db.Create(&models.Booking{
		PropertyID: p1.ID, GuestID: guest.ID,
		StartDate: past, EndDate: past.AddDate(0, 0, 3),
		Status: models.BookingStatusBooked,
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		PropertyID: p2.ID, GuestID: guest.ID,
		StartDate: past.AddDate(0, 0, 5), EndDate: past.AddDate(0, 0, 8),
		Status: models.BookingStatusBooked,
	}).Error)

	start := startOfToday().AddDate(0, 1, 0)
	_, err := service.Create(guest.ID, p3.ID, start, start.AddDate(0, 0, 3))
	require.NoError(t, err)
}

func TestConcurrentCreateSameRange(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	g1 := seedGuest(t, db, "a@example.com")
	g2 := seedGuest(t, db, "b@example.com")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	guests := []uint{g1.ID, g2.ID}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Create(guests[i], property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assertErrCode(t, err, apperrors.ErrCodeConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestConcurrentCreateSameGuestDifferentProperties(t *testing.T) {
	db := setupTestDB(t)
	service := NewBookingService(db, nil, config.Settings{BookingLimit: 2}, nil)
	guest := seedGuest(t, db, "guest@example.com")

	properties := make([]models.Property, 4)
	for i := range properties {
		properties[i] = seedProperty(t, db, 100)
	}

	start := startOfToday().AddDate(0, 1, 0)

	var wg sync.WaitGroup
	errs := make([]error, len(properties))
	for i := range properties {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Create(guest.ID, properties[i].ID, start, start.AddDate(0, 0, 3))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assertErrCode(t, err, apperrors.ErrCodeLimitExceeded)
		}
	}
	assert.Equal(t, 2, succeeded)

	// Số đơn đang giữ chỗ của khách không được vượt giới hạn
	count, err := service.ActiveCount(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	cancelled, err := service.Cancel(booking.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	// Hủy lần hai là transition không hợp lệ
	_, err = service.Cancel(booking.ID, guest.ID)
	assertErrCode(t, err, apperrors.ErrCodeInvalidTransition)
}

func TestCancelBookingOfOtherGuest(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "a@example.com")
	other := seedGuest(t, db, "b@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	_, err = service.Cancel(booking.ID, other.ID)
	assertErrCode(t, err, apperrors.ErrCodeNotFound)
}

func TestCancelBookedBooking(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	_, err = service.EditStatus(booking.ID, models.BookingStatusBooked)
	require.NoError(t, err)

	// Đơn đã duyệt vẫn hủy được
	cancelled, err := service.Cancel(booking.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
}

func TestEditStatus(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	updated, err := service.EditStatus(booking.ID, models.BookingStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusBooked, updated.Status)

	_, err = service.EditStatus(booking.ID, "archived")
	assertErrCode(t, err, apperrors.ErrCodeInvalidStatus)

	_, err = service.EditStatus(999, models.BookingStatusBooked)
	assertErrCode(t, err, apperrors.ErrCodeNotFound)
}

func TestEditStatusReactivateConflict(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "a@example.com")
	other := seedGuest(t, db, "b@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)
	_, err = service.Cancel(booking.ID, guest.ID)
	require.NoError(t, err)

	// Khoảng ngày đã được người khác giữ trong lúc đơn bị hủy
	_, err = service.Create(other.ID, property.ID, d(2024, time.June, 3), d(2024, time.June, 8))
	require.NoError(t, err)

	_, err = service.EditStatus(booking.ID, models.BookingStatusPending)
	assertErrCode(t, err, apperrors.ErrCodeConflict)
}

func TestEditStatusReactivateWithoutConflict(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)
	_, err = service.Cancel(booking.ID, guest.ID)
	require.NoError(t, err)

	// Không ai giữ khoảng ngày thì kích hoạt lại được, đơn không tự chặn chính nó
	updated, err := service.EditStatus(booking.ID, models.BookingStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusBooked, updated.Status)
}

func TestDeleteBooking(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	require.NoError(t, service.Delete(booking.ID))

	_, err = service.GetByID(booking.ID)
	assertErrCode(t, err, apperrors.ErrCodeNotFound)

	assertErrCode(t, service.Delete(booking.ID), apperrors.ErrCodeNotFound)
}

func TestHasConflictExcludesOwnID(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	booking, err := service.Create(guest.ID, property.ID, d(2024, time.June, 1), d(2024, time.June, 5))
	require.NoError(t, err)

	conflict, err := service.HasConflict(property.ID, booking.StartDate, booking.EndDate, booking.ID)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = service.HasConflict(property.ID, booking.StartDate, booking.EndDate, 0)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestListForGuestPagination(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	guest := seedGuest(t, db, "guest@example.com")

	for i := 0; i < 5; i++ {
		property := seedProperty(t, db, 100)
		require.NoError(t, db.Create(&models.Booking{
			PropertyID: property.ID,
			GuestID:    guest.ID,
			StartDate:  d(2024, time.June, 1+i*10),
			EndDate:    d(2024, time.June, 3+i*10),
			Status:     models.BookingStatusPending,
		}).Error)
	}

	bookings, total, err := service.ListForGuest(guest.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, bookings, 2)

	bookings, total, err = service.ListForGuest(guest.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, bookings, 1)
}

func TestListActive(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	for _, status := range []string{
		models.BookingStatusPending,
		models.BookingStatusBooked,
		models.BookingStatusCancelled,
		models.BookingStatusDeclined,
	} {
		require.NoError(t, db.Create(&models.Booking{
			PropertyID: property.ID,
			GuestID:    guest.ID,
			StartDate:  d(2024, time.June, 1),
			EndDate:    d(2024, time.June, 5),
			Status:     status,
		}).Error)
	}

	bookings, err := service.ListActive()
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	for _, booking := range bookings {
		assert.True(t, booking.IsActive())
	}
}

func TestDeclineExpiredPending(t *testing.T) {
	db := setupTestDB(t)
	service := newTestBookingService(db)
	property := seedProperty(t, db, 100)
	guest := seedGuest(t, db, "guest@example.com")

	past := startOfToday().AddDate(0, 0, -10)
	future := startOfToday().AddDate(0, 0, 10)

	expired := models.Booking{
		PropertyID: property.ID, GuestID: guest.ID,
		StartDate: past, EndDate: past.AddDate(0, 0, 3),
		Status: models.BookingStatusPending,
	}
	require.NoError(t, db.Create(&expired).Error)

	// Đơn đã duyệt và đơn pending còn hạn không bị đụng tới
	keptBooked := models.Booking{
		PropertyID: property.ID, GuestID: guest.ID,
		StartDate: past, EndDate: past.AddDate(0, 0, 4),
		Status: models.BookingStatusBooked,
	}
	require.NoError(t, db.Create(&keptBooked).Error)
	keptPending := models.Booking{
		PropertyID: property.ID, GuestID: guest.ID,
		StartDate: future, EndDate: future.AddDate(0, 0, 3),
		Status: models.BookingStatusPending,
	}
	require.NoError(t, db.Create(&keptPending).Error)

	declined, err := service.DeclineExpiredPending()
	require.NoError(t, err)
	assert.Equal(t, int64(1), declined)

	var reloadedExpired models.Booking
	require.NoError(t, db.First(&reloadedExpired, expired.ID).Error)
	assert.Equal(t, models.BookingStatusDeclined, reloadedExpired.Status)

	var reloadedBooked models.Booking
	require.NoError(t, db.First(&reloadedBooked, keptBooked.ID).Error)
	assert.Equal(t, models.BookingStatusBooked, reloadedBooked.Status)

	var reloadedPending models.Booking
	require.NoError(t, db.First(&reloadedPending, keptPending.ID).Error)
	assert.Equal(t, models.BookingStatusPending, reloadedPending.Status)
}
