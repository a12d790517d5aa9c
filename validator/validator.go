package validator

import (
	"regexp"
	"time"

	"stay/errors"
	"stay/models"
)

const dateLayout = "02/01/2006"

// ParseDateRange parse và validate khoảng ngày dd/mm/yyyy, yêu cầu ngày nhận
// chỗ phải trước ngày trả chỗ
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	startDate, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận chỗ không hợp lệ", err)
	}

	endDate, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả chỗ không hợp lệ", err)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả chỗ phải sau ngày nhận chỗ", nil)
	}

	return startDate, endDate, nil
}

// ValidateUser validate thông tin user khi đăng ký
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}

	if user.Role < 0 || user.Role > 2 {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role không hợp lệ", nil)
	}

	return nil
}

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}
