package services

import (
	"context"
	"errors"
	"os"

	"stay/config"
	"stay/constants"
	apperrors "stay/errors"
	"stay/models"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword so sánh mật khẩu với bản băm
func CheckPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GetUserByEmail tìm user theo email
func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "Không tìm thấy người dùng", err)
		}
		return user, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tìm người dùng", err)
	}
	return user, nil
}

// CreateUser tạo tài khoản mới với role mặc định là khách
func CreateUser(input models.User) (models.User, error) {
	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email đã được đăng ký", nil)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}
	input.Password = hashed
	input.Role = constants.RoleGuest
	input.Status = constants.UserStatusActive

	if err := config.DB.Create(&input).Error; err != nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tạo người dùng", err)
	}
	return input, nil
}

// CreateGoogleUser tạo tài khoản từ thông tin Google, không có mật khẩu local
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	user := models.User{
		Name:   name,
		Email:  email,
		Avatar: avatar,
		Role:   constants.RoleGuest,
		Status: constants.UserStatusActive,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi tạo người dùng", err)
	}
	return user, nil
}

// VerifyGoogleIDToken xác minh ID token từ Google
func VerifyGoogleIDToken(token string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(context.Background(), token, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token Google không hợp lệ", err)
	}
	return payload, nil
}
