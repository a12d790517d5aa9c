package controllers

import (
	"stay/config"
	"stay/dto"
	"stay/errors"
	"stay/models"
	"stay/response"
	"stay/services"
	"stay/validator"

	"github.com/gin-gonic/gin"
)

const tokenExpiryMinutes = 60 * 24

func convertToLoginResponse(user models.User, token string) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Avatar:      user.Avatar,
		AccessToken: token,
	}
}

// Register đăng ký tài khoản mới
func Register(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	input := models.User{
		Name:        request.Name,
		Email:       request.Email,
		Password:    request.Password,
		PhoneNumber: request.PhoneNumber,
	}
	if err := validator.ValidateUser(&input); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	user, err := services.CreateUser(input)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeUserExists {
			response.Conflict(c, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToLoginResponse(user, token))
}

// Login đăng nhập bằng email và mật khẩu
func Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if err := services.CheckPassword(user.Password, request.Password); err != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToLoginResponse(user, token))
}

// AuthGoogle đăng nhập bằng Google ID token, tự tạo tài khoản nếu chưa có
func AuthGoogle(c *gin.Context) {
	var request struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Thiếu token")
		return
	}

	payload, err := services.VerifyGoogleIDToken(request.Token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	googleUser := dto.GoogleUser{}
	if name, ok := payload.Claims["name"].(string); ok {
		googleUser.Name = name
	}
	if email, ok := payload.Claims["email"].(string); ok {
		googleUser.Email = email
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		googleUser.Picture = picture
	}

	user, err := services.GetUserByEmail(googleUser.Email)
	if err != nil {
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			response.ServerError(c)
			return
		}
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToLoginResponse(user, token))
}

// Profile trả về thông tin người dùng hiện tại
func Profile(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var user models.User
	if err := config.DB.Where("id = ?", currentUserID).First(&user).Error; err != nil {
		response.NotFound(c)
		return
	}

	user.Password = ""
	response.Success(c, user)
}
