package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"stay/config"
	"stay/dto"
	"stay/models"
	"stay/response"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

func convertToPropertyResponse(property models.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:             property.ID,
		OwnerID:        property.OwnerID,
		Name:           property.Name,
		Description:    property.Description,
		Price:          property.Price,
		CurrencySymbol: property.CurrencySymbol,
		Address:        property.Address,
		Avatar:         property.Avatar,
		Images:         property.Images,
	}
}

// GetAllProperties danh sách chỗ nghỉ công khai
func GetAllProperties(c *gin.Context) {
	var properties []models.Property
	if err := config.DB.Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}

	propertyResponses := make([]dto.PropertyResponse, 0, len(properties))
	for _, property := range properties {
		propertyResponses = append(propertyResponses, convertToPropertyResponse(property))
	}
	response.Success(c, propertyResponses)
}

// GetPropertyDetail chi tiết một chỗ nghỉ
func GetPropertyDetail(c *gin.Context) {
	propertyID := c.Param("id")

	var property models.Property
	if err := config.DB.Where("id = ?", propertyID).First(&property).Error; err != nil {
		response.NotFound(c)
		return
	}
	response.Success(c, convertToPropertyResponse(property))
}

// CreateProperty chủ nhà tạo chỗ nghỉ mới
func CreateProperty(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var request dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	property := models.Property{
		OwnerID:        currentUserID,
		Name:           request.Name,
		Description:    request.Description,
		Price:          request.Price,
		CurrencySymbol: request.CurrencySymbol,
		Address:        request.Address,
	}

	if err := config.DB.Create(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToPropertyResponse(property))
}

// UpdateProperty chủ nhà cập nhật chỗ nghỉ của mình
func UpdateProperty(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var request dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var property models.Property
	if err := config.DB.Where("id = ? AND owner_id = ?", request.ID, currentUserID).First(&property).Error; err != nil {
		response.NotFound(c)
		return
	}

	if request.Name != "" {
		property.Name = request.Name
	}
	if request.Description != "" {
		property.Description = request.Description
	}
	if request.Price > 0 {
		property.Price = request.Price
	}
	if request.CurrencySymbol != "" {
		property.CurrencySymbol = request.CurrencySymbol
	}
	if request.Address != "" {
		property.Address = request.Address
	}

	if err := config.DB.Save(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToPropertyResponse(property))
}

// UploadPropertyImage upload ảnh chỗ nghỉ lên Cloudinary
func UploadPropertyImage(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	propertyID, err := strconv.ParseUint(c.PostForm("propertyId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "propertyId không hợp lệ")
		return
	}

	var property models.Property
	if err := config.DB.Where("id = ? AND owner_id = ?", propertyID, currentUserID).First(&property).Error; err != nil {
		response.NotFound(c)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Thiếu file ảnh")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ServerError(c)
		return
	}
	defer src.Close()

	ctx := context.Background()
	resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "properties"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
		return
	}

	if property.Avatar == "" {
		property.Avatar = resp.SecureURL
	}
	property.Images = append(property.Images, resp.SecureURL)

	if err := config.DB.Save(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"url": resp.SecureURL})
}

// Chuẩn hóa input tìm kiếm: bỏ dấu, lowercase
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(distance)/maxLen
}

type scoredProperty struct {
	property models.Property
	score    float64
}

// SearchProperties tìm chỗ nghỉ theo tên / địa chỉ, chịu được lỗi gõ và thiếu dấu
func SearchProperties(c *gin.Context) {
	query := normalizeInput(c.Query("name"))
	if query == "" {
		response.BadRequest(c, "Thiếu từ khóa tìm kiếm")
		return
	}

	var properties []models.Property
	if err := config.DB.Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}

	names := make([]string, 0, len(properties))
	for _, property := range properties {
		names = append(names, normalizeInput(property.Name))
	}
	matcher := createMatcher(names)
	closest := matcher.Closest(query)

	scored := make([]scoredProperty, 0, len(properties))
	for _, property := range properties {
		name := normalizeInput(property.Name)
		address := normalizeInput(property.Address)

		score := calculateSimilarity(query, name)
		if addressScore := calculateSimilarity(query, address); addressScore > score {
			score = addressScore
		}
		if strings.Contains(name, query) || strings.Contains(address, query) {
			score += 0.5
		}
		if name == closest {
			score += 0.3
		}

		if score > 0.4 {
			scored = append(scored, scoredProperty{property: property, score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	propertyResponses := make([]dto.PropertyResponse, 0, len(scored))
	for _, item := range scored {
		propertyResponses = append(propertyResponses, convertToPropertyResponse(item.property))
	}
	response.Success(c, propertyResponses)
}
