package dto

// CreatePropertyRequest là DTO cho request tạo chỗ nghỉ
type CreatePropertyRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	CurrencySymbol string  `json:"currencySymbol" binding:"required,min=1,max=3"`
	Address        string  `json:"address" binding:"required"`
}

// UpdatePropertyRequest là DTO cho request cập nhật chỗ nghỉ
type UpdatePropertyRequest struct {
	ID             uint    `json:"id" binding:"required"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	CurrencySymbol string  `json:"currencySymbol"`
	Address        string  `json:"address"`
}

// PropertyResponse là DTO cho response chỗ nghỉ
type PropertyResponse struct {
	ID             uint     `json:"id"`
	OwnerID        uint     `json:"ownerId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	CurrencySymbol string   `json:"currencySymbol"`
	Address        string   `json:"address"`
	Avatar         string   `json:"avatar"`
	Images         []string `json:"images"`
}
