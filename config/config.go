package config

import (
	"log"
	"os"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

var Cloudinary *cloudinary.Cloudinary

// Settings chứa cấu hình của booking engine, truyền vào service khi khởi tạo
type Settings struct {
	BookingLimit int // Số booking đang giữ chỗ tối đa của một khách
}

const defaultBookingLimit = 2

// LoadSettings đọc cấu hình engine từ biến môi trường
func LoadSettings() Settings {
	limit := defaultBookingLimit
	if v := os.Getenv("BOOKING_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Printf("Warning: BOOKING_LIMIT không hợp lệ (%q), dùng mặc định %d", v, defaultBookingLimit)
		} else {
			limit = parsed
		}
	}
	return Settings{BookingLimit: limit}
}

func ConnectCloudinary() {
	var err error
	Cloudinary, err = cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Lỗi khi khởi tạo Cloudinary: %v", err)
	}
}

func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	return nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}
