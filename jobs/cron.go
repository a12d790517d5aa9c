package jobs

import (
	"log"
	"time"

	"stay/config"
	"stay/services"

	"github.com/robfig/cron/v3"
)

// BookingSweeper định nghĩa interface cho việc dọn các booking chờ duyệt đã quá hạn
type BookingSweeper interface {
	DeclineExpiredPending() (int64, error)
}

var bookingSweeper BookingSweeper

// SetBookingSweeper thiết lập implementation cho BookingSweeper
func SetBookingSweeper(sweeper BookingSweeper) {
	bookingSweeper = sweeper
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang dọn các booking chờ duyệt đã quá hạn lúc: %v", now)
		if bookingSweeper == nil {
			log.Printf("Lỗi: BookingSweeper chưa được thiết lập")
			return
		}
		declined, err := bookingSweeper.DeclineExpiredPending()
		if err != nil {
			log.Printf("Lỗi khi dọn booking quá hạn: %v", err)
			return
		}
		if declined > 0 {
			log.Printf("Đã từ chối %d booking quá hạn", declined)
			if err := services.DeleteKeysByPattern(config.Ctx, config.RedisClient, "bookings:*"); err != nil {
				log.Printf("Lỗi khi xóa cache booking: %v", err)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
