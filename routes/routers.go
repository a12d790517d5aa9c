package routes

import (
	"stay/constants"
	"stay/controllers"
	middlewares "stay/middleware"
	"stay/services"
	"stay/services/notification"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody, bookingService *services.BookingService) {

	bookingService.SetNotifier(notification.NewMelodyService(m))
	bookingController := controllers.NewBookingController(bookingService, redisCli)

	statsController := controllers.NewStatsController(services.NewStatsService(db))

	router.Use(middlewares.SessionMiddleware())

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", controllers.Register)
	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.Profile)

	v1.GET("/property", controllers.GetAllProperties)
	v1.GET("/property/:id", controllers.GetPropertyDetail)
	v1.GET("/searchProperty", controllers.SearchProperties)
	v1.POST("/property", middlewares.AuthMiddleware(constants.RoleOwner), controllers.CreateProperty)
	v1.PUT("/propertyUpdate", middlewares.AuthMiddleware(constants.RoleOwner), controllers.UpdateProperty)
	v1.POST("/propertyImage", middlewares.AuthMiddleware(constants.RoleOwner), controllers.UploadPropertyImage)

	v1.POST("/booking", middlewares.AuthMiddleware(constants.RoleGuest), bookingController.Create)
	v1.GET("/booking", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), bookingController.ListAll)
	v1.GET("/booking/:id", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), bookingController.Detail)
	v1.PUT("/bookingStatus", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), bookingController.EditStatus)
	v1.DELETE("/booking/:id", middlewares.AuthMiddleware(constants.RoleOwner), bookingController.Delete)
	v1.DELETE("/bookingCancel/:id", middlewares.AuthMiddleware(constants.RoleGuest), bookingController.Cancel)
	v1.GET("/bookingHistory", middlewares.AuthMiddleware(constants.RoleGuest), bookingController.ListForGuest)
	v1.GET("/bookingActive", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), bookingController.ListActive)
	v1.GET("/checkBooking", bookingController.ListForProperty)

	//thống kê
	v1.GET("/bookingStats/monthly", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), statsController.Monthly)
	v1.GET("/bookingStats/revenue", middlewares.AuthMiddleware(constants.RoleOwner), statsController.Revenue)
	v1.GET("/bookingStats/status", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), statsController.Status)
	v1.GET("/propertyStats/occupancy", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), statsController.Occupancy)
	v1.GET("/cleaningGaps/:propertyId", middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleOwner), statsController.CleaningGaps)

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})
}
