package controllers

import (
	"strconv"

	"stay/response"
	"stay/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	service *services.StatsService
}

func NewStatsController(service *services.StatsService) *StatsController {
	return &StatsController{service: service}
}

// Monthly số booking đã duyệt theo 12 tháng gần nhất
func (sc *StatsController) Monthly(c *gin.Context) {
	stats, err := sc.service.MonthlyBookingCounts()
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, stats)
}

// Revenue doanh thu theo tháng cộng tổng và trung bình
func (sc *StatsController) Revenue(c *gin.Context) {
	stats, err := sc.service.RevenueStats()
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, stats)
}

// Status số booking theo từng trạng thái
func (sc *StatsController) Status(c *gin.Context) {
	counts, err := sc.service.StatusCounts()
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, counts)
}

// Occupancy tỉ lệ lấp đầy
func (sc *StatsController) Occupancy(c *gin.Context) {
	stats, err := sc.service.OccupancyRate()
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, stats)
}

// CleaningGaps khoảng trống dọn dẹp giữa các booking của một chỗ nghỉ
func (sc *StatsController) CleaningGaps(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("propertyId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "propertyId không hợp lệ")
		return
	}

	gaps, err := sc.service.CleaningGaps(uint(propertyID))
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gaps)
}
