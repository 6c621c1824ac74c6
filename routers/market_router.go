package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/gridmarket/go-compute-market/internal/market"
)

func MarketManager(router *gin.RouterGroup) {

	router.GET("/host/info", market.GetHostInfo)
	router.POST("/resources", market.RegisterResource)
	router.GET("/resources", market.ListResources)
	router.GET("/resources/:resource_id", market.GetResource)
	router.PUT("/resources", market.UpdateResource)
	router.DELETE("/resources/:resource_id", market.DeleteResource)
	router.POST("/tasks", market.SubmitTask)
	router.GET("/tasks", market.ListTasks)
	router.GET("/tasks/:task_id", market.GetTask)
	router.POST("/tasks/:task_id/start", market.StartTask)
	router.POST("/tasks/:task_id/complete", market.CompleteTask)
	router.POST("/tasks/:task_id/fail", market.FailTask)
	router.GET("/task/events", market.TaskEvents)
	router.GET("/payments", market.ListTransactions)
}
