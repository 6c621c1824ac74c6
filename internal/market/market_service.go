package market

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/gin-gonic/gin"
	"github.com/gridmarket/go-compute-market/models"
	"github.com/gridmarket/go-compute-market/util"
)

var marketController *Controller

// InitMarketService wires the handlers to a controller. Must run before the
// router is mounted.
func InitMarketService(controller *Controller) {
	marketController = controller
}

func GetHostInfo(c *gin.Context) {
	info := new(models.HostInfo)
	info.OperatingSystem = runtime.GOOS
	info.Architecture = runtime.GOARCH
	info.CPUCores = runtime.NumCPU()
	c.JSON(http.StatusOK, util.CreateSuccessResponse(info))
}

func RegisterResource(c *gin.Context) {
	var req models.RegisterResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.ValidationErrorCode, err.Error()))
		return
	}

	resource, err := marketController.RegisterResource(&req)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.CreateSuccessResponse(resource))
}

func ListResources(c *gin.Context) {
	providerId := c.Query("provider_id")
	resourceType := c.Query("type")

	resources, err := marketController.ListResources(providerId, resourceType)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(resources))
}

func GetResource(c *gin.Context) {
	resource, err := marketController.GetResource(c.Param("resource_id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(resource))
}

func UpdateResource(c *gin.Context) {
	var req models.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.ValidationErrorCode, err.Error()))
		return
	}

	resource, err := marketController.UpdateResource(&req)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(resource))
}

func DeleteResource(c *gin.Context) {
	id := c.Param("resource_id")
	providerId := c.Query("provider_id")

	if err := marketController.RemoveResource(id, providerId); err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(gin.H{"removed": id}))
}

func SubmitTask(c *gin.Context) {
	var req models.SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.ValidationErrorCode, err.Error()))
		return
	}

	task, err := marketController.SubmitTask(&req)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.CreateSuccessResponse(task))
}

func ListTasks(c *gin.Context) {
	filter := TaskFilter{
		ProviderId: c.Query("provider_id"),
		ConsumerId: c.Query("consumer_id"),
		Status:     c.Query("status"),
	}

	tasks, err := marketController.ListTasks(filter)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(tasks))
}

func GetTask(c *gin.Context) {
	task, err := marketController.GetTask(c.Param("task_id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(task))
}

func StartTask(c *gin.Context) {
	task, err := marketController.StartTask(c.Param("task_id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(task))
}

func CompleteTask(c *gin.Context) {
	var req models.CompleteTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.ValidationErrorCode, err.Error()))
			return
		}
	}

	task, tx, err := marketController.CompleteTask(c.Request.Context(), c.Param("task_id"), &req)
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(gin.H{
		"task":        task,
		"transaction": tx,
	}))
}

func FailTask(c *gin.Context) {
	task, err := marketController.FailTask(c.Param("task_id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(task))
}

func ListTransactions(c *gin.Context) {
	transactions, err := marketController.ListTransactions(c.Query("provider_id"), c.Query("task_id"))
	if err != nil {
		replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(transactions))
}

// TaskEvents upgrades to a websocket and streams task status changes.
func TaskEvents(c *gin.Context) {
	conn, err := upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logs.GetLogger().Errorf("websocket upgrade failed, error: %+v", err)
		return
	}

	hub := marketController.Events()
	events := hub.Subscribe()
	client := NewWsClient(conn)
	client.HandleTaskEvents(events)

	<-client.Done()
	hub.Unsubscribe(events)
}

func replyError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var capacityErr *CapacityError
	var transferErr *TransferError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.ValidationErrorCode, err.Error()))
	case errors.As(err, &capacityErr):
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.CapacityErrorCode, err.Error()))
	case errors.As(err, &transferErr):
		c.JSON(http.StatusBadGateway, util.CreateErrorResponse(util.TransferErrorCode, err.Error()))
	case errors.Is(err, ErrResourceNotFound), errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, util.CreateErrorResponse(util.NotFoundErrorCode, err.Error()))
	case errors.Is(err, ErrAlreadySettled), errors.Is(err, ErrTaskTerminal),
		errors.Is(err, ErrTaskNotRunning), errors.Is(err, ErrResourceInUse):
		c.JSON(http.StatusConflict, util.CreateErrorResponse(util.ConflictErrorCode, err.Error()))
	default:
		logs.GetLogger().Errorf("unexpected error: %+v", err)
		c.JSON(http.StatusInternalServerError, util.CreateErrorResponse(util.JsonError, err.Error()))
	}
}
