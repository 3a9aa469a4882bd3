package http

import (
	"github.com/gin-gonic/gin"

	"dashboard-service/ddd/application/app"
	"dashboard-service/ddd/application/dto"
	"dashboard-service/pkg/errno"
	"dashboard-service/pkg/restapi"
)

// UpscaleController 放大流水线指令接口
type UpscaleController struct {
	dashboardApp app.DashboardApp
}

// NewUpscaleController 创建放大控制器
func NewUpscaleController(dashboardApp app.DashboardApp) *UpscaleController {
	return &UpscaleController{
		dashboardApp: dashboardApp,
	}
}

// RetryTask 重试出错的放大任务
func (c *UpscaleController) RetryTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "task_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrTaskIDRequired)
		return
	}

	task, err := c.dashboardApp.RetryUpscaleTask(ctx.Request.Context(), id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, task)
}

// DeleteTask 删除放大任务（需要confirm=true）
func (c *UpscaleController) DeleteTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "task_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrTaskIDRequired)
		return
	}

	if err := c.dashboardApp.DeleteUpscaleTask(ctx.Request.Context(), id, confirmed(ctx)); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// ClearTasks 清空全部放大任务（需要confirm=true）
func (c *UpscaleController) ClearTasks(ctx *gin.Context) {
	if err := c.dashboardApp.ClearUpscaleTasks(ctx.Request.Context(), confirmed(ctx)); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// TriggerScan 触发入站目录重扫
func (c *UpscaleController) TriggerScan(ctx *gin.Context) {
	if err := c.dashboardApp.TriggerUpscaleScan(ctx.Request.Context()); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// EnsureInstance 请求启动远端实例
func (c *UpscaleController) EnsureInstance(ctx *gin.Context) {
	result, err := c.dashboardApp.EnsureInstance(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, result)
}

// GetSettings 读取放大配置
func (c *UpscaleController) GetSettings(ctx *gin.Context) {
	settings, err := c.dashboardApp.GetUpscaleSettings(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, settings)
}

// SaveSettings 保存放大配置
func (c *UpscaleController) SaveSettings(ctx *gin.Context) {
	var req dto.UpscaleSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrSettingsInvalid)
		return
	}

	if err := c.dashboardApp.SaveUpscaleSettings(ctx.Request.Context(), &req); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}
