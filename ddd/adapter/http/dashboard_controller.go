package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dashboard-service/ddd/application/app"
	"dashboard-service/ddd/application/dto"
	"dashboard-service/pkg/errno"
	"dashboard-service/pkg/restapi"
)

// DashboardController 剪辑流水线、下载历史、片段与视图状态的接口
type DashboardController struct {
	dashboardApp app.DashboardApp
}

// NewDashboardController 创建看板控制器
func NewDashboardController(dashboardApp app.DashboardApp) *DashboardController {
	return &DashboardController{
		dashboardApp: dashboardApp,
	}
}

// GetState 渲染层读取的全量一致视图
func (c *DashboardController) GetState(ctx *gin.Context) {
	restapi.Success(ctx, c.dashboardApp.State())
}

// SetView 渲染层上报页签/筛选/选中项变更
func (c *DashboardController) SetView(ctx *gin.Context) {
	var req dto.ViewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrParameterInvalid)
		return
	}

	if err := c.dashboardApp.SetView(&req); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// CreateTask 创建剪辑任务
func (c *DashboardController) CreateTask(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrTaskURLRequired)
		return
	}

	task, err := c.dashboardApp.CreateTask(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, task)
}

// RetryTask 重试出错任务
func (c *DashboardController) RetryTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "task_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrTaskIDRequired)
		return
	}

	task, err := c.dashboardApp.RetryTask(ctx.Request.Context(), id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, task)
}

// DeleteTask 删除任务（需要confirm=true）
func (c *DashboardController) DeleteTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "task_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrTaskIDRequired)
		return
	}

	if err := c.dashboardApp.DeleteTask(ctx.Request.Context(), id, confirmed(ctx)); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// ClearTasks 清空全部任务（需要confirm=true）
func (c *DashboardController) ClearTasks(ctx *gin.Context) {
	if err := c.dashboardApp.ClearTasks(ctx.Request.Context(), confirmed(ctx)); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// GetTaskClips 拉取指定任务的片段（弹窗按需）
func (c *DashboardController) GetTaskClips(ctx *gin.Context) {
	id, ok := pathID(ctx, "task_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrTaskIDRequired)
		return
	}

	clips, err := c.dashboardApp.TaskClips(ctx.Request.Context(), id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, clips)
}

// GetClip 读取单个片段
func (c *DashboardController) GetClip(ctx *gin.Context) {
	id, ok := pathID(ctx, "clip_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrClipIDRequired)
		return
	}

	clip, err := c.dashboardApp.Clip(ctx.Request.Context(), id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, clip)
}

// UpdateClip 修补片段status/channel
func (c *DashboardController) UpdateClip(ctx *gin.Context) {
	id, ok := pathID(ctx, "clip_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrClipIDRequired)
		return
	}

	var req dto.UpdateClipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrParameterInvalid)
		return
	}

	clip, err := c.dashboardApp.UpdateClip(ctx.Request.Context(), id, &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, clip)
}

// DeleteDownload 删除下载记录（需要confirm=true）
func (c *DashboardController) DeleteDownload(ctx *gin.Context) {
	id, ok := pathID(ctx, "download_id")
	if !ok {
		restapi.Failed(ctx, errno.ErrDownloadIDRequired)
		return
	}

	if err := c.dashboardApp.DeleteDownload(ctx.Request.Context(), id, confirmed(ctx)); err != nil {
		restapi.Failed(ctx, err)
		return
	}

	restapi.Success(ctx, nil)
}

// confirmed 破坏性指令必须显式带confirm=true才会下发
func confirmed(ctx *gin.Context) bool {
	v, _ := strconv.ParseBool(ctx.Query("confirm"))
	return v
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
