package app

import (
	"context"
	"fmt"
	"strings"

	"dashboard-service/ddd/application/dto"
	"dashboard-service/ddd/application/state"
	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/gateway"
	"dashboard-service/pkg/errno"
	"dashboard-service/pkg/logger"
)

// Resyncer 指令执行后强制触发相关资源的立即重拉
type Resyncer interface {
	Refresh(keys ...string)
}

// DashboardApp 看板应用服务：所有用户指令的入口。
// 每条指令是一次请求/响应交互，之后无条件重拉受影响资源——
// 成功后刷新以展示新状态，失败后刷新以确认没有静默变更。
// 本地Store从不提前写入（乐观写会被迟到的旧轮询覆盖）。
type DashboardApp interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*entity.Task, error)
	RetryTask(ctx context.Context, id int64) (*entity.Task, error)
	DeleteTask(ctx context.Context, id int64, confirmed bool) error
	ClearTasks(ctx context.Context, confirmed bool) error

	TaskClips(ctx context.Context, taskID int64) ([]entity.Clip, error)
	Clip(ctx context.Context, id int64) (*entity.Clip, error)
	UpdateClip(ctx context.Context, id int64, req *dto.UpdateClipRequest) (*entity.Clip, error)

	DeleteDownload(ctx context.Context, id int64, confirmed bool) error

	RetryUpscaleTask(ctx context.Context, id int64) (*entity.UpscaleTask, error)
	DeleteUpscaleTask(ctx context.Context, id int64, confirmed bool) error
	ClearUpscaleTasks(ctx context.Context, confirmed bool) error
	TriggerUpscaleScan(ctx context.Context) error
	EnsureInstance(ctx context.Context) (*gateway.EnsureResult, error)
	GetUpscaleSettings(ctx context.Context) (*gateway.UpscaleSettings, error)
	SaveUpscaleSettings(ctx context.Context, req *dto.UpscaleSettingsRequest) error

	SetView(req *dto.ViewRequest) error
	State() *dto.StateResponse
}

type dashboardAppImpl struct {
	backend gateway.BackendGateway
	store   *state.Store
	resync  Resyncer
}

// NewDashboardApp 创建看板应用服务
func NewDashboardApp(backend gateway.BackendGateway, store *state.Store, resync Resyncer) DashboardApp {
	return &dashboardAppImpl{
		backend: backend,
		store:   store,
		resync:  resync,
	}
}

// CreateTask 创建剪辑任务。非simple模式忽略start/end，按null传输。
func (a *dashboardAppImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*entity.Task, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, errno.ErrTaskURLRequired
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = "simple"
	}
	switch mode {
	case "simple", "auto", "auto_resize":
	default:
		return nil, errno.ErrInvalidTaskMode
	}

	payload := gateway.CreateTaskPayload{URL: url, Mode: mode}
	if mode == "simple" {
		payload.Start = optionalString(req.Start)
		payload.End = optionalString(req.End)
	}

	defer a.resync.Refresh(state.KeyTasks, state.KeyDownloads)

	task, err := a.backend.CreateTask(ctx, payload)
	if err != nil {
		logger.Errorf("Create task failed url=%s mode=%s error=%v", url, mode, err)
		return nil, fmt.Errorf("create task: %w", err)
	}
	logger.Infof("Task created id=%d mode=%s", task.ID, task.Mode)
	return task, nil
}

// RetryTask 重试出错任务（error → queued_*，队列阶段取决于mode）
func (a *dashboardAppImpl) RetryTask(ctx context.Context, id int64) (*entity.Task, error) {
	defer a.resync.Refresh(state.KeyTasks)

	task, err := a.backend.RetryTask(ctx, id)
	if err != nil {
		logger.Errorf("Retry task failed id=%d error=%v", id, err)
		return nil, fmt.Errorf("retry task %d: %w", id, err)
	}
	return task, nil
}

// DeleteTask 删除任务及其服务器侧文件，片段随任务级联删除
func (a *dashboardAppImpl) DeleteTask(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return errno.ErrConfirmationRequired
	}

	defer a.resync.Refresh(state.KeyTasks, state.KeyClips)

	if err := a.backend.DeleteTask(ctx, id); err != nil {
		logger.Errorf("Delete task failed id=%d error=%v", id, err)
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// ClearTasks 清空全部剪辑任务
func (a *dashboardAppImpl) ClearTasks(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errno.ErrConfirmationRequired
	}

	defer a.resync.Refresh(state.KeyTasks, state.KeyClips)

	if err := a.backend.ClearTasks(ctx); err != nil {
		logger.Errorf("Clear tasks failed error=%v", err)
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// TaskClips 按需拉取指定任务的片段（弹窗场景，不进轮询）
func (a *dashboardAppImpl) TaskClips(ctx context.Context, taskID int64) ([]entity.Clip, error) {
	clips, err := a.backend.ListTaskClips(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list clips of task %d: %w", taskID, err)
	}
	return clips, nil
}

// Clip 读取单个片段（渲染层详情弹窗按需拉取）
func (a *dashboardAppImpl) Clip(ctx context.Context, id int64) (*entity.Clip, error) {
	clip, err := a.backend.GetClip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get clip %d: %w", id, err)
	}
	return clip, nil
}

// UpdateClip 修补片段的status/channel
func (a *dashboardAppImpl) UpdateClip(ctx context.Context, id int64, req *dto.UpdateClipRequest) (*entity.Clip, error) {
	if req.Status == nil && req.Channel == nil {
		return nil, errno.ErrParameterInvalid
	}

	defer a.resync.Refresh(state.KeyClips)

	clip, err := a.backend.UpdateClip(ctx, id, gateway.ClipPatch{Status: req.Status, Channel: req.Channel})
	if err != nil {
		logger.Errorf("Update clip failed id=%d error=%v", id, err)
		return nil, fmt.Errorf("update clip %d: %w", id, err)
	}
	return clip, nil
}

// DeleteDownload 删除一条下载去重记录
func (a *dashboardAppImpl) DeleteDownload(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return errno.ErrConfirmationRequired
	}

	defer a.resync.Refresh(state.KeyDownloads)

	if err := a.backend.DeleteDownload(ctx, id); err != nil {
		logger.Errorf("Delete download failed id=%d error=%v", id, err)
		return fmt.Errorf("delete download %d: %w", id, err)
	}
	return nil
}

// RetryUpscaleTask 重试出错的放大任务（error → queued）
func (a *dashboardAppImpl) RetryUpscaleTask(ctx context.Context, id int64) (*entity.UpscaleTask, error) {
	defer a.resync.Refresh(state.KeyUpscaleTasks)

	task, err := a.backend.RetryUpscaleTask(ctx, id)
	if err != nil {
		logger.Errorf("Retry upscale task failed id=%d error=%v", id, err)
		return nil, fmt.Errorf("retry upscale task %d: %w", id, err)
	}
	return task, nil
}

// DeleteUpscaleTask 删除放大任务及其入站文件
func (a *dashboardAppImpl) DeleteUpscaleTask(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return errno.ErrConfirmationRequired
	}

	defer a.resync.Refresh(state.KeyUpscaleTasks)

	if err := a.backend.DeleteUpscaleTask(ctx, id); err != nil {
		logger.Errorf("Delete upscale task failed id=%d error=%v", id, err)
		return fmt.Errorf("delete upscale task %d: %w", id, err)
	}
	return nil
}

// ClearUpscaleTasks 清空全部放大任务
func (a *dashboardAppImpl) ClearUpscaleTasks(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errno.ErrConfirmationRequired
	}

	defer a.resync.Refresh(state.KeyUpscaleTasks)

	if err := a.backend.ClearUpscaleTasks(ctx); err != nil {
		logger.Errorf("Clear upscale tasks failed error=%v", err)
		return fmt.Errorf("clear upscale tasks: %w", err)
	}
	return nil
}

// TriggerUpscaleScan 触发to_upscale目录重扫
func (a *dashboardAppImpl) TriggerUpscaleScan(ctx context.Context) error {
	defer a.resync.Refresh(state.KeyUpscaleTasks)

	if err := a.backend.TriggerUpscaleScan(ctx); err != nil {
		logger.Errorf("Trigger upscale scan failed error=%v", err)
		return fmt.Errorf("trigger upscale scan: %w", err)
	}
	return nil
}

// EnsureInstance 请求启动远端实例
func (a *dashboardAppImpl) EnsureInstance(ctx context.Context) (*gateway.EnsureResult, error) {
	defer a.resync.Refresh(state.KeyInstanceStatus, state.KeyUpscaleTasks)

	result, err := a.backend.EnsureInstance(ctx)
	if err != nil {
		logger.Errorf("Ensure instance failed error=%v", err)
		return nil, fmt.Errorf("ensure instance: %w", err)
	}
	return result, nil
}

// GetUpscaleSettings 读取放大配置（按需，不进轮询）
func (a *dashboardAppImpl) GetUpscaleSettings(ctx context.Context) (*gateway.UpscaleSettings, error) {
	settings, err := a.backend.GetUpscaleSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get upscale settings: %w", err)
	}
	return settings, nil
}

// SaveUpscaleSettings 保存放大配置
func (a *dashboardAppImpl) SaveUpscaleSettings(ctx context.Context, req *dto.UpscaleSettingsRequest) error {
	if strings.TrimSpace(req.Image) == "" || req.Concurrency < 1 || req.Concurrency > 4 {
		return errno.ErrSettingsInvalid
	}

	defer a.resync.Refresh(state.KeyInstanceStatus)

	err := a.backend.SaveUpscaleSettings(ctx, gateway.UpscaleSettings{
		Image:          req.Image,
		Concurrency:    req.Concurrency,
		VastInstanceID: strings.TrimSpace(req.VastInstanceID),
	})
	if err != nil {
		logger.Errorf("Save upscale settings failed error=%v", err)
		return fmt.Errorf("save upscale settings: %w", err)
	}
	return nil
}

// SetView 更新视图状态；clips页签的轮询启用判定由Store读出
func (a *dashboardAppImpl) SetView(req *dto.ViewRequest) error {
	tab := state.Tab(strings.ToLower(strings.TrimSpace(req.ActiveTab)))
	if !state.ValidTab(tab) {
		return errno.ErrUnknownViewTab
	}
	a.store.SetView(state.ViewState{
		ActiveTab:      tab,
		SearchTerm:     req.SearchTerm,
		StatusFilter:   defaultFilter(req.StatusFilter),
		ChannelFilter:  defaultFilter(req.ChannelFilter),
		SelectedTaskID: req.SelectedTaskID,
	})
	// 切到clips页签后不必等下一个tick
	if tab == state.TabClips {
		a.resync.Refresh(state.KeyClips)
	}
	return nil
}

// State 渲染层读取的全量视图
func (a *dashboardAppImpl) State() *dto.StateResponse {
	return dto.NewStateResponse(a.store.Snapshot())
}

func optionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func defaultFilter(v string) string {
	if strings.TrimSpace(v) == "" {
		return "all"
	}
	return v
}
