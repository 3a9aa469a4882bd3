package gateway

import (
	"context"

	"dashboard-service/ddd/domain/entity"
)

// InstanceState 远端GPU实例状态
type InstanceState string

const (
	InstanceRunning InstanceState = "running"
	InstanceStopped InstanceState = "stopped"
	InstanceUnknown InstanceState = "unknown"
)

// CreateTaskPayload 创建剪辑任务的请求体。
// 非simple模式下Start/End必须以null传输，即使表单里填了值。
type CreateTaskPayload struct {
	URL   string  `json:"url"`
	Mode  string  `json:"mode"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ClipPatch 片段元数据修补（仅status/channel可改）
type ClipPatch struct {
	Status  *string `json:"status,omitempty"`
	Channel *string `json:"channel,omitempty"`
}

// UpscaleSettings 放大流水线配置，键名与后端保持一致
type UpscaleSettings struct {
	Image          string `json:"UPSCALE_IMAGE"`
	Concurrency    int    `json:"UPSCALE_CONCURRENCY"`
	VastInstanceID string `json:"VAST_INSTANCE_ID,omitempty"`
}

// EnsureResult ensure指令的返回（远端实例标识与状态）
type EnsureResult struct {
	ID    string `json:"id,omitempty"`
	State string `json:"state,omitempty"`
}

// BackendGateway 后端REST接口的消费侧抽象。
// 所有实体由后端创建与修改，这里只有读取与指令下发。
type BackendGateway interface {
	// 剪辑流水线
	ListTasks(ctx context.Context) ([]entity.Task, error)
	CreateTask(ctx context.Context, payload CreateTaskPayload) (*entity.Task, error)
	RetryTask(ctx context.Context, id int64) (*entity.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ClearTasks(ctx context.Context) error

	// 片段
	ListTaskClips(ctx context.Context, taskID int64) ([]entity.Clip, error)
	ListClips(ctx context.Context) ([]entity.Clip, error)
	GetClip(ctx context.Context, id int64) (*entity.Clip, error)
	UpdateClip(ctx context.Context, id int64, patch ClipPatch) (*entity.Clip, error)

	// 下载历史
	ListDownloads(ctx context.Context) ([]entity.DownloadedItem, error)
	DeleteDownload(ctx context.Context, id int64) error

	// 放大流水线
	ListUpscaleTasks(ctx context.Context) ([]entity.UpscaleTask, error)
	RetryUpscaleTask(ctx context.Context, id int64) (*entity.UpscaleTask, error)
	DeleteUpscaleTask(ctx context.Context, id int64) error
	ClearUpscaleTasks(ctx context.Context) error
	GetUpscaleSettings(ctx context.Context) (*UpscaleSettings, error)
	SaveUpscaleSettings(ctx context.Context, settings UpscaleSettings) error
	TriggerUpscaleScan(ctx context.Context) error
	EnsureInstance(ctx context.Context) (*EnsureResult, error)
	InstanceStatus(ctx context.Context) (InstanceState, error)
}
