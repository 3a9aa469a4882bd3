package dto

import (
	"dashboard-service/ddd/application/state"
	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/vo"
	"time"
)

// CreateTaskRequest 创建剪辑任务
type CreateTaskRequest struct {
	URL  string `json:"url" binding:"required"`
	Mode string `json:"mode"`
	// simple模式下的剪切区间，秒数或HH:MM:SS文本
	Start string `json:"start"`
	End   string `json:"end"`
}

// ViewRequest 渲染层上报的视图变更
type ViewRequest struct {
	ActiveTab      string `json:"active_tab" binding:"required"`
	SearchTerm     string `json:"search_term"`
	StatusFilter   string `json:"status_filter"`
	ChannelFilter  string `json:"channel_filter"`
	SelectedTaskID int64  `json:"selected_task_id"`
}

// UpdateClipRequest 片段修补，缺省字段不改动
type UpdateClipRequest struct {
	Status  *string `json:"status"`
	Channel *string `json:"channel"`
}

// UpscaleSettingsRequest 放大配置保存
type UpscaleSettingsRequest struct {
	Image          string `json:"UPSCALE_IMAGE" binding:"required"`
	Concurrency    int    `json:"UPSCALE_CONCURRENCY" binding:"required"`
	VastInstanceID string `json:"VAST_INSTANCE_ID"`
}

// TaskAssets 任务相关文件的公共链接（仅文件名拼固定前缀）
type TaskAssets struct {
	Downloaded string `json:"downloaded,omitempty"`
	Processed  string `json:"processed,omitempty"`
	ClipsDir   string `json:"clips_dir,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	ClipsJSON  string `json:"clips_json,omitempty"`
}

// TaskView 任务镜像加展示派生字段
type TaskView struct {
	entity.Task
	StageView vo.Presentation `json:"stage_view"`
	Assets    TaskAssets      `json:"assets"`
}

// UpscaleTaskView 放大任务镜像加展示派生字段
type UpscaleTaskView struct {
	entity.UpscaleTask
	FileName    string          `json:"file_name"`
	ResultAsset string          `json:"result_asset,omitempty"`
	StageView   vo.Presentation `json:"stage_view"`
}

// ClipView 片段镜像加公共链接
type ClipView struct {
	entity.Clip
	FileAsset string `json:"file_asset,omitempty"`
}

// InstanceView 远端实例状态与指示色
type InstanceView struct {
	State string `json:"state"`
	Color string `json:"color"`
}

// StateResponse 渲染层一次性读取的全量视图
type StateResponse struct {
	Tasks        []TaskView             `json:"tasks"`
	Downloads    []entity.DownloadedItem `json:"downloads"`
	UpscaleTasks []UpscaleTaskView      `json:"upscale_tasks"`
	Clips        []ClipView             `json:"clips"`
	Instance     InstanceView           `json:"instance"`
	Counts       vo.PipelineCounts      `json:"counts"`
	View         state.ViewState        `json:"view"`
	UpdatedAt    map[string]time.Time   `json:"updated_at"`
}

// NewStateResponse 从Store快照组装渲染层视图
func NewStateResponse(snap state.Snapshot) *StateResponse {
	resp := &StateResponse{
		Tasks:        make([]TaskView, 0, len(snap.Tasks)),
		Downloads:    snap.Downloads,
		UpscaleTasks: make([]UpscaleTaskView, 0, len(snap.UpscaleTasks)),
		Clips:        make([]ClipView, 0, len(snap.Clips)),
		Instance: InstanceView{
			State: string(snap.InstanceState),
			Color: vo.InstanceStateColor(string(snap.InstanceState)),
		},
		Counts:    snap.Counts,
		View:      snap.View,
		UpdatedAt: snap.UpdatedAt,
	}

	for i := range snap.Tasks {
		t := snap.Tasks[i]
		resp.Tasks = append(resp.Tasks, TaskView{
			Task:      t,
			StageView: vo.Present(t.Stage),
			Assets: TaskAssets{
				Downloaded: t.DownloadedAsset(),
				Processed:  t.ProcessedAsset(),
				ClipsDir:   t.ClipsDirAsset(),
				Transcript: t.TranscriptAsset(),
				ClipsJSON:  t.ClipsJSONAsset(),
			},
		})
	}

	for i := range snap.UpscaleTasks {
		u := snap.UpscaleTasks[i]
		resp.UpscaleTasks = append(resp.UpscaleTasks, UpscaleTaskView{
			UpscaleTask: u,
			FileName:    u.FileName(),
			ResultAsset: u.ResultAsset(),
			StageView:   vo.Present(u.Stage),
		})
	}

	for i := range snap.Clips {
		c := snap.Clips[i]
		resp.Clips = append(resp.Clips, ClipView{
			Clip:      c,
			FileAsset: c.FileAsset(),
		})
	}

	return resp
}
