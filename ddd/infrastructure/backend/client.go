package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/gateway"
	"dashboard-service/pkg/config"
	"dashboard-service/pkg/errno"
)

// 读取错误响应体的上限，避免把整页HTML塞进日志
const errBodyLimit = 512

// Client 后端REST接口的HTTP实现。
// http.Client超时是指令级兜底；轮询请求由调用方用更短的context限定。
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 根据配置构建后端客户端
func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, errno.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return fmt.Errorf("%s %s: %w: status=%d body=%s",
			method, path, errno.ErrBackendRejected, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// ListTasks 拉取剪辑任务全量快照
func (c *Client) ListTasks(ctx context.Context) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask 创建剪辑任务
func (c *Client) CreateTask(ctx context.Context, payload gateway.CreateTaskPayload) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// RetryTask 重试出错任务
func (c *Client) RetryTask(ctx context.Context, id int64) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/retry", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask 删除单个任务及其服务器侧文件
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// ClearTasks 清空全部剪辑任务
func (c *Client) ClearTasks(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks", nil, nil)
}

// ListTaskClips 拉取指定任务的片段
func (c *Client) ListTaskClips(ctx context.Context, taskID int64) ([]entity.Clip, error) {
	var clips []entity.Clip
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d/clips", taskID), nil, &clips); err != nil {
		return nil, err
	}
	return clips, nil
}

// ListClips 拉取片段全量快照
func (c *Client) ListClips(ctx context.Context) ([]entity.Clip, error) {
	var clips []entity.Clip
	if err := c.do(ctx, http.MethodGet, "/api/clips", nil, &clips); err != nil {
		return nil, err
	}
	return clips, nil
}

// GetClip 拉取单个片段
func (c *Client) GetClip(ctx context.Context, id int64) (*entity.Clip, error) {
	var clip entity.Clip
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/clips/%d", id), nil, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// UpdateClip 修补片段的status/channel
func (c *Client) UpdateClip(ctx context.Context, id int64, patch gateway.ClipPatch) (*entity.Clip, error) {
	var clip entity.Clip
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/clips/%d", id), patch, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// ListDownloads 拉取下载历史
func (c *Client) ListDownloads(ctx context.Context) ([]entity.DownloadedItem, error) {
	var items []entity.DownloadedItem
	if err := c.do(ctx, http.MethodGet, "/api/downloads", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteDownload 删除一条下载去重记录
func (c *Client) DeleteDownload(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/downloads/%d", id), nil, nil)
}

// ListUpscaleTasks 拉取放大任务全量快照
func (c *Client) ListUpscaleTasks(ctx context.Context) ([]entity.UpscaleTask, error) {
	var tasks []entity.UpscaleTask
	if err := c.do(ctx, http.MethodGet, "/api/upscale/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RetryUpscaleTask 重试出错的放大任务
func (c *Client) RetryUpscaleTask(ctx context.Context, id int64) (*entity.UpscaleTask, error) {
	var task entity.UpscaleTask
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/upscale/tasks/%d/retry", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteUpscaleTask 删除放大任务及其入站文件
func (c *Client) DeleteUpscaleTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/upscale/tasks/%d", id), nil, nil)
}

// ClearUpscaleTasks 清空全部放大任务
func (c *Client) ClearUpscaleTasks(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/upscale/tasks", nil, nil)
}

// GetUpscaleSettings 读取放大配置
func (c *Client) GetUpscaleSettings(ctx context.Context) (*gateway.UpscaleSettings, error) {
	var settings gateway.UpscaleSettings
	if err := c.do(ctx, http.MethodGet, "/api/upscale/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveUpscaleSettings 保存放大配置
func (c *Client) SaveUpscaleSettings(ctx context.Context, settings gateway.UpscaleSettings) error {
	return c.do(ctx, http.MethodPut, "/api/upscale/settings", settings, nil)
}

// TriggerUpscaleScan 触发入站目录重扫
func (c *Client) TriggerUpscaleScan(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/upscale/scan", nil, nil)
}

// EnsureInstance 请求启动远端实例
func (c *Client) EnsureInstance(ctx context.Context) (*gateway.EnsureResult, error) {
	var result gateway.EnsureResult
	if err := c.do(ctx, http.MethodPost, "/api/upscale/ensure", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InstanceStatus 查询远端实例状态
func (c *Client) InstanceStatus(ctx context.Context) (gateway.InstanceState, error) {
	var payload struct {
		State string `json:"state"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/upscale/status", nil, &payload); err != nil {
		return gateway.InstanceUnknown, err
	}
	switch strings.ToLower(strings.TrimSpace(payload.State)) {
	case string(gateway.InstanceRunning):
		return gateway.InstanceRunning, nil
	case string(gateway.InstanceStopped):
		return gateway.InstanceStopped, nil
	default:
		return gateway.InstanceUnknown, nil
	}
}

var _ gateway.BackendGateway = (*Client)(nil)
