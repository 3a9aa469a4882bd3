package entity

import "strings"

// 公共静态目录前缀，渲染层只拿文件名，不拿服务器完整路径
const (
	VideosPublicPrefix        = "/videos/"
	ClipsPublicPrefix         = "/clips/"
	ClipsUpscaledPublicPrefix = "/clips_upscaled/"
)

// Task 剪辑流水线任务，由后端创建与推进，看板仅作镜像
type Task struct {
	ID               int64    `json:"id"`
	URL              string   `json:"url"`
	Mode             string   `json:"mode"`
	Status           string   `json:"status"`
	Stage            string   `json:"stage,omitempty"`
	Progress         int      `json:"progress"`
	VideoID          string   `json:"video_id,omitempty"`
	OriginalFilename string   `json:"original_filename,omitempty"`
	DownloadedPath   string   `json:"downloaded_path,omitempty"`
	ProcessedPath    string   `json:"processed_path,omitempty"`
	ClipsDir         string   `json:"clips_dir,omitempty"`
	TranscriptPath   string   `json:"transcript_path,omitempty"`
	ClipsJSONPath    string   `json:"clips_json_path,omitempty"`
	Error            string   `json:"error,omitempty"`
	StartTime        *float64 `json:"start_time,omitempty"`
	EndTime          *float64 `json:"end_time,omitempty"`
}

// IsAutoMode auto 与 auto_resize 共享 auto 语义
func (t *Task) IsAutoMode() bool {
	return strings.HasPrefix(strings.ToLower(t.Mode), "auto")
}

// DownloadedAsset 已下载源文件的公共链接
func (t *Task) DownloadedAsset() string {
	return PublicAsset(VideosPublicPrefix, t.DownloadedPath)
}

// ProcessedAsset 剪辑结果文件的公共链接（simple 模式）
func (t *Task) ProcessedAsset() string {
	return PublicAsset(VideosPublicPrefix, t.ProcessedPath)
}

// ClipsDirAsset 自动模式下的片段目录公共链接
func (t *Task) ClipsDirAsset() string {
	return PublicAsset(ClipsPublicPrefix, t.ClipsDir)
}

// TranscriptAsset 转写文本的公共链接
func (t *Task) TranscriptAsset() string {
	return PublicAsset(ClipsPublicPrefix, t.TranscriptPath)
}

// ClipsJSONAsset clips.json 的公共链接
func (t *Task) ClipsJSONAsset() string {
	return PublicAsset(ClipsPublicPrefix, t.ClipsJSONPath)
}

// PublicAsset 取服务器路径的最后一段拼到公共前缀上；看板绝不拼装服务器完整路径。
func PublicAsset(prefix, serverPath string) string {
	if strings.TrimSpace(serverPath) == "" {
		return ""
	}
	trimmed := strings.TrimRight(serverPath, "/")
	idx := strings.LastIndex(trimmed, "/")
	name := trimmed
	if idx >= 0 {
		name = trimmed[idx+1:]
	}
	if name == "" {
		return ""
	}
	return prefix + name
}
