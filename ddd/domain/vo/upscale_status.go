package vo

import "strings"

// UpscaleStatus 放大任务状态，词汇表独立于剪辑流水线
type UpscaleStatus string

const (
	// UpscaleStatusQueued 等待调度
	UpscaleStatusQueued UpscaleStatus = "queued"
	// UpscaleStatusProcessing 远端处理中
	UpscaleStatusProcessing UpscaleStatus = "processing"
	// UpscaleStatusDone 已完成
	UpscaleStatusDone UpscaleStatus = "done"
	// UpscaleStatusError 出错（retry回到queued）
	UpscaleStatusError UpscaleStatus = "error"
	// UpscaleStatusUnknown 未识别状态
	UpscaleStatusUnknown UpscaleStatus = "unknown"
)

// ParseUpscaleStatus 大小写不敏感地归一化状态串
func ParseUpscaleStatus(raw string) UpscaleStatus {
	switch UpscaleStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case UpscaleStatusQueued:
		return UpscaleStatusQueued
	case UpscaleStatusProcessing:
		return UpscaleStatusProcessing
	case UpscaleStatusDone:
		return UpscaleStatusDone
	case UpscaleStatusError:
		return UpscaleStatusError
	default:
		return UpscaleStatusUnknown
	}
}

// String 返回状态字符串
func (s UpscaleStatus) String() string {
	return string(s)
}

// IsQueued 是否计入排队统计
func (s UpscaleStatus) IsQueued() bool {
	return s == UpscaleStatusQueued
}

// IsProcessing 是否计入处理中统计
func (s UpscaleStatus) IsProcessing() bool {
	return s == UpscaleStatusProcessing
}
