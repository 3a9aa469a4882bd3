package vo

import "strings"

// TaskStatus 剪辑任务状态（后端定义，看板只读镜像）
type TaskStatus string

const (
	// TaskStatusQueuedDownload 等待下载
	TaskStatusQueuedDownload TaskStatus = "queued_download"
	// TaskStatusDownloading 下载中
	TaskStatusDownloading TaskStatus = "downloading"
	// TaskStatusQueuedProcess 等待处理
	TaskStatusQueuedProcess TaskStatus = "queued_process"
	// TaskStatusProcessing 处理中
	TaskStatusProcessing TaskStatus = "processing"
	// TaskStatusDone 已完成
	TaskStatusDone TaskStatus = "done"
	// TaskStatusError 出错（可通过retry回到队列）
	TaskStatusError TaskStatus = "error"
	// TaskStatusCanceled 已取消
	TaskStatusCanceled TaskStatus = "canceled"
	// TaskStatusUnknown 后端新增的未识别状态，看板降级展示而不报错
	TaskStatusUnknown TaskStatus = "unknown"
)

// ParseTaskStatus 大小写不敏感地归一化状态串，未识别值归入unknown
func ParseTaskStatus(raw string) TaskStatus {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case TaskStatusQueuedDownload:
		return TaskStatusQueuedDownload
	case TaskStatusDownloading:
		return TaskStatusDownloading
	case TaskStatusQueuedProcess:
		return TaskStatusQueuedProcess
	case TaskStatusProcessing:
		return TaskStatusProcessing
	case TaskStatusDone:
		return TaskStatusDone
	case TaskStatusError:
		return TaskStatusError
	case TaskStatusCanceled:
		return TaskStatusCanceled
	default:
		return TaskStatusUnknown
	}
}

// String 返回状态字符串
func (s TaskStatus) String() string {
	return string(s)
}

// IsQueued 是否计入排队统计
func (s TaskStatus) IsQueued() bool {
	return s == TaskStatusQueuedDownload || s == TaskStatusQueuedProcess
}

// IsProcessing 是否计入处理中统计
func (s TaskStatus) IsProcessing() bool {
	return s == TaskStatusProcessing
}

// IsTerminal done为终态；error在发出retry前也是终态
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusError || s == TaskStatusCanceled
}
