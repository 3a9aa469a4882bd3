package vo

import "strings"

// Stage 流水线细分阶段（两条流水线合用一张展示表）
type Stage string

const (
	StageDownloading       Stage = "downloading"
	StageQueuedProcess     Stage = "queued_process"
	StageTranscribing      Stage = "transcribing"
	StageGPT               Stage = "gpt"
	StageCutting           Stage = "cutting"
	StageDone              Stage = "done"
	StageError             Stage = "error"
	StageEnsuringInstance  Stage = "ensuring_instance"
	StageUploading         Stage = "uploading"
	StageProcessing        Stage = "processing"
	StageDownloadingResult Stage = "downloading_result"
	StageUnknown           Stage = "unknown"
)

// Presentation 阶段的展示标签与颜色
type Presentation struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// 中性占位色，用于空值或后端新增的未识别阶段
const neutralColor = "#64748b"

var stagePresentations = map[Stage]Presentation{
	StageDownloading:       {Label: "Скачивание", Color: "#2563eb"},
	StageQueuedProcess:     {Label: "В очереди", Color: "#475569"},
	StageTranscribing:      {Label: "Транскрипция", Color: "#a855f7"},
	StageGPT:               {Label: "GPT", Color: "#22c55e"},
	StageCutting:           {Label: "Нарезка", Color: "#f59e0b"},
	StageDone:              {Label: "Готово", Color: "#16a34a"},
	StageError:             {Label: "Ошибка", Color: "#dc2626"},
	StageEnsuringInstance:  {Label: "Запуск инстанса", Color: "#38bdf8"},
	StageUploading:         {Label: "Загрузка", Color: "#3b82f6"},
	StageProcessing:        {Label: "Обработка", Color: "#f59e0b"},
	StageDownloadingResult: {Label: "Скачивание", Color: "#10b981"},
}

// ParseStage 大小写不敏感；未识别值归入unknown而不是报错
func ParseStage(raw string) Stage {
	key := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := stagePresentations[key]; ok {
		return key
	}
	return StageUnknown
}

// Present 对任意输入都返回可用的标签与颜色。
// 未识别的阶段原样小写展示，空值展示占位符。
func Present(raw string) Presentation {
	key := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := stagePresentations[Stage(key)]; ok {
		return p
	}
	if key == "" {
		return Presentation{Label: "—", Color: neutralColor}
	}
	return Presentation{Label: key, Color: neutralColor}
}

// InstanceStateColor 远端实例状态指示色
func InstanceStateColor(state string) string {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "running":
		return "#16a34a"
	case "stopped":
		return "#6b7280"
	default:
		return "#f59e0b"
	}
}
