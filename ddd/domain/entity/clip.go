package entity

import "time"

// Clip 自动模式产出的片段，归属于某个Task（随Task级联删除）
type Clip struct {
	ID               int64          `json:"id"`
	TaskID           int64          `json:"task_id"`
	ShortID          int            `json:"short_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	DurationEstimate string         `json:"duration_estimate,omitempty"`
	HookStrength     string         `json:"hook_strength,omitempty"`
	WhyItWorks       string         `json:"why_it_works,omitempty"`
	FilePath         string         `json:"file_path,omitempty"`
	Status           string         `json:"status,omitempty"`
	Channel          string         `json:"channel,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	Fragments        []ClipFragment `json:"fragments"`
}

// FileAsset 片段文件的公共链接
func (c *Clip) FileAsset() string {
	return PublicAsset(ClipsPublicPrefix, c.FilePath)
}

// ClipFragment 片段内的时间轴段落，Order决定渲染顺序
type ClipFragment struct {
	ID               int64  `json:"id"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Text             string `json:"text"`
	VisualSuggestion string `json:"visual_suggestion,omitempty"`
	Order            int    `json:"order"`
}
