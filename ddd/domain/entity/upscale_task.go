package entity

// UpscaleTask 远端GPU放大任务，由后端推进，看板仅作镜像
type UpscaleTask struct {
	ID         int64  `json:"id"`
	FilePath   string `json:"file_path"`
	Status     string `json:"status"`
	Stage      string `json:"stage,omitempty"`
	Progress   int    `json:"progress"`
	ResultPath string `json:"result_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// FileName 入站文件名（to_upscale 下的最后一段路径）
func (u *UpscaleTask) FileName() string {
	return PublicAsset("", u.FilePath)
}

// ResultAsset 放大结果文件的公共链接
func (u *UpscaleTask) ResultAsset() string {
	return PublicAsset(ClipsUpscaledPublicPrefix, u.ResultPath)
}
