package vo

// PipelineCounts 两条流水线的排队/处理中聚合计数
type PipelineCounts struct {
	CutQueued         int `json:"cut_queued"`
	CutProcessing     int `json:"cut_processing"`
	UpscaleQueued     int `json:"upscale_queued"`
	UpscaleProcessing int `json:"upscale_processing"`
}
