package service

import (
	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/vo"
)

// Aggregate 从最新快照派生两条流水线的计数。
// 纯函数：不修改输入，不缓存，快照每次变化时由Store同步重算。
func Aggregate(tasks []entity.Task, upscaleTasks []entity.UpscaleTask) vo.PipelineCounts {
	var counts vo.PipelineCounts

	for i := range tasks {
		status := vo.ParseTaskStatus(tasks[i].Status)
		switch {
		case status.IsQueued():
			counts.CutQueued++
		case status.IsProcessing():
			counts.CutProcessing++
		}
	}

	for i := range upscaleTasks {
		status := vo.ParseUpscaleStatus(upscaleTasks[i].Status)
		switch {
		case status.IsQueued():
			counts.UpscaleQueued++
		case status.IsProcessing():
			counts.UpscaleProcessing++
		}
	}

	return counts
}
