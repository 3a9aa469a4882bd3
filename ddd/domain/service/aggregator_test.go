package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/vo"
)

func TestAggregate(t *testing.T) {
	t.Run("classifies cut statuses case-insensitively", func(t *testing.T) {
		tasks := []entity.Task{
			{ID: 1, Status: "queued_download"},
			{ID: 2, Status: "Queued_Process"},
			{ID: 3, Status: "PROCESSING"},
			{ID: 4, Status: "downloading"},
			{ID: 5, Status: "done"},
			{ID: 6, Status: "error"},
		}

		counts := Aggregate(tasks, nil)
		assert.Equal(t, 2, counts.CutQueued)
		assert.Equal(t, 1, counts.CutProcessing)
		assert.Equal(t, 0, counts.UpscaleQueued)
	})

	t.Run("upscale vocabulary is independent", func(t *testing.T) {
		ups := []entity.UpscaleTask{
			{ID: 1, Status: "queued"},
			{ID: 2, Status: "queued"},
			{ID: 3, Status: "processing"},
			{ID: 4, Status: "error"},
		}

		// cut queue labels are not part of the upscale vocabulary
		counts := Aggregate(nil, append(ups, entity.UpscaleTask{ID: 5, Status: "queued_download"}))
		assert.Equal(t, 2, counts.UpscaleQueued)
		assert.Equal(t, 1, counts.UpscaleProcessing)
	})

	t.Run("pure and idempotent", func(t *testing.T) {
		tasks := []entity.Task{{ID: 1, Status: "queued_download", Error: ""}}
		ups := []entity.UpscaleTask{{ID: 1, Status: "processing"}}

		first := Aggregate(tasks, ups)
		second := Aggregate(tasks, ups)
		assert.Equal(t, first, second)
		assert.Equal(t, "queued_download", tasks[0].Status)
	})

	t.Run("unrelated field change does not affect counts", func(t *testing.T) {
		tasks := []entity.Task{
			{ID: 1, Status: "queued_download"},
			{ID: 2, Status: "done"},
		}
		before := Aggregate(tasks, nil)

		tasks[1].Error = "new error message"
		after := Aggregate(tasks, nil)
		assert.Equal(t, before, after)
	})

	t.Run("unknown statuses count nowhere", func(t *testing.T) {
		counts := Aggregate(
			[]entity.Task{{ID: 1, Status: "brand_new_status"}},
			[]entity.UpscaleTask{{ID: 1, Status: ""}},
		)
		assert.Equal(t, vo.PipelineCounts{}, counts)
	})

	t.Run("status transition moves between buckets", func(t *testing.T) {
		counts := Aggregate([]entity.Task{{ID: 1, Status: "queued_download"}}, nil)
		assert.Equal(t, 1, counts.CutQueued)
		assert.Equal(t, 0, counts.CutProcessing)

		counts = Aggregate([]entity.Task{{ID: 1, Status: "processing", Stage: "transcribing"}}, nil)
		assert.Equal(t, 0, counts.CutQueued)
		assert.Equal(t, 1, counts.CutProcessing)
	})
}
