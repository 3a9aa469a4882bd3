package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicAsset(t *testing.T) {
	t.Run("uses only the last path segment", func(t *testing.T) {
		assert.Equal(t, "/videos/clip_final.mp4",
			PublicAsset(VideosPublicPrefix, "/srv/pipeline/storage/videos/clip_final.mp4"))
		assert.Equal(t, "/clips/task_42", PublicAsset(ClipsPublicPrefix, "/data/clips/task_42/"))
		assert.Equal(t, "/clips_upscaled/out.mp4", PublicAsset(ClipsUpscaledPublicPrefix, "out.mp4"))
	})

	t.Run("empty server path yields no link", func(t *testing.T) {
		assert.Empty(t, PublicAsset(VideosPublicPrefix, ""))
		assert.Empty(t, PublicAsset(VideosPublicPrefix, "   "))
		assert.Empty(t, PublicAsset(VideosPublicPrefix, "///"))
	})
}

func TestTask_IsAutoMode(t *testing.T) {
	assert.False(t, (&Task{Mode: "simple"}).IsAutoMode())
	assert.True(t, (&Task{Mode: "auto"}).IsAutoMode())
	assert.True(t, (&Task{Mode: "auto_resize"}).IsAutoMode())
	assert.True(t, (&Task{Mode: "AUTO"}).IsAutoMode())
}

func TestTask_Assets(t *testing.T) {
	task := Task{
		DownloadedPath: "/storage/videos/source_abc.mp4",
		ProcessedPath:  "/storage/videos/source_abc_cut.mp4",
		ClipsDir:       "/storage/clips/task_7",
		TranscriptPath: "/storage/clips/task_7/transcript.txt",
	}

	assert.Equal(t, "/videos/source_abc.mp4", task.DownloadedAsset())
	assert.Equal(t, "/videos/source_abc_cut.mp4", task.ProcessedAsset())
	assert.Equal(t, "/clips/task_7", task.ClipsDirAsset())
	assert.Equal(t, "/clips/transcript.txt", task.TranscriptAsset())
	assert.Empty(t, task.ClipsJSONAsset())
}
