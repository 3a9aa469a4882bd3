package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresent(t *testing.T) {
	t.Run("known stages map to fixed label and color", func(t *testing.T) {
		p := Present("transcribing")
		assert.Equal(t, "Транскрипция", p.Label)
		assert.Equal(t, "#a855f7", p.Color)

		p = Present("ensuring_instance")
		assert.Equal(t, "Запуск инстанса", p.Label)
		assert.Equal(t, "#38bdf8", p.Color)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		assert.Equal(t, Present("cutting"), Present("CUTTING"))
		assert.Equal(t, Present("gpt"), Present("GpT"))
	})

	t.Run("total over arbitrary input", func(t *testing.T) {
		inputs := []string{"", "   ", "—", "freshly_invented_stage", "ошибка", "123", "\t\n"}
		for _, in := range inputs {
			p := Present(in)
			assert.NotEmpty(t, p.Label, "input %q", in)
			assert.NotEmpty(t, p.Color, "input %q", in)
		}
	})

	t.Run("empty stage shows placeholder", func(t *testing.T) {
		p := Present("")
		assert.Equal(t, "—", p.Label)
		assert.Equal(t, neutralColor, p.Color)
	})

	t.Run("unknown stage shows itself in neutral color", func(t *testing.T) {
		p := Present("Quantum_Render")
		assert.Equal(t, "quantum_render", p.Label)
		assert.Equal(t, neutralColor, p.Color)
	})
}

func TestParseStage(t *testing.T) {
	assert.Equal(t, StageCutting, ParseStage("Cutting"))
	assert.Equal(t, StageDownloadingResult, ParseStage("downloading_result"))
	assert.Equal(t, StageUnknown, ParseStage("nonsense"))
	assert.Equal(t, StageUnknown, ParseStage(""))
}

func TestParseTaskStatus(t *testing.T) {
	assert.Equal(t, TaskStatusQueuedDownload, ParseTaskStatus("QUEUED_DOWNLOAD"))
	assert.Equal(t, TaskStatusProcessing, ParseTaskStatus(" processing "))
	assert.Equal(t, TaskStatusUnknown, ParseTaskStatus("later_added_status"))

	assert.True(t, ParseTaskStatus("queued_process").IsQueued())
	assert.False(t, ParseTaskStatus("downloading").IsQueued())
	assert.True(t, ParseTaskStatus("done").IsTerminal())
	assert.True(t, ParseTaskStatus("error").IsTerminal())
}

func TestParseUpscaleStatus(t *testing.T) {
	assert.True(t, ParseUpscaleStatus("Queued").IsQueued())
	assert.True(t, ParseUpscaleStatus("processing").IsProcessing())
	assert.False(t, ParseUpscaleStatus("queued_download").IsQueued())
}

func TestInstanceStateColor(t *testing.T) {
	assert.Equal(t, "#16a34a", InstanceStateColor("running"))
	assert.Equal(t, "#6b7280", InstanceStateColor("stopped"))
	assert.Equal(t, "#f59e0b", InstanceStateColor("unknown"))
	assert.Equal(t, "#f59e0b", InstanceStateColor("anything else"))
}
