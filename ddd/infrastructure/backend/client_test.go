package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dashboard-service/ddd/domain/gateway"
	"dashboard-service/pkg/config"
	"dashboard-service/pkg/errno"
)

func newTestClient(url string) *Client {
	return NewClient(config.BackendConfig{
		BaseURL:        url,
		PollTimeout:    2500 * time.Millisecond,
		CommandTimeout: 15 * time.Second,
	})
}

func TestClient_ListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		io.WriteString(w, `[
			{"id": 1, "url": "https://youtube.com/watch?v=abc", "mode": "simple",
			 "status": "processing", "stage": "transcribing", "progress": 42,
			 "start_time": 10.0, "end_time": null},
			{"id": 2, "mode": "auto", "status": "queued_download"}
		]`)
	}))
	defer srv.Close()

	tasks, err := newTestClient(srv.URL).ListTasks(context.Background())

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "transcribing", tasks[0].Stage)
	assert.Equal(t, 42, tasks[0].Progress)
	if assert.NotNil(t, tasks[0].StartTime) {
		assert.Equal(t, 10.0, *tasks[0].StartTime)
	}
	assert.Nil(t, tasks[0].EndTime)
	assert.Nil(t, tasks[1].StartTime)
}

func TestClient_CreateTask(t *testing.T) {
	t.Run("simple mode sends start and end", func(t *testing.T) {
		var got map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			io.WriteString(w, `{"id": 9, "mode": "simple", "status": "queued_download"}`)
		}))
		defer srv.Close()

		start, end := "00:01:00", "00:02:00"
		task, err := newTestClient(srv.URL).CreateTask(context.Background(), gateway.CreateTaskPayload{
			URL:   "https://youtube.com/watch?v=abc",
			Mode:  "simple",
			Start: &start,
			End:   &end,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(9), task.ID)
		assert.Equal(t, "00:01:00", got["start"])
		assert.Equal(t, "00:02:00", got["end"])
	})

	t.Run("auto mode serializes start and end as null", func(t *testing.T) {
		var raw map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &raw))
			io.WriteString(w, `{"id": 10, "mode": "auto"}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreateTask(context.Background(), gateway.CreateTaskPayload{
			URL:  "https://youtube.com/watch?v=abc",
			Mode: "auto",
		})

		assert.NoError(t, err)
		assert.Equal(t, "null", string(raw["start"]))
		assert.Equal(t, "null", string(raw["end"]))
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("non-2xx maps to backend rejected with body snippet", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "task not found"}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).RetryTask(context.Background(), 99)

		assert.ErrorIs(t, err, errno.ErrBackendRejected)
		assert.Contains(t, err.Error(), "status=404")
		assert.Contains(t, err.Error(), "task not found")
	})

	t.Run("transport failure maps to backend unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listens anymore

		err := newTestClient(srv.URL).ClearTasks(context.Background())

		assert.ErrorIs(t, err, errno.ErrBackendUnreachable)
	})

	t.Run("poll deadline is honored", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := newTestClient(srv.URL).ListDownloads(ctx)
		assert.Error(t, err)
	})
}

func TestClient_UpdateClip(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/clips/4", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &raw))
		io.WriteString(w, `{"id": 4, "status": "posted", "channel": "shorts"}`)
	}))
	defer srv.Close()

	status := "posted"
	clip, err := newTestClient(srv.URL).UpdateClip(context.Background(), 4, gateway.ClipPatch{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, "posted", clip.Status)
	// omitted fields must not appear in the patch body
	assert.Contains(t, raw, "status")
	assert.NotContains(t, raw, "channel")
}

func TestClient_InstanceStatus(t *testing.T) {
	cases := []struct {
		body string
		want gateway.InstanceState
	}{
		{`{"state": "running"}`, gateway.InstanceRunning},
		{`{"state": " Running "}`, gateway.InstanceRunning},
		{`{"state": "stopped"}`, gateway.InstanceStopped},
		{`{"state": "exited"}`, gateway.InstanceUnknown},
		{`{"state": ""}`, gateway.InstanceUnknown},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/upscale/status", r.URL.Path)
			io.WriteString(w, tc.body)
		}))

		state, err := newTestClient(srv.URL).InstanceStatus(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, tc.want, state, "body %s", tc.body)
		srv.Close()
	}
}

func TestClient_SaveUpscaleSettings(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/upscale/settings", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SaveUpscaleSettings(context.Background(), gateway.UpscaleSettings{
		Image:       "registry/upscaler:v2",
		Concurrency: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, "registry/upscaler:v2", got["UPSCALE_IMAGE"])
	assert.Equal(t, float64(2), got["UPSCALE_CONCURRENCY"])
}
