package app

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/gateway"
)

type MockBackendGateway struct {
	mock.Mock
}

func (m *MockBackendGateway) ListTasks(ctx context.Context) ([]entity.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockBackendGateway) CreateTask(ctx context.Context, payload gateway.CreateTaskPayload) (*entity.Task, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockBackendGateway) RetryTask(ctx context.Context, id int64) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockBackendGateway) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackendGateway) ClearTasks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBackendGateway) ListTaskClips(ctx context.Context, taskID int64) ([]entity.Clip, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Clip), args.Error(1)
}

func (m *MockBackendGateway) ListClips(ctx context.Context) ([]entity.Clip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Clip), args.Error(1)
}

func (m *MockBackendGateway) GetClip(ctx context.Context, id int64) (*entity.Clip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Clip), args.Error(1)
}

func (m *MockBackendGateway) UpdateClip(ctx context.Context, id int64, patch gateway.ClipPatch) (*entity.Clip, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Clip), args.Error(1)
}

func (m *MockBackendGateway) ListDownloads(ctx context.Context) ([]entity.DownloadedItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DownloadedItem), args.Error(1)
}

func (m *MockBackendGateway) DeleteDownload(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackendGateway) ListUpscaleTasks(ctx context.Context) ([]entity.UpscaleTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UpscaleTask), args.Error(1)
}

func (m *MockBackendGateway) RetryUpscaleTask(ctx context.Context, id int64) (*entity.UpscaleTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UpscaleTask), args.Error(1)
}

func (m *MockBackendGateway) DeleteUpscaleTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackendGateway) ClearUpscaleTasks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBackendGateway) GetUpscaleSettings(ctx context.Context) (*gateway.UpscaleSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.UpscaleSettings), args.Error(1)
}

func (m *MockBackendGateway) SaveUpscaleSettings(ctx context.Context, settings gateway.UpscaleSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockBackendGateway) TriggerUpscaleScan(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBackendGateway) EnsureInstance(ctx context.Context) (*gateway.EnsureResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.EnsureResult), args.Error(1)
}

func (m *MockBackendGateway) InstanceStatus(ctx context.Context) (gateway.InstanceState, error) {
	args := m.Called(ctx)
	return args.Get(0).(gateway.InstanceState), args.Error(1)
}

// fakeResyncer records which resource keys were forced to refresh.
type fakeResyncer struct {
	mu        sync.Mutex
	refreshed [][]string
}

func (f *fakeResyncer) Refresh(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, keys)
}

func (f *fakeResyncer) calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshed
}

func (f *fakeResyncer) refreshedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []string
	for _, keys := range f.refreshed {
		all = append(all, keys...)
	}
	return all
}
