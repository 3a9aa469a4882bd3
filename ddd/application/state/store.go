package state

import (
	"sync"
	"time"

	"dashboard-service/ddd/domain/entity"
	"dashboard-service/ddd/domain/gateway"
	"dashboard-service/ddd/domain/service"
	"dashboard-service/ddd/domain/vo"
	"dashboard-service/pkg/logger"
)

// 资源key，轮询器与Store共用
const (
	KeyTasks          = "tasks"
	KeyDownloads      = "downloads"
	KeyUpscaleTasks   = "upscale_tasks"
	KeyInstanceStatus = "instance_status"
	KeyClips          = "clips"
)

// Tab 渲染层页签
type Tab string

const (
	TabCut       Tab = "cut"
	TabUpscale   Tab = "upscale"
	TabDownloads Tab = "downloads"
	TabClips     Tab = "clips"
)

// ValidTab 判断页签取值是否合法
func ValidTab(t Tab) bool {
	switch t {
	case TabCut, TabUpscale, TabDownloads, TabClips:
		return true
	default:
		return false
	}
}

// ViewState 看板自身的视图状态（不镜像自后端）
type ViewState struct {
	ActiveTab      Tab    `json:"active_tab"`
	SearchTerm     string `json:"search_term"`
	StatusFilter   string `json:"status_filter"`
	ChannelFilter  string `json:"channel_filter"`
	SelectedTaskID int64  `json:"selected_task_id"`
}

// Snapshot 渲染层读取的一致视图（全部为拷贝，调用方改不到镜像本体）
type Snapshot struct {
	Tasks         []entity.Task          `json:"tasks"`
	Downloads     []entity.DownloadedItem `json:"downloads"`
	UpscaleTasks  []entity.UpscaleTask   `json:"upscale_tasks"`
	Clips         []entity.Clip          `json:"clips"`
	InstanceState gateway.InstanceState  `json:"instance_state"`
	Counts        vo.PipelineCounts      `json:"counts"`
	View          ViewState              `json:"view"`
	UpdatedAt     map[string]time.Time   `json:"updated_at"`
}

// Store 所有被镜像资源与视图状态的唯一可变载体。
// 每个key只接受比已见最高代号更新的载荷，迟到的旧响应被拒绝，
// 因此可见值在代号上单调、永不回退。
type Store struct {
	mu sync.RWMutex

	generations map[string]uint64
	updatedAt   map[string]time.Time

	tasks        []entity.Task
	downloads    []entity.DownloadedItem
	upscaleTasks []entity.UpscaleTask
	clips        []entity.Clip
	instance     gateway.InstanceState

	counts vo.PipelineCounts
	view   ViewState
}

// NewStore 构建空Store；实例状态在首轮轮询前为unknown
func NewStore() *Store {
	return &Store{
		generations: make(map[string]uint64),
		updatedAt:   make(map[string]time.Time),
		instance:    gateway.InstanceUnknown,
		view: ViewState{
			ActiveTab:     TabCut,
			StatusFilter:  "all",
			ChannelFilter: "all",
		},
	}
}

// Apply 提交一次轮询结果。代号不高于已见值时拒绝并返回false。
// tasks或upscale_tasks更新时同步重算聚合计数，绝不缓存过期值。
func (s *Store) Apply(key string, generation uint64, payload interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation <= s.generations[key] {
		return false
	}

	switch key {
	case KeyTasks:
		tasks, ok := payload.([]entity.Task)
		if !ok {
			logger.Errorf("Store rejected payload with unexpected type key=%s", key)
			return false
		}
		s.tasks = tasks
		s.counts = service.Aggregate(s.tasks, s.upscaleTasks)
	case KeyDownloads:
		items, ok := payload.([]entity.DownloadedItem)
		if !ok {
			logger.Errorf("Store rejected payload with unexpected type key=%s", key)
			return false
		}
		s.downloads = items
	case KeyUpscaleTasks:
		tasks, ok := payload.([]entity.UpscaleTask)
		if !ok {
			logger.Errorf("Store rejected payload with unexpected type key=%s", key)
			return false
		}
		s.upscaleTasks = tasks
		s.counts = service.Aggregate(s.tasks, s.upscaleTasks)
	case KeyInstanceStatus:
		st, ok := payload.(gateway.InstanceState)
		if !ok {
			logger.Errorf("Store rejected payload with unexpected type key=%s", key)
			return false
		}
		s.instance = st
	case KeyClips:
		clips, ok := payload.([]entity.Clip)
		if !ok {
			logger.Errorf("Store rejected payload with unexpected type key=%s", key)
			return false
		}
		s.clips = clips
	default:
		logger.Errorf("Store received unknown resource key=%s", key)
		return false
	}

	s.generations[key] = generation
	s.updatedAt[key] = time.Now()
	return true
}

// SetView 更新视图状态；页签切换不会重置任何代号计数
func (s *Store) SetView(view ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ValidTab(view.ActiveTab) {
		view.ActiveTab = s.view.ActiveTab
	}
	s.view = view
}

// ActiveTab 当前页签（供轮询器的启用判定读取）
func (s *Store) ActiveTab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.ActiveTab
}

// Counts 当前聚合计数
func (s *Store) Counts() vo.PipelineCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts
}

// Generation 某资源已接受的最高代号
func (s *Store) Generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[key]
}

// Snapshot 拷贝出当前一致视图
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Tasks:         make([]entity.Task, len(s.tasks)),
		Downloads:     make([]entity.DownloadedItem, len(s.downloads)),
		UpscaleTasks:  make([]entity.UpscaleTask, len(s.upscaleTasks)),
		Clips:         make([]entity.Clip, len(s.clips)),
		InstanceState: s.instance,
		Counts:        s.counts,
		View:          s.view,
		UpdatedAt:     make(map[string]time.Time, len(s.updatedAt)),
	}
	copy(snap.Tasks, s.tasks)
	copy(snap.Downloads, s.downloads)
	copy(snap.UpscaleTasks, s.upscaleTasks)
	copy(snap.Clips, s.clips)
	for k, v := range s.updatedAt {
		snap.UpdatedAt[k] = v
	}
	return snap
}
