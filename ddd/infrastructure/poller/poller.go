package poller

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"dashboard-service/pkg/logger"
)

// Sink receives the latest successful payload for a resource key.
// Apply returns false when the payload lost the generation race and was discarded.
type Sink interface {
	Apply(key string, generation uint64, payload interface{}) bool
}

// Descriptor 单个被轮询资源的描述
type Descriptor struct {
	Key      string
	Interval time.Duration
	// Enabled 为nil表示始终拉取；否则每个tick重新判定（例如仅当对应页签激活）
	Enabled func() bool
	Fetch   func(ctx context.Context) (interface{}, error)
	// OnError 为nil表示失败时保留上一份好快照；否则返回的降级载荷
	// 以本次代号照常提交（例如实例状态失败时回落到unknown）
	OnError func(err error) (interface{}, bool)
}

// 连续失败计数的封顶，防止位移溢出；退避倍数另由maxBackoff限制
const maxStreak = 16

type keyState struct {
	desc   Descriptor
	gen    atomic.Uint64
	streak atomic.Int32
	kick   chan struct{}
}

// Poller 按各自周期拉取每个资源，成功结果连同代号交给Sink。
// 同一key允许多个请求并发在途；迟到的旧代响应由Sink的代号检查丢弃，
// 不做传输层取消（请求是幂等读）。
type Poller struct {
	sink       Sink
	timeout    time.Duration
	maxBackoff int
	keys       map[string]*keyState
	order      []string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// New 构建轮询器；timeout是单次拉取的请求超时
func New(sink Sink, timeout time.Duration, maxBackoffFactor int, descriptors ...Descriptor) *Poller {
	if maxBackoffFactor <= 0 {
		maxBackoffFactor = 1
	}
	p := &Poller{
		sink:       sink,
		timeout:    timeout,
		maxBackoff: maxBackoffFactor,
		keys:       make(map[string]*keyState, len(descriptors)),
	}
	for _, d := range descriptors {
		ks := &keyState{desc: d, kick: make(chan struct{}, 1)}
		// 预置一次触发，启动后立即完成首轮拉取
		ks.kick <- struct{}{}
		p.keys[d.Key] = ks
		p.order = append(p.order, d.Key)
	}
	return p
}

// Name implements task.BackgroundTask.
func (p *Poller) Name() string {
	return "resource-poller"
}

// Start 为每个资源启动独立的轮询循环
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return nil
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	for _, key := range p.order {
		ks := p.keys[key]
		p.wg.Add(1)
		go p.run(ks)
	}
	logger.Infof("Resource poller started keys=%d", len(p.order))
	return nil
}

// Stop 取消所有轮询循环并等待在途请求收尾
func (p *Poller) Stop() error {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
	return nil
}

// Refresh 在正常节拍之外立即触发指定资源的一次拉取。
// 指令执行后无论成败都会调用，保证Store尽快反映后端真实状态。
func (p *Poller) Refresh(keys ...string) {
	for _, key := range keys {
		ks, ok := p.keys[key]
		if !ok {
			logger.Warnf("Refresh requested for unknown resource key=%s", key)
			continue
		}
		select {
		case ks.kick <- struct{}{}:
		default:
			// 已有待处理的触发
		}
	}
}

func (p *Poller) run(ks *keyState) {
	defer p.wg.Done()
	for {
		timer := time.NewTimer(p.delay(ks))
		select {
		case <-p.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-ks.kick:
			timer.Stop()
		}
		p.pollOnce(ks)
	}
}

// pollOnce 发出一次拉取。代号在发出时分配并单调递增：
// 慢响应迟到时其代号已落后，Sink据此丢弃，展示值永不回退。
func (p *Poller) pollOnce(ks *keyState) {
	if ks.desc.Enabled != nil && !ks.desc.Enabled() {
		return
	}
	gen := ks.gen.Add(1)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
		defer cancel()

		payload, err := ks.desc.Fetch(ctx)
		if err != nil {
			// 轮询失败保持静默：上一份好快照继续展示，只记日志
			if ks.streak.Load() < maxStreak {
				ks.streak.Add(1)
			}
			logger.Warnf("Poll failed key=%s generation=%d streak=%d error=%v",
				ks.desc.Key, gen, ks.streak.Load(), err)
			if ks.desc.OnError == nil {
				return
			}
			fallback, ok := ks.desc.OnError(err)
			if !ok {
				return
			}
			payload = fallback
		} else {
			ks.streak.Store(0)
		}

		if !p.sink.Apply(ks.desc.Key, gen, payload) {
			logger.Debugf("Discarded stale poll response key=%s generation=%d", ks.desc.Key, gen)
		}
	}()
}

// delay 计算下一个tick：基础周期 × 失败退避倍数 ± 10%抖动
func (p *Poller) delay(ks *keyState) time.Duration {
	base := ks.desc.Interval
	factor := 1
	if streak := int(ks.streak.Load()); streak > 0 {
		factor = 1 << (streak - 1)
		if factor > p.maxBackoff {
			factor = p.maxBackoff
		}
	}
	d := base * time.Duration(factor)
	jitter := time.Duration(rand.Int63n(int64(d)/5+1)) - d/10
	return d + jitter
}
