package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/pkg/logger"
)

// ==================== SyncTask 定时同步任务 ====================

// Syncer 同步所有店铺
type Syncer interface {
	SyncAll(ctx context.Context) (*dto.CronSyncResp, error)
}

// SyncTask 进程内的每日同步，与 GET /api/cron 走同一套逻辑
// 部署时二选一，避免重复拉取
type SyncTask struct {
	syncer   Syncer
	cron     *cron.Cron
	schedule string
	timeout  time.Duration

	mu      sync.Mutex
	started bool
}

// NewSyncTask 创建定时同步任务，schedule 为 6 段 cron 表达式 (含秒)
func NewSyncTask(syncer Syncer, schedule string) *SyncTask {
	return &SyncTask{
		syncer: syncer,
		// 上一轮没跑完时跳过本轮
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		schedule: schedule,
		timeout:  30 * time.Minute,
	}
}

// SetTimeout 单轮同步超时
func (t *SyncTask) SetTimeout(d time.Duration) {
	if d > 0 {
		t.timeout = d
	}
}

// Start 启动定时任务
func (t *SyncTask) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}

	if _, err := t.cron.AddFunc(t.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		_, _ = t.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("[SyncTask] 无效的 cron 表达式 %q: %w", t.schedule, err)
	}

	t.cron.Start()
	t.started = true
	logger.L().Info("[SyncTask] 已启动", zap.String("schedule", t.schedule))
	return nil
}

// Stop 停止任务，等待正在执行的同步结束
func (t *SyncTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return
	}
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.started = false
	logger.L().Info("[SyncTask] 已停止")
}

// RunOnce 立即同步一次
func (t *SyncTask) RunOnce(ctx context.Context) (*dto.CronSyncResp, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	log.Info("[SyncTask] 开始同步")

	resp, err := t.syncer.SyncAll(ctx)
	if err != nil {
		log.Error("[SyncTask] 同步失败", zap.Error(err))
		return nil, err
	}

	failed := 0
	for _, s := range resp.Shops {
		if s.Error != "" {
			failed++
		}
	}
	log.Info("[SyncTask] 同步完成",
		zap.Int("shops", len(resp.Shops)),
		zap.Int("failed", failed),
		zap.Int("total_synced", resp.TotalSynced),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}
