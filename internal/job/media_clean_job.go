package job

import (
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/minio"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const tempObjectMaxAge = 24 * time.Hour

// MediaCleanJob 清理临时桶里滞留的孤儿媒体对象。
// 桶上本身有一天过期的生命周期规则，本任务在实例内兜底再扫一遍
type MediaCleanJob struct{}

func NewMediaCleanJob() *MediaCleanJob {
	return &MediaCleanJob{}
}

func (s *MediaCleanJob) Run() {
	traceID := "job-media-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	removed, err := minio.CleanTempObjects(ctx, time.Now().Add(-tempObjectMaxAge))
	if err != nil {
		log.ErrorContext(ctx, "清理临时媒体对象失败", "removed", removed, "err", err)
		return
	}
	log.InfoContext(ctx, "临时媒体对象清理完成", "removed", removed)
}
