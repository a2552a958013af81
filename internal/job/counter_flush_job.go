package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// CounterFlushJob 周期性地把脏帖子的缓存计数回写数据库。
// 计数的实时真相在 Redis，数据库列只是落盘快照，重启后用于回填缓存。
type CounterFlushJob struct {
	postSvc   service.PostService
	actionSvc service.PostActionService
}

func NewCounterFlushJob(postSvc service.PostService, actionSvc service.PostActionService) *CounterFlushJob {
	return &CounterFlushJob{
		postSvc:   postSvc,
		actionSvc: actionSvc,
	}
}

func (s *CounterFlushJob) Run() {
	traceID := "job-counter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 原子搬移脏集合，Run 期间新增的脏帖留到下一轮
	processingKey := consts.PostDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.PostDirtyKey, processingKey)
	if err != nil {
		// 脏集合为空属于常态
		return
	}

	members, err := redis.SMembers(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "读取脏帖子集合失败", "err", err)
		return
	}

	postIDs, err := util.StrSliceToUint64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "脏帖子集合含非法成员", "err", err)
		return
	}

	flushed := 0
	for _, pid := range postIDs {
		likes, _ := s.actionSvc.GetPostLikeCount(ctx, pid)
		comments, _ := s.actionSvc.GetPostCommentCount(ctx, pid)
		views, _ := s.actionSvc.GetPostViewCount(ctx, pid)

		err = s.postSvc.UpdatePostCounts(ctx, pid, likes, comments, views)
		if err != nil {
			log.ErrorContext(ctx, "回写帖子计数失败", "pid", pid, "err", err)
			continue
		}
		flushed++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "清理处理中集合失败", "err", err)
	}

	log.InfoContext(ctx, "帖子计数回写完成", "dirty", len(postIDs), "flushed", flushed)
}
