package job

import (
	"Inkstone/internal/pkg/cache"
	log "log/slog"
)

// CachePurgeJob 周期性清理进程内 TTL 缓存的过期条目
type CachePurgeJob struct {
	caches []*cache.TTL
}

func NewCachePurgeJob(caches ...*cache.TTL) *CachePurgeJob {
	return &CachePurgeJob{caches: caches}
}

func (s *CachePurgeJob) Run() {
	removed := 0
	for _, c := range s.caches {
		removed += c.Purge()
	}
	log.Info("进程内缓存清理完成", "removed", removed)
}
