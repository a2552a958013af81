package optimistic

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListenerMergeAppendsInOrder(t *testing.T) {
	l := NewListener()
	base := time.Now()

	assert.True(t, l.Merge(Event{ID: "m1", Content: "hello", CreatedAt: base}))
	assert.True(t, l.Merge(Event{ID: "m2", Content: "world", CreatedAt: base.Add(time.Second)}))

	events := l.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, "m1", events[0].ID)
	assert.Equal(t, "m2", events[1].ID)
}

func TestListenerDeduplicatesByRowID(t *testing.T) {
	l := NewListener()
	ev := Event{ID: "m1", Content: "hello", CreatedAt: time.Now()}

	assert.True(t, l.Merge(ev))
	assert.False(t, l.Merge(ev))
	assert.Len(t, l.Events(), 1)
}

func TestListenerDeduplicatesStagedOptimisticWrite(t *testing.T) {
	l := NewListener()

	// 本地乐观发送先占位，服务端回推同一条消息时按幂等键丢弃
	l.Stage("ck-123")
	merged := l.Merge(Event{ID: "m1", ClientKey: "ck-123", Content: "hi", CreatedAt: time.Now()})

	assert.False(t, merged)
	assert.Empty(t, l.Events())

	// 占位只消费一次，相同键的后续事件（新行）正常合并
	assert.True(t, l.Merge(Event{ID: "m2", ClientKey: "ck-123", Content: "hi again", CreatedAt: time.Now()}))
}

func TestListenerEvictsBeyondRetainedWindow(t *testing.T) {
	l := NewListener()
	base := time.Now()

	total := maxRetained + 10
	for i := 0; i < total; i++ {
		merged := l.Merge(Event{
			ID:        "m" + strconv.Itoa(i),
			Seq:       uint64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		assert.True(t, merged)
	}

	events := l.Events()
	assert.Len(t, events, maxRetained)
	assert.Equal(t, "m10", events[0].ID)
	assert.Equal(t, "m"+strconv.Itoa(total-1), events[len(events)-1].ID)
}

func TestListenerKeepsAscendingOrderOnLateArrival(t *testing.T) {
	l := NewListener()
	base := time.Now()

	l.Merge(Event{ID: "m1", Seq: 1, CreatedAt: base})
	l.Merge(Event{ID: "m3", Seq: 3, CreatedAt: base.Add(2 * time.Second)})
	l.Merge(Event{ID: "m2", Seq: 2, CreatedAt: base.Add(time.Second)})

	events := l.Events()
	assert.Len(t, events, 3)
	assert.Equal(t, "m1", events[0].ID)
	assert.Equal(t, "m2", events[1].ID)
	assert.Equal(t, "m3", events[2].ID)
}
