package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLikeEvent = `{
	"id": 1,
	"database": "inkstone",
	"table": "likes",
	"type": "INSERT",
	"es": 1700000000000,
	"data": [{"user_id": "3", "post_id": "17", "created_at": "2024-01-02 10:30:00"}]
}`

func TestToCanalMessage(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(sampleLikeEvent)}

	canalMsg, err := ToCanalMessage(msg, "likes")
	require.NoError(t, err)
	assert.Equal(t, INSERT, canalMsg.Type)
	require.Len(t, canalMsg.Data, 1)
	assert.EqualValues(t, 3, RowUint64(canalMsg.Data[0], "user_id"))
	assert.EqualValues(t, 17, RowUint64(canalMsg.Data[0], "post_id"))
}

func TestToCanalMessageTableMismatch(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(sampleLikeEvent)}
	_, err := ToCanalMessage(msg, "bookmarks")
	assert.Error(t, err)
}

func TestToCanalMessageEmptyData(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(`{"table": "likes", "type": "DELETE", "data": []}`)}
	_, err := ToCanalMessage(msg, "likes")
	assert.Error(t, err)
}

func TestRowHelpers(t *testing.T) {
	row := map[string]interface{}{
		"id":         "42",
		"title":      "你好",
		"is_deleted": "1",
		"is_public":  "0",
		"missing":    nil,
	}

	assert.EqualValues(t, 42, RowUint64(row, "id"))
	assert.EqualValues(t, 0, RowUint64(row, "title"))
	assert.EqualValues(t, 0, RowUint64(row, "missing"))
	assert.Equal(t, "你好", RowString(row, "title"))
	assert.Equal(t, "", RowString(row, "absent"))
	assert.True(t, RowBool(row, "is_deleted"))
	assert.False(t, RowBool(row, "is_public"))
	assert.False(t, RowBool(row, "absent"))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"golang", "日常"}, parseTags(`["golang","日常"]`))
	assert.Nil(t, parseTags(""))
	assert.Nil(t, parseTags("not json"))
}

func TestParseRowTime(t *testing.T) {
	got := parseRowTime("2024-01-02 10:30:00")
	assert.Equal(t, time.Date(2024, 1, 2, 10, 30, 0, 0, time.Local), got)
	assert.True(t, parseRowTime("garbage").IsZero())
}
