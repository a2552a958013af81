package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("今天写了点 Go #golang #日常 收工。#golang")
	assert.Equal(t, []string{"golang", "日常"}, tags)
}

func TestExtractTagsTrimsPunctuation(t *testing.T) {
	tags := ExtractTags("心情不错 #开心！ #随笔。")
	assert.Equal(t, []string{"开心", "随笔"}, tags)
}

func TestExtractTagsEmpty(t *testing.T) {
	assert.Empty(t, ExtractTags("没有标签的一段话"))
	assert.Empty(t, ExtractTags(""))
}

func TestPeerKeyOrderInsensitive(t *testing.T) {
	assert.Equal(t, "1_2", PeerKey(1, 2))
	assert.Equal(t, "1_2", PeerKey(2, 1))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "短文本", Summarize("短文本", 10))
	assert.Equal(t, "一二三…", Summarize("一二三四五", 3))
}

func TestStrSliceToUint64Slice(t *testing.T) {
	out, err := StrSliceToUint64Slice([]string{"1", "42"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42}, out)

	_, err = StrSliceToUint64Slice([]string{"1", "abc"})
	assert.Error(t, err)
}

func TestStrToUint64(t *testing.T) {
	assert.EqualValues(t, 7, StrToUint64("7"))
	assert.EqualValues(t, 0, StrToUint64("x"))
}
