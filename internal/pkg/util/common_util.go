package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var tagRegex = regexp.MustCompile(`#(\S+)`)

// ExtractTags 从正文中提取去重后的标签列表
func ExtractTags(rawContent string) []string {
	matches := tagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		if len(m) > 1 {
			tagName := strings.Trim(m[1], ".,，。!?！？#")
			if tagName == "" {
				continue
			}
			if _, exists := tagSet[tagName]; !exists {
				tagSet[tagName] = struct{}{}
				tags = append(tags, tagName)
			}
		}
	}

	return tags
}

// StrToUint64 字符串转 uint64，解析失败返回 0
func StrToUint64(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// StrSliceToUint64Slice 批量转换字符串切片，任一元素非法则整体失败
func StrSliceToUint64Slice(strs []string) ([]uint64, error) {
	out := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PeerKey 生成单聊会话的唯一键，小 ID 在前保证幂等
func PeerKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// Summarize 截取消息预览，超长按 rune 截断
func Summarize(content string, maxRunes int) string {
	runes := []rune(content)
	if len(runes) <= maxRunes {
		return content
	}
	return string(runes[:maxRunes]) + "…"
}
