package kafka

import "strconv"

// 行变更事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据
	Old []map[string]interface{} `json:"old"`

	// 字段类型元数据
	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// RowUint64 读取行数据中的数值列，Canal 把所有列序列化为字符串
func RowUint64(row map[string]interface{}, column string) uint64 {
	v, ok := row[column]
	if !ok || v == nil {
		return 0
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// RowString 读取行数据中的字符串列
func RowString(row map[string]interface{}, column string) string {
	v, ok := row[column]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RowBool 读取 tinyint(1) 布尔列，"1" 为真
func RowBool(row map[string]interface{}, column string) bool {
	return RowString(row, column) == "1"
}
