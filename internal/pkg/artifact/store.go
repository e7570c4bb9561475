package artifact

import (
	"errors"
)

// 存储前缀
const (
	PrefixAudio  = "audio"
	PrefixSample = "samples"
)

var (
	// ErrNotFound 引用不存在
	ErrNotFound = errors.New("artifact not found")
)

// Store 一次写入的制品存储。引用由存储生成，写入后内容不变。
type Store interface {
	// Put 保存字节并返回引用
	Put(prefix string, data []byte, ext string) (string, error)
	// Get 按引用读取字节
	Get(ref string) ([]byte, error)
	// URL 返回可供客户端访问的地址（本地存储返回服务端下载路径）
	URL(ref string) string
}
