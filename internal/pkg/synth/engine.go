package synth

import (
	"context"
	"errors"
)

var (
	// ErrSynthesisFailed 引擎执行失败
	ErrSynthesisFailed = errors.New("synthesis failed")
)

// Request 单次合成的全部参数。引擎无共享可变状态，
// 并发调用之间互不影响。
type Request struct {
	Text          string
	EngineVoiceID int
	PitchModifier int     // 仅透传给支持的引擎，本地引擎忽略
	Speed         float64 // 1.0 为基准语速
}

// Engine 合成引擎。实现必须尊重 ctx 的取消与超时。
type Engine interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// ApplyEmotion 情感的文本前缀变换。仅 happy/sad 生效，其余原样返回。
func ApplyEmotion(text, emotion string) string {
	switch emotion {
	case "happy":
		return "Yay! " + text
	case "sad":
		return "Alas... " + text
	default:
		return text
	}
}
