package synth

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// ProcessEngine 通过本地命令行 TTS 程序（如 espeak-ng）合成语音。
// 所有参数随调用传入，进程一次一用，没有全局引擎句柄。
type ProcessEngine struct {
	command  string
	args     []string
	baseRate int // 词/分钟
}

func NewProcessEngine(command string, args []string, baseRate int) *ProcessEngine {
	if baseRate <= 0 {
		baseRate = 175
	}
	return &ProcessEngine{
		command:  command,
		args:     args,
		baseRate: baseRate,
	}
}

func (e *ProcessEngine) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}
	rate := int(float64(e.baseRate) * speed)

	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("synth_%s.wav", uuid.NewString()))
	defer os.Remove(outPath)

	args := make([]string, 0, len(e.args)+8)
	args = append(args, e.args...)
	args = append(args,
		"-v", strconv.Itoa(req.EngineVoiceID),
		"-s", strconv.Itoa(rate),
		"-w", outPath,
		req.Text,
	)

	cmd := exec.CommandContext(ctx, e.command, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		// 超时优先上报，便于调用方区分 SynthesisTimeout
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrSynthesisFailed, err, output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %s", ErrSynthesisFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrSynthesisFailed)
	}

	return data, nil
}
