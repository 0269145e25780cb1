package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/souschef/internal/logger"
)

// PiperClient synthesizes speech by shelling out to a local piper
// binary. Fully offline: no keys, no network.
type PiperClient struct {
	bin       string // path to the piper executable
	voicePath string // path to the .onnx voice model
	workDir   string // scratch dir for output WAVs
	log       *logger.Logger
}

// NewPiperClient creates a Piper TTS client.
func NewPiperClient(bin, voicePath, workDir string, log *logger.Logger) (*PiperClient, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("piper binary %q not found: %w", bin, err)
	}
	if _, err := os.Stat(voicePath); err != nil {
		return nil, fmt.Errorf("piper voice model: %w", err)
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("piper work dir: %w", err)
	}
	return &PiperClient{bin: bin, voicePath: voicePath, workDir: workDir, log: log}, nil
}

// Voice returns the voice model path, used in cache keys.
func (p *PiperClient) Voice() string { return p.voicePath }

// Synthesize renders text to WAV audio.
func (p *PiperClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	out := filepath.Join(p.workDir, fmt.Sprintf("piper-%d.wav", os.Getpid()))
	defer os.Remove(out)

	cmd := exec.CommandContext(ctx, p.bin,
		"--model", p.voicePath,
		"--output_file", out,
	)
	cmd.Stdin = strings.NewReader(text)

	if combined, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("piper: synthesis failed: %w (%s)", err, strings.TrimSpace(string(combined)))
	}

	wav, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("piper: reading output: %w", err)
	}

	p.log.Debug("piper: synthesized %d bytes for %q", len(wav), truncate(text, 50))
	return wav, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
