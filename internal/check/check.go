// Package check provides system diagnostics (the check command) and
// pre-run dependency validation for ffmpeg, ffprobe, the hardware HEVC
// encoders, and libvmaf.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/encoder"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrEncoderFailed   = errors.New("test encode failed for the selected encoder")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive check flow: prints availability of ffmpeg,
// ffprobe, each hardware HEVC backend, and the libvmaf filter.
// This is informational only, it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkBinary(cfg.FFmpegBin, log)
	checkBinary(cfg.FFprobeBin, log)
	checkHEVCEncoders(cfg, log)
	checkBackends(cfg, log)
	checkLibvmaf(cfg, log)
}

// checkBinary verifies the tool is reachable and logs its version line.
func checkBinary(bin string, log Logger) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
}

// checkHEVCEncoders lists all HEVC-related encoders reported by ffmpeg.
func checkHEVCEncoders(cfg *config.Config, log Logger) {
	log.Info("HEVC encoders:")
	out, err := exec.Command(cfg.FFmpegBin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "hevc") || strings.Contains(lower, "265") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkBackends runs a short test encode through every registered backend.
func checkBackends(cfg *config.Config, log Logger) {
	for _, name := range encoder.Names() {
		enc, err := encoder.New(name)
		if err != nil {
			continue
		}
		log.Info("Testing %s (%s)...", name, enc.Codec())
		if testEncode(cfg.FFmpegBin, enc) {
			log.Success("%s works", name)
		} else {
			log.Warn("%s test encode failed", name)
		}
	}
}

// checkLibvmaf reports whether the ffmpeg build carries the libvmaf filter.
func checkLibvmaf(cfg *config.Config, log Logger) {
	out, err := exec.Command(cfg.FFmpegBin, "-hide_banner", "-filters").Output()
	if err != nil {
		log.Warn("Could not list filters: %v", err)
		return
	}
	if strings.Contains(string(out), "libvmaf") {
		log.Success("libvmaf filter available")
	} else {
		log.Error("libvmaf filter missing (install a full ffmpeg build)")
	}
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg and ffprobe
// are reachable and that the selected encoder passes a short test encode.
// Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FFprobeBin); err != nil {
		return ErrFfprobeNotFound
	}

	enc, err := encoder.New(cfg.EncoderName)
	if err != nil {
		return err
	}
	if !testEncode(cfg.FFmpegBin, enc) {
		return fmt.Errorf("%w: %s (%s)", ErrEncoderFailed, enc.Name(), enc.Codec())
	}
	return nil
}

// testEncode runs a minimal synthetic encode through the backend's codec.
func testEncode(ffmpegBin string, enc encoder.Encoder) bool {
	return runSilent(ffmpegBin, testEncodeArgs(enc)...)
}

// testEncodeArgs builds the synthetic test encode. The codec and quality
// flags come from the backend's own argument grammar so the test exercises
// the same path a real encode would; input and container flags are replaced
// by a lavfi source and a null sink.
func testEncodeArgs(enc encoder.Encoder) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
	}
	full := enc.Args("unused", "unused", enc.Profile().Default)
	for i := 0; i < len(full)-1; i++ {
		switch full[i] {
		case "-c:v", "-preset", "-global_quality", "-rc", "-qp", "-q:v", "-multipass":
			args = append(args, full[i], full[i+1])
			i++
		}
	}
	return append(args, "-f", "null", "-")
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
