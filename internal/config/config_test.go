package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliang-dev/vpress/internal/term"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestLoad_DefaultsHoldWhenUnset(t *testing.T) {
	c := Load(viper.New())
	assert.Equal(t, term.ModeAuto, c.ColorMode)
	assert.Equal(t, "ffmpeg", c.FFmpegBin)
	assert.Equal(t, -1, c.Quality)
	assert.Equal(t, 95.0, c.TargetVMAF)
	assert.Equal(t, 0.8, c.SizeLimit)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 1, c.Jobs)
}

func TestLoad_ViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("color", "never")
	v.Set("target_vmaf", 93.5)
	v.Set("size_limit", 0.7)
	v.Set("workers", 8)
	v.Set("quality", 0)
	v.Set("encoder", "nvidia")

	c := Load(v)
	assert.Equal(t, term.ModeNever, c.ColorMode)
	assert.Equal(t, 93.5, c.TargetVMAF)
	assert.Equal(t, 0.7, c.SizeLimit)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, 0, c.Quality, "explicit quality 0 must not fall back to the -1 sentinel")
	assert.Equal(t, "nvidia", c.EncoderName)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.ColorMode = "sometimes"
	assert.Error(t, c.Validate())

	c = Default()
	c.FFmpegBin = ""
	assert.Error(t, c.Validate())
}

func TestValidateSmart(t *testing.T) {
	c := Default()
	c.Input = "in"
	c.Output = "out"
	require.NoError(t, c.ValidateSmart())

	bad := c
	bad.SizeLimit = 1.2
	assert.Error(t, bad.ValidateSmart())

	bad = c
	bad.TargetVMAF = 0
	assert.Error(t, bad.ValidateSmart())

	bad = c
	bad.Workers = 0
	assert.Error(t, bad.ValidateSmart())

	bad = c
	bad.Output = ""
	assert.Error(t, bad.ValidateSmart())
}

func TestValidateBatch(t *testing.T) {
	c := Default()
	c.Input = "Videos"
	c.Output = "Sweep"
	c.RangeStart = 20
	c.RangeEnd = 30
	require.NoError(t, c.ValidateBatch())

	c.RangeEnd = 19
	assert.Error(t, c.ValidateBatch())
}

func TestValidatePaths(t *testing.T) {
	c := Default()
	assert.Error(t, c.ValidatePaths("/media/in", "/media/in"))
	assert.Error(t, c.ValidatePaths("/media/in", "/media/in/out"))
	assert.NoError(t, c.ValidatePaths("/media/in", "/media/out"))
	// Sibling with shared name prefix is fine.
	assert.NoError(t, c.ValidatePaths("/media/in", "/media/input"))
}
