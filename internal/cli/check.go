package cli

import (
	"github.com/spf13/cobra"

	"github.com/cliang-dev/vpress/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify ffmpeg, ffprobe, the hardware encoders and libvmaf",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Close()

		check.RunCheck(&cfg, log)
		return nil
	},
}
