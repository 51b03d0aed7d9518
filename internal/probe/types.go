// Package probe reads media metadata through a single ffprobe JSON call.
package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Profile       string
	PixFmt        string
	Width         int
	Height        int
	BitRate       int64
	AvgFrameRate  string
	IsAttachedPic bool
}

// Result is the fully parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
}

// VideoBitRate returns the primary video stream bitrate in bits/sec,
// falling back to the format-level bitrate when the stream value is
// unavailable or zero.
func (r *Result) VideoBitRate() int64 {
	if r.PrimaryVideo != nil && r.PrimaryVideo.BitRate > 0 {
		return r.PrimaryVideo.BitRate
	}
	return r.Format.BitRate
}

// BitrateKbps returns the video bitrate in kbps (0 when unknown).
func (r *Result) BitrateKbps() float64 {
	return float64(r.VideoBitRate()) / 1000
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (r *Result) Resolution() string {
	if r.PrimaryVideo == nil || r.PrimaryVideo.Width <= 0 || r.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return itoa(r.PrimaryVideo.Width) + "x" + itoa(r.PrimaryVideo.Height)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
