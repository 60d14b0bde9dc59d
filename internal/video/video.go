// Package video wraps the ffmpeg operations the editor needs: probing,
// silence detection, silence removal, and subtitle burn-in.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mahideveloper1/Video-editor-assignment/internal/ffmpeg"
	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
)

// video file information
type Info struct {
	Path     string
	Duration float64
	Width    int
	Height   int
	FPS      float64
	Format   string
	Size     int64
}

// Processor runs ffmpeg against session media.
type Processor struct {
	NoiseThreshold     string  // silencedetect noise floor, e.g. "-30dB"
	MinSilenceDuration float64 // seconds
}

func NewProcessor(noiseThreshold string, minSilenceDuration float64) *Processor {
	return &Processor{
		NoiseThreshold:     noiseThreshold,
		MinSilenceDuration: minSilenceDuration,
	}
}

// ffprobe JSON output
type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
		Size       string `json:"size"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe retrieves media file information.
func (p *Processor) Probe(ctx context.Context, path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate ffprobe: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	raw, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: path, Format: probe.Format.FormatName}
	info.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	info.Size, _ = strconv.ParseInt(probe.Format.Size, 10, 64)

	for _, stream := range probe.Streams {
		if stream.CodecType == "video" {
			info.Width = stream.Width
			info.Height = stream.Height
			info.FPS = parseFrameRate(stream.RFrameRate)
			break
		}
	}

	return info, nil
}

// DetectSilence finds silent spans using ffmpeg's silencedetect filter
// and returns them with the total media duration.
func (p *Processor) DetectSilence(
	ctx context.Context,
	path string,
) ([]silence.Interval, float64, error) {
	info, err := p.Probe(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to locate ffmpeg: %w", err)
	}

	filter := fmt.Sprintf("silencedetect=noise=%s:d=%g",
		p.NoiseThreshold, p.MinSilenceDuration)

	// silencedetect reports on stderr; the null muxer discards frames
	var stderr bytes.Buffer
	err = ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{"af": filter, "f": "null"}).
		SetFfmpegPath(ffmpegPath).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return nil, 0, fmt.Errorf("silence detection failed: %w", err)
	}

	return ParseSilenceOutput(stderr.String()), info.Duration, nil
}

// RemoveSilence re-encodes the input keeping only the given intervals,
// concatenated back to back.
func (p *Processor) RemoveSilence(
	ctx context.Context,
	inputPath, outputPath string,
	keep []silence.Interval,
) error {
	if len(keep) == 0 {
		return fmt.Errorf("no intervals to keep")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return fmt.Errorf("failed to locate ffmpeg: %w", err)
	}

	err = ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"filter_complex": BuildConcatFilter(keep),
			"map":            []string{"[outv]", "[outa]"},
			"c:v":            "libx264",
			"preset":         "fast",
			"c:a":            "aac",
			"b:a":            "192k",
		}).
		SetFfmpegPath(ffmpegPath).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("silence removal failed: %w", err)
	}

	return nil
}

// BurnSubtitles renders an ASS subtitle file into the video stream.
func (p *Processor) BurnSubtitles(
	ctx context.Context,
	videoPath, subtitlePath, outputPath string,
) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return fmt.Errorf("failed to locate ffmpeg: %w", err)
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf":  "ass=" + escapeFilterPath(subtitlePath),
			"c:a": "copy",
		}).
		SetFfmpegPath(ffmpegPath).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("subtitle burn-in failed: %w", err)
	}

	return nil
}

// parseFrameRate converts ffprobe's "30000/1001" form to a float.
func parseFrameRate(s string) float64 {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 2 {
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den
		}
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// escapeFilterPath quotes characters that break filter arguments.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, ":", `\:`)
	return path
}
