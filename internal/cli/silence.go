package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
	"github.com/mahideveloper1/Video-editor-assignment/internal/video"
)

var silenceCmd = &cobra.Command{
	Use:   "silence [video_file]",
	Short: "Detect silent stretches in a video file",
	Long: `Detect silent stretches in a video file using ffmpeg's silencedetect
filter and print them with summary statistics.

Examples:
  subchat silence video.mp4
  subchat silence video.mp4 --noise -40dB --min-duration 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runSilence,
}

func init() {
	rootCmd.AddCommand(silenceCmd)

	silenceCmd.Flags().
		String("noise", "-30dB", "Noise floor below which audio counts as silence")
	silenceCmd.Flags().
		Float64("min-duration", 1.0, "Minimum silence duration in seconds")
}

func runSilence(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}

	noise, _ := cmd.Flags().GetString("noise")
	minDur, _ := cmd.Flags().GetFloat64("min-duration")

	logger.Infow("Detecting silence",
		"input", videoPath,
		"noise", noise,
		"min_duration", minDur,
	)

	proc := video.NewProcessor(noise, minDur)
	intervals, duration, err := proc.DetectSilence(context.Background(), videoPath)
	if err != nil {
		return fmt.Errorf("silence detection failed: %w", err)
	}

	if len(intervals) == 0 {
		fmt.Println("No silence detected")
		return nil
	}

	for i, iv := range intervals {
		fmt.Printf("  %d: %.2fs - %.2fs (%.2fs)\n", i+1, iv.Start, iv.End, iv.Duration())
	}

	stats := silence.Summarize(intervals, duration)
	fmt.Printf("Total: %.2fs of silence across %d segments (%.1f%% of %.2fs)\n",
		stats.TotalSilence, stats.NumSilentSegments,
		stats.SilencePercentage, stats.TotalDuration)

	return nil
}
