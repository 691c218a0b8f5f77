package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mango/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document from a local file",
	Long: `Run scene segmentation and emotion classification on a local text file
and print the per-scene results. Does not require MongoDB or Redis.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.String("lang", "", "language hint (ISO 639-1, e.g. en/zh/ja)")
	flags.Bool("json", false, "print the full analysis as JSON")

	_ = viper.BindPFlag("analyze.lang", flags.Lookup("lang"))
	_ = viper.BindPFlag("analyze.json", flags.Lookup("json"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	analyzer := service.BuildAnalyzer(ctx, cfg, nil)
	svc := service.NewAnalysisService(analyzer, nil)

	result, err := svc.Analyze(ctx, string(data), viper.GetString("analyze.lang"))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if viper.GetBool("analyze.json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "language: %s (%.2f)  format: %s  scenes: %d  fallback: %d\n\n",
		result.Detection.Language, result.Detection.Confidence, result.Detection.Format,
		result.SceneCount, result.FallbackScenes)
	for _, sc := range result.Scenes {
		marker := ""
		if sc.FallbackUsed {
			marker = " (local)"
		}
		fmt.Fprintf(out, "#%d  %s  %.2f%s\n", sc.SceneNumber, sc.Emotion, sc.Confidence, marker)
		if sc.Header != "" {
			fmt.Fprintf(out, "    %s\n", sc.Header)
		}
	}
	return nil
}
