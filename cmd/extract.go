package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/extraction"
	"github.com/spigell/cv-matcher/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured profiles from raw job descriptions and CVs",
}

var extractJobCmd = &cobra.Command{
	Use:   "job",
	Short: "Extract a job profile from a job description text file",
	Run: func(cmd *cobra.Command, _ []string) {
		runExtract(cmd, func(ctx context.Context, e *extraction.Extractor, text string) any {
			return e.ExtractJob(ctx, cmd.Flag("title").Value.String(), text)
		})
	},
}

var extractCVCmd = &cobra.Command{
	Use:   "cv",
	Short: "Extract a candidate profile from a CV text file",
	Run: func(cmd *cobra.Command, _ []string) {
		runExtract(cmd, func(ctx context.Context, e *extraction.Extractor, text string) any {
			return e.ExtractCandidate(ctx, text)
		})
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.AddCommand(extractJobCmd, extractCVCmd)

	extractJobCmd.Flags().String("title", "", "job title")
	extractJobCmd.Flags().StringP("file", "f", "", "job description text file")
	extractJobCmd.MarkFlagRequired("title")
	extractJobCmd.MarkFlagRequired("file")

	extractCVCmd.Flags().StringP("file", "f", "", "CV text file")
	extractCVCmd.MarkFlagRequired("file")
}

func runExtract(cmd *cobra.Command, extract func(context.Context, *extraction.Extractor, string) any) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	file := cmd.Flag("file").Value.String()
	text, err := os.ReadFile(file)
	if err != nil {
		logger.Fatal("reading input file", zap.Error(err), zap.String("file", file))
	}

	extractor, err := newProviders(config.AI, logger).extractor(ctx)
	if err != nil {
		logger.Fatal("building extractor", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(extract(ctx, extractor, string(text)), "", "  ")
	if err != nil {
		logger.Fatal("encoding profile", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(pretty))
}
