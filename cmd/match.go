package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-matcher/internal/filtering"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/matching"
	"github.com/spigell/cv-matcher/internal/profile"
)

const (
	PromptAllCandidates = "All candidates"
	matchConcurrency    = 4
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score candidate profiles against a job profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("job", "", "job profile file (yaml, json or toml)")
	matchCmd.Flags().String("candidates", "", "candidate profiles file: a single profile or a list under 'candidates'")
	matchCmd.Flags().BoolP("all", "a", false, "print every result, including candidates below match.minimum-score")
	matchCmd.Flags().BoolP("interactive", "i", false, "choose which candidate to score")
	matchCmd.Flags().Float64("minimum-score", 0, "results below this score are reported as not fit")
	matchCmd.Flags().StringP("exclude-file", "e", "", "file listing candidate names to skip under 'candidates'")

	matchCmd.MarkFlagRequired("job")
	matchCmd.MarkFlagRequired("candidates")

	viper.BindPFlag("match.minimum-score", matchCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("match.exclude-file", matchCmd.Flags().Lookup("exclude-file"))
}

// matchOutput is one printed result.
type matchOutput struct {
	Candidate    string               `json:"candidate"`
	ScorePercent float64              `json:"score_percent"`
	Fit          bool                 `json:"fit"`
	Result       matching.MatchResult `json:"result"`
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the matcher", zap.String("version", version))

	job, err := profile.LoadJob(cmd.Flag("job").Value.String())
	if err != nil {
		logger.Fatal("loading job profile", zap.Error(err))
	}

	candidates, err := profile.LoadCandidates(cmd.Flag("candidates").Value.String())
	if err != nil {
		logger.Fatal("loading candidate profiles", zap.Error(err))
	}

	deps := filtering.Deps{Logger: logger}

	entries, err := filtering.Run(ctx, deps, []filtering.Filter{
		filtering.NewExcluded(config.Match.Exclude),
		filtering.NewExcludeFile(config.Match.ExcludeFile),
	}, filtering.NewEntries(candidates))
	if err != nil {
		logger.Fatal("filtering candidates", zap.Error(err))
	}

	if entries.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left to score"))
		return
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		entries, err = selectEntries(entries)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	matcher, err := newProviders(config.AI, logger).matcher(ctx)
	if err != nil {
		logger.Fatal("building matcher", zap.Error(err),
			zap.String("hint", "check the ai section of the configuration file"),
		)
	}

	logger.Info("scoring candidates",
		zap.String("job", job.Title),
		zap.Int("count", entries.Len()),
	)

	scoreAll(ctx, matcher, job, entries)
	scored := entries.Len()

	minimumScore := config.Match.MinimumScore
	fitFilter := filtering.NewMinimumScore(minimumScore)
	if all, _ := cmd.Flags().GetBool("all"); all {
		fitFilter.Disable("all flag is set")
	}

	entries, err = filtering.Run(ctx, deps, []filtering.Filter{fitFilter}, entries)
	if err != nil {
		logger.Fatal("filtering results", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(buildOutputs(entries, minimumScore), "", "  ")
	if err != nil {
		logger.Fatal("encoding results", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(pretty))

	logger.Info("done",
		zap.Int("scored", scored),
		zap.Int("printed", entries.Len()),
	)
}

// scoreAll scores every entry against job. Each match is independent, so
// they run concurrently with a small limit.
func scoreAll(ctx context.Context, matcher *matching.Matcher, job profile.JobProfile, entries *filtering.Entries) {
	var g errgroup.Group
	g.SetLimit(matchConcurrency)

	for _, entry := range entries.Items {
		g.Go(func() error {
			result := matcher.Match(ctx, matching.Pair{Job: job, Candidate: entry.Candidate})
			entry.Result = &result
			return nil
		})
	}

	// Match never fails, failures are carried in the results.
	_ = g.Wait()
}

func buildOutputs(entries *filtering.Entries, minimumScore float64) []matchOutput {
	outputs := make([]matchOutput, 0, entries.Len())
	for _, entry := range entries.Items {
		if entry.Result == nil {
			continue
		}

		outputs = append(outputs, matchOutput{
			Candidate:    entry.Candidate.Name,
			ScorePercent: math.Round(entry.Result.Score*1000) / 10,
			Fit:          filtering.Fit(entry, minimumScore),
			Result:       *entry.Result,
		})
	}
	return outputs
}

func selectEntries(entries *filtering.Entries) (*filtering.Entries, error) {
	items := make([]string, 0, entries.Len()+1)
	items = append(items, PromptAllCandidates)
	for i, entry := range entries.Items {
		items = append(items, fmt.Sprintf("%d %s", i+1, entry.Candidate.Name))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: items,
	}

	idx, _, err := candidatePrompt.Run()
	if err != nil {
		return nil, err
	}

	if idx == 0 {
		return entries, nil
	}

	return &filtering.Entries{Items: []*filtering.Entry{entries.Items[idx-1]}}, nil
}
