package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/jobdesc"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
)

const (
	PromptBack = "back"
	PromptExit = "exit"
)

var scoreCmd = &cobra.Command{
	Use:   "score [flags] <resume files or directories>...",
	Short: "Rank resumes against a job description",
	RunE: func(cmd *cobra.Command, args []string) error {
		return score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("jd", "", "job description text")
	scoreCmd.Flags().StringP("jd-file", "f", "", "file with the job description, - reads stdin")
	scoreCmd.Flags().String("jd-url", "", "job posting URL; hh.ru vacancy links are read through the hh.ru API")
	scoreCmd.Flags().StringP("output", "o", string(report.FormatTable), "output format: table, json or yaml")
	scoreCmd.Flags().BoolP("interactive", "i", false, "browse parsed resumes after ranking")
	scoreCmd.Flags().Bool("all", false, "show every resume, ignoring min-score and limit")
	scoreCmd.Flags().Float64("min-score", 0, "drop resumes scoring below this value (0-1)")
	scoreCmd.Flags().Int("limit", 0, "keep only the top N resumes, 0 keeps all")
	scoreCmd.Flags().String("enrich", string(matching.EnrichAll), "which results get parsed details: all, qualified or none")

	viper.BindPFlag("scoring.min-score", scoreCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("scoring.limit", scoreCmd.Flags().Lookup("limit"))
	viper.BindPFlag("scoring.enrich", scoreCmd.Flags().Lookup("enrich"))
}

func score(cmd *cobra.Command, paths []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger.Info("starting the resume-screener", zap.String("version", version))
	logger.Debug("starting with config", zap.Any("config", config))

	format, err := report.ParseFormat(flagString(cmd, "output"))
	if err != nil {
		return err
	}

	jd, err := jobdesc.Load(ctx, jobdesc.Source{
		Value:   flagString(cmd, "jd"),
		File:    flagString(cmd, "jd-file"),
		URL:     flagString(cmd, "jd-url"),
		Fetcher: jobdesc.NewFetcher(logger),
	})
	if err != nil {
		return err
	}

	extractor := extract.New(config.Extract, nil, logger)
	files, err := extractor.Collect(paths)
	if err != nil {
		return err
	}
	docs := extractor.Load(ctx, files)

	pipeline, err := matching.New(config.pipelineOptions(), logger)
	if err != nil {
		return err
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		filtering.DisableByName(pipeline.Filters(), "min_score", "--all flag is set")
		filtering.DisableByName(pipeline.Filters(), "limit", "--all flag is set")
	}
	for _, status := range filtering.Describe(pipeline.Filters()) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	rep, err := pipeline.Run(ctx, jd, docs)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout(), rep, format); err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive || len(rep.Results) == 0 {
		return nil
	}

	return browse(cmd, rep, docs)
}

// browse lets the user pick ranked resumes one by one and prints their parsed
// records. Results that were not enriched are parsed on demand.
func browse(cmd *cobra.Command, rep *matching.Report, docs []similarity.Document) error {
	items := make([]string, 0, len(rep.Results)+1)
	for _, r := range rep.Results {
		items = append(items, fmt.Sprintf("%d. %s / %.2f%% / %s", r.Rank, r.Filename, r.Percent(), r.Status))
	}
	items = append(items, PromptExit)

	for {
		selector := promptui.Select{
			Label: "Choose a resume and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := selector.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		if selected == PromptExit {
			return nil
		}

		res := &rep.Results[idx]
		if res.Parsed == nil {
			res.Parsed = resume.Parse(docs[res.Index].Text, res.Status)
		}
		if err := report.RenderRecord(cmd.OutOrStdout(), res.Parsed.Record(), report.FormatTable); err != nil {
			return err
		}

		back := promptui.Select{Label: res.Filename, Items: []string{PromptBack, PromptExit}}
		if _, action, err := back.Run(); err != nil || action == PromptExit {
			return nil
		}
	}
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
