package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/similarity"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <resume files or directories>...",
	Short: "Extract structured fields from resumes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("status", "s", "", "match tier used for suggestions: strong, good or needs-improvement")
	parseCmd.Flags().StringP("output", "o", string(report.FormatTable), "output format: table, json or yaml")
}

func parse(cmd *cobra.Command, paths []string) error {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		return err
	}

	status, err := similarity.ParseTier(flagString(cmd, "status"))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(flagString(cmd, "output"))
	if err != nil {
		return err
	}

	extractor := extract.New(config.Extract, nil, logger)
	files, err := extractor.Collect(paths)
	if err != nil {
		return err
	}

	docs := extractor.Load(context.Background(), files)
	records := make([]report.FileRecord, 0, len(docs))
	for _, doc := range docs {
		logger.Debug("parsing resume", zap.String("document", doc.ID))
		records = append(records, report.FileRecord{
			Filename: doc.ID,
			Record:   resume.Parse(doc.Text, status).Record(),
		})
	}

	return report.RenderRecords(cmd.OutOrStdout(), records, format)
}
