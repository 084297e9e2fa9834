package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/filtering"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/similarity"
)

type Config struct {
	Scoring ScoringConfig  `mapstructure:"scoring"`
	Filters FiltersConfig  `mapstructure:"filters"`
	Extract extract.Config `mapstructure:"extract"`
}

type ScoringConfig struct {
	similarity.Policy `mapstructure:",squash"`

	MinScore float64 `mapstructure:"min-score" validate:"gte=0,lte=1"`
	Limit    int     `mapstructure:"limit" validate:"gte=0"`
	Enrich   string  `mapstructure:"enrich" validate:"omitempty,oneof=all qualified none"`
}

type FiltersConfig struct {
	RequireSections []string `mapstructure:"require-sections" validate:"dive,required"`
}

func setDefaults(v *viper.Viper) {
	policy := similarity.DefaultPolicy()
	v.SetDefault("scoring.strong-threshold", policy.Strong)
	v.SetDefault("scoring.good-threshold", policy.Good)
	v.SetDefault("scoring.min-score", 0.0)
	v.SetDefault("scoring.limit", 0)
	v.SetDefault("scoring.enrich", string(matching.EnrichAll))
	v.SetDefault("filters.require-sections", []string{})
	v.SetDefault("extract.extensions", extract.DefaultExtensions)
	v.SetDefault("extract.workers", 4)
	v.SetDefault("extract.pdftotext", "pdftotext")
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &config, nil
}

// pipelineOptions maps the config onto the screening pipeline.
func (c *Config) pipelineOptions() matching.Options {
	return matching.Options{
		Policy: c.Scoring.Policy,
		Filters: filtering.Config{
			MinScore:        c.Scoring.MinScore,
			Limit:           c.Scoring.Limit,
			RequireSections: c.Filters.RequireSections,
		},
		Enrich: matching.EnrichMode(c.Scoring.Enrich),
	}
}
