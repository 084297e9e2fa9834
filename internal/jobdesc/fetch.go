package jobdesc

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
)

const (
	apiURL          = "https://api.hh.ru"
	userAgent       = "spigell/resume-screener"
	contentEncoding = "gzip"
	maxBodyBytes    = 4 << 20
)

var hhVacancyRe = regexp.MustCompile(`^https?://(?:[a-z0-9-]+\.)?hh\.ru/vacancy/(\d+)`)

// Fetcher downloads job descriptions. Links to hh.ru vacancies are resolved
// through the public API; any other page is fetched and flattened to text.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	logger     *zap.Logger
}

type vacancy struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	KeySkills   []struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"key_skills"`
}

// NewFetcher creates a Fetcher with a 10 second timeout.
func NewFetcher(log *zap.Logger) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		UserAgent:  userAgent,
		APIURL:     apiURL,
		logger:     logger.WithFields(log),
	}
}

// Fetch returns the text of the job posting at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if m := hhVacancyRe.FindStringSubmatch(rawURL); m != nil {
		return f.fetchVacancy(ctx, m[1])
	}

	body, ctype, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(ctype, "html") {
		return extract.HTMLText(body)
	}
	return string(body), nil
}

func (f *Fetcher) fetchVacancy(ctx context.Context, id string) (string, error) {
	body, _, err := f.get(ctx, strings.TrimRight(f.APIURL, "/")+"/vacancies/"+id)
	if err != nil {
		return "", err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decoding vacancy %s: %w", id, err)
	}

	var v vacancy
	if err := mapstructure.Decode(raw, &v); err != nil {
		return "", fmt.Errorf("decoding vacancy %s: %w", id, err)
	}

	description, err := extract.HTMLText([]byte("<html><body>" + v.Description + "</body></html>"))
	if err != nil {
		return "", fmt.Errorf("vacancy %s description: %w", id, err)
	}

	parts := []string{v.Name, description}
	if len(v.KeySkills) > 0 {
		skills := make([]string, 0, len(v.KeySkills))
		for _, s := range v.KeySkills {
			skills = append(skills, s.Name)
		}
		parts = append(parts, "Key skills: "+strings.Join(skills, ", "))
	}

	f.logger.Debug("fetched vacancy", zap.String("id", id), zap.String("name", v.Name))
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	f.logger.Debug("make request", zap.String("url", url))
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, "", err
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}
