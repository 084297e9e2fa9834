// Package similarity ranks resumes against a job description using TF-IDF
// vectors and cosine similarity.
package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"
)

var (
	// ErrEmptyJobDescription is returned when the job description is blank.
	ErrEmptyJobDescription = errors.New("job description is empty")
	// ErrNoDocuments is returned when no resume has scoreable text.
	ErrNoDocuments = errors.New("no resumes with readable text to score")
)

// Document is a resume handed over by the text extraction layer.
type Document struct {
	ID   string
	Text string
}

// MatchResult is the score and tier of one resume.
type MatchResult struct {
	Filename   string  `json:"filename" yaml:"filename"`
	Score      float64 `json:"score" yaml:"score"`
	Status     Tier    `json:"status" yaml:"status"`
	Suggestion string  `json:"suggestion" yaml:"suggestion"`
	// Index is the position of the document in the slice passed to Score.
	// IDs may repeat, so callers look the source text up by Index.
	Index int `json:"-" yaml:"-"`
}

// Percent returns the score on a 0-100 scale rounded to two decimals.
func (r MatchResult) Percent() float64 {
	return math.Round(r.Score*100*100) / 100
}

// Engine scores resumes. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine validates the policy and returns an engine.
func NewEngine(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{policy: policy}, nil
}

// Policy returns the threshold policy used for classification.
func (e *Engine) Policy() Policy { return e.policy }

// Score vectorises the job description together with every resume and
// returns results sorted by score, highest first. Ties keep submission order.
// Documents with blank text are left out of the ranking.
func (e *Engine) Score(jobDescription string, docs []Document) ([]MatchResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}

	var positions []int
	corpus := make([]string, 0, len(docs)+1)
	corpus = append(corpus, jobDescription)
	for i, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		positions = append(positions, i)
		corpus = append(corpus, d.Text)
	}
	if len(positions) == 0 {
		return nil, ErrNoDocuments
	}

	space := fitTransform(corpus)

	jd := space.vectors[0]
	results := make([]MatchResult, 0, len(positions))
	for n, pos := range positions {
		score := cosine(jd, space.vectors[n+1])
		tier := e.policy.Classify(score)
		results = append(results, MatchResult{
			Filename:   docs[pos].ID,
			Score:      score,
			Status:     tier,
			Suggestion: tier.Suggestion(),
			Index:      pos,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Scoreable returns the documents whose text is not blank, in input order.
func Scoreable(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Text) != "" {
			out = append(out, d)
		}
	}
	return out
}
