// Package extraction turns raw job descriptions and CV text into profiles
// using a generative model.
package extraction

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/profile"
	"github.com/spigell/cv-matcher/internal/utils"
)

const (
	// JobErrorSummary replaces the summary of a job that could not be extracted.
	JobErrorSummary = "Error processing job description"
	// UnknownCandidate names a candidate whose CV could not be extracted.
	UnknownCandidate = "Unknown"

	defaultMaxLogLength = 200
)

//go:embed prompts/job.md
var jobPromptTemplate string

//go:embed prompts/cv.md
var cvPromptTemplate string

type Extractor struct {
	generator    ai.Generator
	timeout      time.Duration
	maxLogLength int
	logger       *zap.Logger
}

func New(generator ai.Generator, timeout time.Duration, maxLogLength int, log *zap.Logger) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		generator:    generator,
		timeout:      timeout,
		maxLogLength: maxLogLength,
		logger:       logger.WithFields(log),
	}
}

// ExtractJob never fails: on any error it returns a profile carrying only the
// title and JobErrorSummary.
func (e *Extractor) ExtractJob(ctx context.Context, title, description string) profile.JobProfile {
	job, err := e.extractJob(ctx, title, description)
	if err != nil {
		e.logger.Error("error extracting job summary", zap.Error(err), zap.String("title", title))
		return profile.JobProfile{
			Title:            title,
			Summary:          JobErrorSummary,
			RequiredSkills:   []string{},
			Responsibilities: []string{},
		}
	}

	return job
}

func (e *Extractor) extractJob(ctx context.Context, title, description string) (profile.JobProfile, error) {
	prompt := strings.NewReplacer("{{title}}", title, "{{description}}", description).Replace(jobPromptTemplate)

	data, err := e.generateObject(ctx, prompt)
	if err != nil {
		return profile.JobProfile{}, err
	}

	var job profile.JobProfile
	if err := profile.Decode(data, &job); err != nil {
		return profile.JobProfile{}, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}

	job.Title = title
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if job.Responsibilities == nil {
		job.Responsibilities = []string{}
	}

	return job, nil
}

// ExtractCandidate never fails: on any error it returns an empty profile named
// UnknownCandidate.
func (e *Extractor) ExtractCandidate(ctx context.Context, cvText string) profile.CandidateProfile {
	candidate, err := e.extractCandidate(ctx, cvText)
	if err != nil {
		e.logger.Error("error parsing CV", zap.Error(err))
		return emptyCandidate()
	}

	return candidate
}

func (e *Extractor) extractCandidate(ctx context.Context, cvText string) (profile.CandidateProfile, error) {
	if strings.TrimSpace(cvText) == "" {
		return profile.CandidateProfile{}, fmt.Errorf("cv text is empty")
	}

	prompt := strings.ReplaceAll(cvPromptTemplate, "{{cv_text}}", cvText)

	data, err := e.generateObject(ctx, prompt)
	if err != nil {
		return profile.CandidateProfile{}, err
	}

	candidate := emptyCandidate()
	if err := profile.Decode(data, &candidate); err != nil {
		return profile.CandidateProfile{}, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}

	if strings.TrimSpace(candidate.Name) == "" {
		candidate.Name = UnknownCandidate
	}

	return candidate, nil
}

func (e *Extractor) generateObject(ctx context.Context, prompt string) (map[string]any, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrGenerationFailure, err)
	}

	e.logger.Debug("extraction response received",
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLength)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(utils.ExtractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: expected a json object", ai.ErrMalformedResponse)
	}

	return data, nil
}

func emptyCandidate() profile.CandidateProfile {
	return profile.CandidateProfile{
		Name:           UnknownCandidate,
		Education:      []profile.Education{},
		WorkExperience: []profile.WorkExperience{},
		Skills:         []string{},
		Certifications: []string{},
	}
}
