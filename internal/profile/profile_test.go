package profile

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestJobEmbeddingText(t *testing.T) {
	t.Parallel()

	job := JobProfile{
		Title:          " Backend Engineer ",
		Summary:        "Build Go services.",
		RequiredSkills: []string{"Go", " ", "SQL"},
	}

	want := "Backend Engineer\nBuild Go services.\nGo, SQL"
	if got := job.EmbeddingText(); got != want {
		t.Fatalf("EmbeddingText() = %q, want %q", got, want)
	}
}

func TestCandidateEmbeddingText(t *testing.T) {
	t.Parallel()

	candidate := CandidateProfile{
		Name:   "John Doe",
		Skills: []string{"Go", "SQL"},
		WorkExperience: []WorkExperience{
			{Company: "Tech Corp", Role: "Engineer", Years: "2019-2023", Description: "Built APIs"},
			{Company: "Startup", Role: "Intern"},
		},
		Education: []Education{
			{Institution: "State College", Degree: "Bachelor", Field: "Mathematics", Years: "2013-2017"},
		},
	}

	want := "Go, SQL\n" +
		"Engineer at Tech Corp (2019-2023): Built APIs; Intern at Startup\n" +
		"Bachelor in Mathematics from State College (2013-2017)"
	if got := candidate.EmbeddingText(); got != want {
		t.Fatalf("EmbeddingText() = %q, want %q", got, want)
	}

	if strings.Contains(candidate.EmbeddingText(), "John Doe") {
		t.Fatalf("candidate name must not be embedded")
	}
}

func TestEmbeddingTextIsDeterministic(t *testing.T) {
	t.Parallel()

	candidate := CandidateProfile{Skills: []string{"Go"}, Education: []Education{{Degree: "BSc"}}}
	if candidate.EmbeddingText() != candidate.EmbeddingText() {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestRecordJSONNeverNull(t *testing.T) {
	t.Parallel()

	var empty CandidateProfile
	if got := empty.EducationJSON(); got != "[]" {
		t.Fatalf("EducationJSON() = %q, want []", got)
	}
	if got := empty.WorkExperienceJSON(); got != "[]" {
		t.Fatalf("WorkExperienceJSON() = %q, want []", got)
	}
}

func TestLoadJob(t *testing.T) {
	job, err := LoadJob(filepath.Join("testdata", "job.yaml"))
	if err != nil {
		t.Fatalf("LoadJob: %v", err)
	}

	want := JobProfile{
		Title:              "Backend Engineer",
		Summary:            "Build and operate Go services for the hiring platform.",
		RequiredSkills:     []string{"Go", "PostgreSQL", "Kubernetes"},
		RequiredExperience: "3+ years of backend development",
		Responsibilities:   []string{"Design APIs", "Run services in production"},
	}
	if !reflect.DeepEqual(job, want) {
		t.Fatalf("LoadJob() = %+v, want %+v", job, want)
	}
}

func TestLoadCandidatesList(t *testing.T) {
	candidates, err := LoadCandidates(filepath.Join("testdata", "candidates.yaml"))
	if err != nil {
		t.Fatalf("LoadCandidates: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	jane := candidates[0]
	if jane.Name != "Jane Smith" || len(jane.Education) != 1 || jane.Education[0].Years != "2017-2019" {
		t.Fatalf("unexpected first candidate: %+v", jane)
	}
	if candidates[1].Name != "John Doe" || !reflect.DeepEqual(candidates[1].Skills, []string{"Go", "Kubernetes"}) {
		t.Fatalf("unexpected second candidate: %+v", candidates[1])
	}
}

func TestLoadCandidatesSingle(t *testing.T) {
	candidates, err := LoadCandidates(filepath.Join("testdata", "candidate.json"))
	if err != nil {
		t.Fatalf("LoadCandidates: %v", err)
	}

	if len(candidates) != 1 || candidates[0].Name != "John Doe" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	if candidates[0].WorkExperience[0].Company != "Tech Corp" {
		t.Fatalf("work experience not decoded: %+v", candidates[0].WorkExperience)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadJob(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeWeaklyTyped(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"name": "Ann",
		"education": []any{
			map[string]any{"institution": "MIT", "degree": "PhD", "field": "CS", "years": 2020},
		},
		"skills": "Go",
	}

	var got CandidateProfile
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Education[0].Years != "2020" {
		t.Fatalf("expected numeric years coerced to string, got %q", got.Education[0].Years)
	}
	if !reflect.DeepEqual(got.Skills, []string{"Go"}) {
		t.Fatalf("expected single skill lifted to slice, got %v", got.Skills)
	}
}
