package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/jonathan/cv-tailor/internal/types"
)

type fakeLoader struct {
	profile *types.Profile
	err     error
	calls   int
}

func (f *fakeLoader) LoadProfile(string) (*types.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile.Clone(), nil
}

type fakeFetcher struct {
	text  string
	err   error
	block bool
	calls int
}

func (f *fakeFetcher) FetchPosting(ctx context.Context, _ string) (string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

type fakeExtractor struct {
	req   *types.Requirements
	err   error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, text, url string) (*types.Requirements, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.req
	out.RawDescription = text
	out.SourceURL = url
	return &out, nil
}

type fakeTailor struct {
	err      error
	panicMsg string
	same     bool
	calls    int
}

func (f *fakeTailor) TailorProfile(_ context.Context, original *types.Profile, _ *types.Requirements) (*types.Profile, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.same {
		return original, nil
	}
	tailored := original.Clone()
	tailored.Summary = "Tailored: " + original.Summary
	if len(tailored.Experience) > 0 {
		tailored.Experience[0].Achievements = append(tailored.Experience[0].Achievements, "Shipped Go services")
	}
	return tailored, nil
}

type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) Render(p *types.Profile, style string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "<html>" + p.Candidate.Name + " " + style + "</html>", nil
}

type fakeExporter struct {
	mu    sync.Mutex
	err   error
	calls int
	paths []string
}

func (f *fakeExporter) Extension() string { return ".pdf" }

func (f *fakeExporter) Export(_ context.Context, document, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return os.WriteFile(path, []byte(document), 0o644)
}

type fakes struct {
	loader    *fakeLoader
	fetcher   *fakeFetcher
	extractor *fakeExtractor
	tailor    *fakeTailor
	renderer  *fakeRenderer
	exporter  *fakeExporter
}

func newFakes() *fakes {
	return &fakes{
		loader:  &fakeLoader{profile: testProfile()},
		fetcher: &fakeFetcher{text: "Acme Corp is hiring a SWE II.\n- Go\n- Kubernetes"},
		extractor: &fakeExtractor{req: &types.Requirements{
			Company:        "Acme Corp",
			Role:           "SWE II",
			KeywordsForATS: []string{"Go"},
		}},
		tailor:   &fakeTailor{},
		renderer: &fakeRenderer{},
		exporter: &fakeExporter{},
	}
}

func (f *fakes) deps(outputDir string) Dependencies {
	return Dependencies{
		Profiles:  f.loader,
		Fetcher:   f.fetcher,
		Extractor: f.extractor,
		Tailor:    f.tailor,
		Renderer:  f.renderer,
		Exporter:  f.exporter,
		OutputDir: outputDir,
	}
}

func (f *fakes) calls() []int {
	return []int{f.loader.calls, f.fetcher.calls, f.extractor.calls, f.tailor.calls, f.renderer.calls, f.exporter.calls}
}

func testProfile() *types.Profile {
	return &types.Profile{
		Candidate: types.Candidate{Name: "Ada Lovelace", Title: "Software Engineer"},
		Summary:   "Engineer who enjoys building analytical engines.",
		Contact:   types.Contact{"+44 20 7946 0000", "ada@example.com", "linkedin.com/in/ada", "github.com/ada"},
		Experience: []types.ExperienceEntry{
			{Title: "Senior Engineer", Dates: "2021 - Present", Company: "Analytical Engines Ltd", Achievements: []string{"Led migration to Kubernetes"}},
			{Title: "Engineer", Dates: "2018 - 2021", Company: "Difference Co", Achievements: []string{"Built the first Go service"}},
		},
		Education: []types.EducationEntry{{Degree: "BSc Mathematics", GraduationDate: "2018", University: "University of London"}},
		Skills:    []types.SkillCategory{{Name: "Languages", Skills: []string{"Go", "Python"}}},
	}
}
