package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/export"
	"github.com/jonathan/cv-tailor/internal/types"
)

// ProfileLoader reads the base profile
type ProfileLoader interface {
	LoadProfile(path string) (*types.Profile, error)
}

// PostingFetcher retrieves the job posting text
type PostingFetcher interface {
	FetchPosting(ctx context.Context, url string) (string, error)
}

// RequirementsExtractor turns posting text into structured requirements
type RequirementsExtractor interface {
	Extract(ctx context.Context, postingText, sourceURL string) (*types.Requirements, error)
}

// ContentTailor rewrites a profile toward the requirements and returns a new profile
type ContentTailor interface {
	TailorProfile(ctx context.Context, original *types.Profile, req *types.Requirements) (*types.Profile, error)
}

// DocumentRenderer renders a profile in a named style
type DocumentRenderer interface {
	Render(profile *types.Profile, style string) (string, error)
}

// FileExporter writes a rendered document to path
type FileExporter interface {
	Export(ctx context.Context, document, path string) error
	Extension() string
}

// Dependencies are the collaborators of an Orchestrator
type Dependencies struct {
	Profiles  ProfileLoader
	Fetcher   PostingFetcher
	Extractor RequirementsExtractor
	Tailor    ContentTailor
	Renderer  DocumentRenderer
	Exporter  FileExporter

	Logger     *zap.Logger
	Now        func() time.Time
	OutputDir  string
	OnProgress ProgressCallback
	// StepTimeout bounds each step; zero means no limit
	StepTimeout time.Duration
}

// Orchestrator runs the fixed step sequence against a fresh RunContext per run
type Orchestrator struct {
	deps  Dependencies
	steps []Step
}

// New creates an Orchestrator. Every collaborator is required.
func New(deps Dependencies) (*Orchestrator, error) {
	var missing []string
	if deps.Profiles == nil {
		missing = append(missing, "profile loader")
	}
	if deps.Fetcher == nil {
		missing = append(missing, "posting fetcher")
	}
	if deps.Extractor == nil {
		missing = append(missing, "requirements extractor")
	}
	if deps.Tailor == nil {
		missing = append(missing, "content tailor")
	}
	if deps.Renderer == nil {
		missing = append(missing, "document renderer")
	}
	if deps.Exporter == nil {
		missing = append(missing, "file exporter")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing dependencies: %v", missing)
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.OutputDir == "" {
		deps.OutputDir = export.DefaultOutputDir
	}

	o := &Orchestrator{deps: deps}
	o.steps = o.defaultSteps()
	return o, nil
}

// Steps returns the step table in execution order
func (o *Orchestrator) Steps() []Step {
	out := make([]Step, len(o.steps))
	copy(out, o.steps)
	return out
}

func (o *Orchestrator) defaultSteps() []Step {
	d := o.deps
	return []Step{
		NewStep(StepProfileLoad, LoadingProfile,
			func(_ context.Context, rc *RunContext) (*types.Profile, error) {
				return d.Profiles.LoadProfile(rc.ProfilePath)
			},
			func(rc *RunContext, p *types.Profile) { rc.RawProfile = p },
		),
		NewStep(StepPostingFetch, FetchingPosting,
			func(ctx context.Context, rc *RunContext) (string, error) {
				text, err := d.Fetcher.FetchPosting(ctx, rc.JobURL)
				if err != nil {
					return "", err
				}
				if text == "" {
					return "", errors.New("fetched posting is empty")
				}
				return text, nil
			},
			func(rc *RunContext, text string) { rc.PostingText = text },
		),
		NewStep(StepRequirementsExtract, ExtractingRequirements,
			func(ctx context.Context, rc *RunContext) (*types.Requirements, error) {
				req, err := d.Extractor.Extract(ctx, rc.PostingText, rc.JobURL)
				if err != nil {
					return nil, err
				}
				if !req.HasMinimumData() {
					return nil, errors.New("requirements are missing role or raw description")
				}
				return req, nil
			},
			func(rc *RunContext, req *types.Requirements) { rc.Requirements = req },
		),
		NewStep(StepContentTailor, TailoringContent,
			func(ctx context.Context, rc *RunContext) (*types.Profile, error) {
				tailored, err := d.Tailor.TailorProfile(ctx, rc.RawProfile, rc.Requirements)
				if err != nil {
					return nil, err
				}
				if tailored == nil || tailored == rc.RawProfile {
					return nil, errors.New("tailor did not produce a new profile")
				}
				return tailored, nil
			},
			func(rc *RunContext, p *types.Profile) { rc.TailoredProfile = p },
		),
		NewStep(StepDocumentRender, RenderingDocument,
			func(_ context.Context, rc *RunContext) (string, error) {
				return d.Renderer.Render(rc.TailoredProfile, rc.StyleName)
			},
			func(rc *RunContext, doc string) { rc.RenderedDocument = doc },
		),
		NewStep(StepFileExport, ExportingFile,
			func(ctx context.Context, rc *RunContext) (string, error) {
				path, err := export.BuildPath(d.OutputDir, rc.Requirements.Company, rc.Requirements.Role, d.Now(), d.Exporter.Extension())
				if err != nil {
					return "", err
				}
				if err := d.Exporter.Export(ctx, rc.RenderedDocument, path); err != nil {
					return "", err
				}
				return path, nil
			},
			func(rc *RunContext, path string) { rc.OutputPath = path },
		),
	}
}

// Run executes the pipeline and returns the exported file path or the first step error
func (o *Orchestrator) Run(ctx context.Context, in Input) (string, error) {
	rc := o.Execute(ctx, in)
	if rc.Err != nil {
		return "", rc.Err
	}
	return rc.OutputPath, nil
}

// Execute runs every step through invoke and returns the final context
func (o *Orchestrator) Execute(ctx context.Context, in Input) *RunContext {
	rc := newRunContext(in)
	logger := o.deps.Logger.With(zap.String("run_id", rc.RunID.String()))
	logger.Info("pipeline started",
		zap.String("job_url", rc.JobURL),
		zap.String("profile", rc.ProfilePath),
		zap.String("style", rc.StyleName),
	)
	start := o.deps.Now()

	for i, step := range o.steps {
		o.invoke(ctx, rc, i, step, logger)
	}

	if rc.Err == nil && rc.OutputPath == "" {
		rc.Err = &StepError{Step: StepPipeline, Message: "pipeline finished without an output path"}
		rc.enter(Failed, o.deps.Now())
	}
	if rc.Err == nil {
		rc.enter(Succeeded, o.deps.Now())
		logger.Info("pipeline succeeded",
			zap.String("output", rc.OutputPath),
			zap.Duration("duration", o.deps.Now().Sub(start)),
		)
	} else {
		logger.Error("pipeline failed",
			zap.String("step", string(rc.Err.Step)),
			zap.String("error", rc.Err.Message),
			zap.Duration("duration", o.deps.Now().Sub(start)),
		)
	}
	return rc
}

// invoke runs one step with the shared failure semantics: a failed context is left
// untouched, errors and panics become a StepError, and the first failure moves the
// run to Failed.
func (o *Orchestrator) invoke(ctx context.Context, rc *RunContext, index int, step Step, logger *zap.Logger) {
	if rc.Err != nil {
		return
	}

	rc.enter(step.State, o.deps.Now())
	o.emit(rc, step, index, StatusStarted, "", 0)
	logger.Debug("step started", zap.String("step", string(step.Name)))

	stepCtx := ctx
	if o.deps.StepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, o.deps.StepTimeout)
		defer cancel()
	}

	start := time.Now()
	stepErr := step.run(stepCtx, rc)
	duration := time.Since(start)

	if stepErr != nil {
		if ctx.Err() == nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
			stepErr.Message = fmt.Sprintf("step timed out after %s: %s", o.deps.StepTimeout, stepErr.Message)
		}
		rc.Err = stepErr
		rc.enter(Failed, o.deps.Now())

		fields := []zap.Field{
			zap.String("step", string(step.Name)),
			zap.Duration("duration", duration),
			zap.String("error", stepErr.Message),
		}
		if stepErr.Panicked() {
			fields = append(fields, zap.String("stack", stepErr.Detail))
		}
		logger.Warn("step failed", fields...)
		o.emit(rc, step, index, StatusFailed, stepErr.Message, duration)
		return
	}

	logger.Info("step completed",
		zap.String("step", string(step.Name)),
		zap.Duration("duration", duration),
	)
	o.emit(rc, step, index, StatusCompleted, "", duration)
}

func (o *Orchestrator) emit(rc *RunContext, step Step, index int, status, message string, duration time.Duration) {
	if o.deps.OnProgress == nil {
		return
	}
	o.deps.OnProgress(ProgressEvent{
		RunID:    rc.RunID.String(),
		Step:     step.Name,
		Index:    index + 1,
		Total:    len(o.steps),
		Status:   status,
		Message:  message,
		Duration: duration,
	})
}
