// Package pipeline sequences the résumé tailoring steps over a single run context.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultStyle is the style used when the input names none
const DefaultStyle = "default"

// State is a position in the run state machine
type State int

// Run states, in the order a successful run visits them
const (
	NotStarted State = iota
	LoadingProfile
	FetchingPosting
	ExtractingRequirements
	TailoringContent
	RenderingDocument
	ExportingFile
	Succeeded
	Failed
)

var stateNames = map[State]string{
	NotStarted:             "not_started",
	LoadingProfile:         "loading_profile",
	FetchingPosting:        "fetching_posting",
	ExtractingRequirements: "extracting_requirements",
	TailoringContent:       "tailoring_content",
	RenderingDocument:      "rendering_document",
	ExportingFile:          "exporting_file",
	Succeeded:              "succeeded",
	Failed:                 "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions can happen
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

// StepName tags a step in logs, progress events and errors
type StepName string

// Step tags
const (
	StepProfileLoad         StepName = "profile-load"
	StepPostingFetch        StepName = "posting-fetch"
	StepRequirementsExtract StepName = "requirements-extract"
	StepContentTailor       StepName = "content-tailor"
	StepDocumentRender      StepName = "document-render"
	StepFileExport          StepName = "file-export"
	// StepPipeline tags failures of the orchestrator itself
	StepPipeline StepName = "pipeline"
)

// Input holds the caller-supplied parameters of one run
type Input struct {
	JobURL      string
	ProfilePath string
	Style       string
}

// Transition records entry into a state
type Transition struct {
	State State
	At    time.Time
}

// RunContext is the record threaded through every step of one run.
// Once Err is set no step touches it again.
type RunContext struct {
	RunID       uuid.UUID
	JobURL      string
	ProfilePath string
	StyleName   string

	RawProfile       *types.Profile
	PostingText      string
	Requirements     *types.Requirements
	TailoredProfile  *types.Profile
	RenderedDocument string
	OutputPath       string

	Err     *StepError
	State   State
	History []Transition
}

func newRunContext(in Input) *RunContext {
	style := in.Style
	if style == "" {
		style = DefaultStyle
	}
	return &RunContext{
		RunID:       uuid.New(),
		JobURL:      in.JobURL,
		ProfilePath: in.ProfilePath,
		StyleName:   style,
		State:       NotStarted,
	}
}

func (rc *RunContext) enter(state State, now time.Time) {
	rc.State = state
	rc.History = append(rc.History, Transition{State: state, At: now})
}

// Failed reports whether a step has failed
func (rc *RunContext) Failed() bool {
	return rc.Err != nil
}
