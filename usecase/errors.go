package usecase

import (
	"errors"
	"fmt"
)

// Pipeline stage names carried by StageError so failures can be
// reported per stage.
const (
	StageValidate        = "validate"
	StageBookContext     = "book_context"
	StageSaveUpload      = "save_upload"
	StageConvertWaveform = "convert_waveform"
	StageConvertPlayback = "convert_playback"
	StageAnnotate        = "annotate"
	StageExtract         = "extract"
	StageSynthesize      = "synthesize"
	StagePersist         = "persist"
	StageHistory         = "append_history"
)

// StageError tags a pipeline failure with the stage it happened in.
// Validation and missing-book failures are the caller's fault; every
// downstream stage is a server fault.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// IsClientFault reports whether err is a request-validation failure
// that maps to a client error response.
func IsClientFault(err error) bool {
	var se *StageError
	if !errors.As(err, &se) {
		return false
	}
	return se.Stage == StageValidate || se.Stage == StageBookContext
}

// StageOf returns the pipeline stage a failure happened in, or an
// empty string for untagged errors.
func StageOf(err error) string {
	var se *StageError
	if !errors.As(err, &se) {
		return ""
	}
	return se.Stage
}
