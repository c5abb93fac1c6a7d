package identify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mediaid/internal/logging"
	"mediaid/internal/services"
)

// ExecutionError reports a fatal pipeline abort, naming the stage that
// caused it.
type ExecutionError struct {
	Stage string
	Err   error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pipeline aborted at stage %s", e.Stage)
	}
	return fmt.Sprintf("pipeline aborted at stage %s: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	if e.Err == nil {
		return services.ErrPipeline
	}
	return e.Err
}

// Is lets errors.Is treat every execution error as a pipeline error.
func (e *ExecutionError) Is(target error) bool {
	return target == services.ErrPipeline
}

// runStages iterates the pipeline in order, mutating pctx as stages
// contribute evidence. A StepDone marks the context completed; a StepFatal
// surfaces as an ExecutionError.
func runStages(ctx context.Context, pctx *Context, stages []Stage, log *slog.Logger) (err error) {
	for _, stage := range stages {
		if stage.Handles != nil && !stage.Handles(pctx) {
			continue
		}
		result := invokeGuarded(ctx, pctx, stage)
		log.Debug("stage finished", logging.FieldStage, stage.Name, "result", result.String())

		switch result {
		case StepDone:
			pctx.Completed = true
			return nil
		case StepFatal:
			return &ExecutionError{Stage: stage.Name, Err: errors.Join(pctx.Errors...)}
		}
	}
	return nil
}

// invokeGuarded converts a stage panic into a fatal result; stages are
// expected to communicate through StepResult, not exceptions.
func invokeGuarded(ctx context.Context, pctx *Context, stage Stage) (result StepResult) {
	defer func() {
		if r := recover(); r != nil {
			pctx.AddError(services.Wrap(services.ErrPipeline, "identify", stage.Name, fmt.Sprintf("stage panic: %v", r), nil))
			result = StepFatal
		}
	}()
	return stage.Invoke(ctx, pctx)
}
