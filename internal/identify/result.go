package identify

// StepResult is the outcome a stage reports to the controller.
type StepResult int

const (
	// StepSuccess means the stage ran and the pipeline continues.
	StepSuccess StepResult = iota
	// StepSkip means the stage opted out; the pipeline continues.
	StepSkip
	// StepDone short-circuits the pipeline with the current answer.
	StepDone
	// StepFatal aborts the request.
	StepFatal
)

func (r StepResult) String() string {
	switch r {
	case StepSuccess:
		return "success"
	case StepSkip:
		return "skip"
	case StepDone:
		return "done"
	case StepFatal:
		return "fatal"
	default:
		return "unknown"
	}
}
