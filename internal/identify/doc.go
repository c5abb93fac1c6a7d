// Package identify composes the staged identification pipeline. A request
// enters as a filename or as explicit metadata, flows through parser,
// cache, classifier, and catalog stages in a fixed order, and leaves as a
// fully identified record or a miss.
//
// Stages communicate through StepResult values; the controller is the only
// code that advances the pipeline, and the Identifier façade owns retry
// and persistence policy.
package identify
