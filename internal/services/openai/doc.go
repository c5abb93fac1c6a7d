// Package openai implements the language-model fallback classifier. It
// exposes four narrow extraction operations over release filenames; every
// call sends a fixed instruction plus a task description and the literal
// path, and accepts only the exact output shape the task specifies.
//
// Failures are soft: a rate limit, transport error, or malformed model
// output yields the zero value, never an error. Token usage of successful
// calls is handed to the configured Recorder together with the request ID
// carried in the context.
package openai
