package identify

import (
	"mediaid/internal/media"
)

// Context is the per-request mutable pipeline state. It is created once
// per identification call, mutated only by the controller's stage loop,
// and discarded after the final record is returned.
type Context struct {
	Request   *media.Request
	Media     *media.Info
	Cached    *media.Info
	Errors    []error
	Completed bool
}

// NewContext seeds the pipeline state from a validated request.
func NewContext(req *media.Request) *Context {
	return &Context{
		Request: req,
		Media:   req.SeedInfo(),
	}
}

// Merge folds a stage's output into the evolving record.
func (c *Context) Merge(next *media.Info) {
	c.Media = media.Merge(c.Media, next)
}

// MediaType returns the current record's type.
func (c *Context) MediaType() media.Type {
	if c.Media == nil {
		return ""
	}
	return c.Media.MediaType
}

// HasMediaType reports whether the current type normalizes to movie or tv.
func (c *Context) HasMediaType() bool {
	return media.IsValidType(c.MediaType())
}

// HasTitle reports whether a title has been established.
func (c *Context) HasTitle() bool {
	return c.Media != nil && c.Media.Title != ""
}

// FilePath returns the request path, empty in metadata mode.
func (c *Context) FilePath() string {
	if c.Request == nil {
		return ""
	}
	return c.Request.FilePath
}

// AddError records a stage failure without deciding its severity.
func (c *Context) AddError(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}
