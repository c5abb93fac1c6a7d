package media

import (
	"strings"

	"mediaid/internal/services"
	"mediaid/internal/textutil"
)

// RequestMode distinguishes the two request shapes.
type RequestMode string

const (
	ModeFilename RequestMode = "filename"
	ModeMetadata RequestMode = "metadata"
)

// Request describes one identification call. Construction validates the
// shape-specific invariants so no pipeline stage runs on malformed input.
type Request struct {
	Mode         RequestMode
	FilePath     string
	MediaType    Type
	Title        string
	Year         int
	Season       int
	Episode      int
	TMDBID       int64
	TMDBSeriesID int64
	IMDBID       string
}

// MetadataParams carries the fields of a metadata-mode request. Season and
// Episode are required when MediaType normalizes to tv.
type MetadataParams struct {
	MediaType    string
	Title        string
	Year         int
	Season       int
	Episode      int
	TMDBID       int64
	TMDBSeriesID int64
	IMDBID       string
}

// NewFilenameRequest builds a filename-mode request.
func NewFilenameRequest(path string) (*Request, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrInput, "request", "filename", "file path must be provided", nil)
	}
	return &Request{Mode: ModeFilename, FilePath: path}, nil
}

// NewMetadataRequest builds a metadata-mode request.
func NewMetadataRequest(params MetadataParams) (*Request, error) {
	kind, ok := NormalizeType(params.MediaType)
	if !ok {
		return nil, services.Wrap(services.ErrInput, "request", "metadata", "media type must be movie or tv", nil)
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, services.Wrap(services.ErrInput, "request", "metadata", "title must be provided", nil)
	}
	if params.Year == 0 {
		return nil, services.Wrap(services.ErrInput, "request", "metadata", "year must be provided", nil)
	}
	if !PlausibleYear(params.Year) {
		return nil, services.Wrap(services.ErrInput, "request", "metadata", "year outside plausible range", nil)
	}
	if kind == TypeTV && (params.Season < 1 || params.Episode < 1) {
		return nil, services.Wrap(services.ErrInput, "request", "metadata", "season and episode must be provided for tv requests", nil)
	}
	return &Request{
		Mode:         ModeMetadata,
		MediaType:    kind,
		Title:        title,
		Year:         params.Year,
		Season:       params.Season,
		Episode:      params.Episode,
		TMDBID:       params.TMDBID,
		TMDBSeriesID: params.TMDBSeriesID,
		IMDBID:       params.IMDBID,
	}, nil
}

// HasFilePath reports whether the request carries a usable path.
func (r *Request) HasFilePath() bool {
	return r != nil && strings.TrimSpace(r.FilePath) != ""
}

// SeedInfo builds the initial record the pipeline context starts from.
func (r *Request) SeedInfo() *Info {
	info := &Info{}
	if r == nil {
		return info
	}
	if r.Title != "" {
		info.Title = r.Title
		info.OriginalTitle = r.Title
		info.SearchableReference = textutil.SearchableReference(r.Title)
	}
	if r.MediaType != "" {
		info.MediaType = r.MediaType
	}
	info.Year = r.Year
	info.Season = r.Season
	info.Episode = r.Episode
	info.TMDBID = r.TMDBID
	info.TMDBSeriesID = r.TMDBSeriesID
	info.IMDBID = r.IMDBID
	return info
}
