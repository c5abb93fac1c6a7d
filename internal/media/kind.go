package media

import "strings"

// Type identifies the kind of media a record describes.
type Type string

const (
	TypeMovie   Type = "movie"
	TypeTV      Type = "tv"
	TypeUnknown Type = "unknown"
)

var typeAliases = map[string]Type{
	"tv":       TypeTV,
	"tv show":  TypeTV,
	"tv shows": TypeTV,
	"tvshow":   TypeTV,
	"series":   TypeTV,
	"episode":  TypeTV,
	"scripted": TypeTV,
	"film":     TypeMovie,
	"movie":    TypeMovie,
	"movies":   TypeMovie,
}

// NormalizeType maps a user- or model-supplied token onto the closed
// {movie, tv} vocabulary. Dashes and underscores are tolerated. The second
// return value reports whether the token was recognized.
func NormalizeType(value string) (Type, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return TypeUnknown, false
	}
	if normalized == string(TypeMovie) || normalized == string(TypeTV) {
		return Type(normalized), true
	}

	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	replaced = strings.TrimSpace(replaced)
	if kind, ok := typeAliases[replaced]; ok {
		return kind, true
	}

	squeezed := strings.ReplaceAll(replaced, " ", "")
	if kind, ok := typeAliases[squeezed]; ok {
		return kind, true
	}
	return TypeUnknown, false
}

// IsValidType reports whether the value normalizes to movie or tv.
func IsValidType(value Type) bool {
	_, ok := NormalizeType(string(value))
	return ok
}

// IsMovie reports whether the value normalizes to movie.
func IsMovie(value Type) bool {
	kind, ok := NormalizeType(string(value))
	return ok && kind == TypeMovie
}

// IsTV reports whether the value normalizes to tv.
func IsTV(value Type) bool {
	kind, ok := NormalizeType(string(value))
	return ok && kind == TypeTV
}
