// Package tmdb is a typed client for The Movie Database HTTP API. Every
// operation maps the provider payload onto the canonical media.Info record;
// callers never see raw TMDB JSON.
//
// Series-level operations populate only the series ID so that episode-level
// lookups can later claim the record's primary ID for the episode itself.
package tmdb
