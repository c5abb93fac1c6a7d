package store

import (
	"context"
	"errors"
	"testing"

	"mediaid/internal/media"
	"mediaid/internal/services"
)

// The guard clauses below must short-circuit before any pool access, so a
// zero-value Store is enough to exercise them.

func TestGetCachedRejectsUnknownColumn(t *testing.T) {
	s := &Store{}
	_, err := s.GetCached(context.Background(), "x", "", "overview; DROP TABLE cached_media")
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("err = %v, want ErrInput", err)
	}
}

func TestGetCachedByInfoRequiresTitleAndType(t *testing.T) {
	s := &Store{}
	cases := []*media.Info{
		nil,
		{},
		{Title: "The Matrix"},
		{MediaType: media.TypeMovie},
		{Title: "   ", MediaType: media.TypeMovie},
		{Title: "Breaking Bad", MediaType: media.TypeTV},            // tv without season/episode
		{Title: "Breaking Bad", MediaType: media.TypeTV, Season: 1}, // tv without episode
	}
	for i, obj := range cases {
		info, err := s.GetCachedByInfo(context.Background(), obj)
		if err != nil || info != nil {
			t.Fatalf("case %d: got (%+v, %v), want (nil, nil)", i, info, err)
		}
	}
}

func TestGetCachedByTMDBIDRejectsNonPositive(t *testing.T) {
	s := &Store{}
	for _, id := range []int64{0, -1} {
		info, err := s.GetCachedByTMDBID(context.Background(), id)
		if err != nil || info != nil {
			t.Fatalf("id %d: got (%+v, %v), want (nil, nil)", id, info, err)
		}
	}
}

func TestGetCachedTVEpisodeRejectsInvalidKeys(t *testing.T) {
	s := &Store{}
	cases := []struct {
		seriesID        int64
		season, episode int
	}{
		{0, 1, 1},
		{1396, 0, 1},
		{1396, 1, 0},
	}
	for _, tt := range cases {
		info, err := s.GetCachedTVEpisode(context.Background(), tt.seriesID, tt.season, tt.episode)
		if err != nil || info != nil {
			t.Fatalf("(%d,%d,%d): got (%+v, %v), want (nil, nil)", tt.seriesID, tt.season, tt.episode, info, err)
		}
	}
}

func TestInsertCachedMediaValidatesRecord(t *testing.T) {
	s := &Store{}
	_, err := s.InsertCachedMedia(context.Background(), &media.Info{Title: "incomplete"})
	if !errors.Is(err, services.ErrNotIdentified) {
		t.Fatalf("err = %v, want ErrNotIdentified", err)
	}
}

func TestUpdateCachedMediaRequiresNumericID(t *testing.T) {
	s := &Store{}
	if _, err := s.UpdateCachedMedia(context.Background(), &media.Info{}); !errors.Is(err, services.ErrInput) {
		t.Fatalf("missing id: err = %v, want ErrInput", err)
	}
	if _, err := s.UpdateCachedMedia(context.Background(), &media.Info{ID: "abc"}); !errors.Is(err, services.ErrInput) {
		t.Fatalf("non-numeric id: err = %v, want ErrInput", err)
	}
}

func TestNullHelpers(t *testing.T) {
	if nullString("") != nil || nullInt64(0) != nil || nullInt(0) != nil {
		t.Fatal("zero values must map to NULL")
	}
	if *nullString("x") != "x" || *nullInt64(7) != 7 || *nullInt(3) != 3 {
		t.Fatal("non-zero values must round-trip")
	}
	if derefString(nil) != "" || derefInt64(nil) != 0 || derefInt(nil) != 0 {
		t.Fatal("nil pointers must map to zero values")
	}
}
