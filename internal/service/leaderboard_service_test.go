package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"defi_quest/internal/repository"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"xp", "xp"},
		{"streak", "streak"},
		{"consistency", "consistency"},
		{"", "xp"},
		{"total_xp; DROP TABLE users", "xp"},
	}

	for _, tc := range cases {
		if got := normalizeType(tc.in); got != tc.want {
			t.Fatalf("normalizeType(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestLeaderboardCacheHit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// userRepo is nil: a cache hit must be served without touching the DB
	s := &LeaderboardService{
		redis:    client,
		cacheTTL: 30 * time.Second,
	}

	cached := []repository.LeaderboardEntry{
		{Rank: 1, UserID: 7, Username: "alice", TotalXP: 4200},
		{Rank: 2, UserID: 9, Username: "bob", TotalXP: 3100},
	}
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatal(err)
	}
	if err := mr.Set("lb:xp:10", string(data)); err != nil {
		t.Fatal(err)
	}

	entries, err := s.GetTop(context.Background(), "xp", 10)
	if err != nil {
		t.Fatalf("GetTop: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}
	if entries[0].Username != "alice" || entries[0].Rank != 1 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestLeaderboardCacheKeyNormalized(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := &LeaderboardService{
		redis:    client,
		cacheTTL: 30 * time.Second,
	}

	// unknown type falls back to xp, so the xp cache entry must be used
	data, _ := json.Marshal([]repository.LeaderboardEntry{{Rank: 1, UserID: 1, Username: "alice", TotalXP: 10}})
	if err := mr.Set("lb:xp:10", string(data)); err != nil {
		t.Fatal(err)
	}

	entries, err := s.GetTop(context.Background(), "bogus", 10)
	if err != nil {
		t.Fatalf("GetTop: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries; want 1 from normalized cache key", len(entries))
	}
}
