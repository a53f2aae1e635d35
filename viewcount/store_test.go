package viewcount

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "views.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
	if len(s.salt) != 64 {
		t.Fatalf("salt length = %d, want 64", len(s.salt))
	}
}

func TestSaltPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.db")
	s1, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	id1 := s1.VisitorID("203.0.113.1", "Mozilla/5.0")
	s1.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if id2 := s2.VisitorID("203.0.113.1", "Mozilla/5.0"); id1 != id2 {
		t.Fatalf("visitor id changed across reopen: %q vs %q", id1, id2)
	}
}

func TestVisitorIDDiffers(t *testing.T) {
	s := setupTestStore(t)
	a := s.VisitorID("203.0.113.1", "Mozilla/5.0")
	b := s.VisitorID("203.0.113.2", "Mozilla/5.0")
	if a == b {
		t.Fatal("different IPs produced the same visitor id")
	}
	if len(a) != 16 {
		t.Fatalf("visitor id length = %d", len(a))
	}
}

func TestViewsUnknownSlugIsZero(t *testing.T) {
	s := setupTestStore(t)
	n, err := s.Views(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Views: %v", err)
	}
	if n != 0 {
		t.Fatalf("Views = %d, want 0", n)
	}
}

func TestHitDeduplicatesPerVisitorPerDay(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	counted, err := s.Hit(ctx, "k8s-intro", "v1", day)
	if err != nil || !counted {
		t.Fatalf("first hit = %v, %v", counted, err)
	}
	counted, err = s.Hit(ctx, "k8s-intro", "v1", day.Add(3*time.Hour))
	if err != nil || counted {
		t.Fatalf("repeat hit same day = %v, %v", counted, err)
	}
	if _, err := s.Hit(ctx, "k8s-intro", "v2", day); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Hit(ctx, "k8s-intro", "v1", day.AddDate(0, 0, 1)); err != nil {
		t.Fatal(err)
	}

	n, err := s.Views(ctx, "k8s-intro")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("Views = %d, want 3", n)
	}
}

func TestTopOrdersByViews(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()
	for i, v := range []string{"a", "b", "c"} {
		if _, err := s.Hit(ctx, "popular", v, now); err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			if _, err := s.Hit(ctx, "quiet", v, now); err != nil {
				t.Fatal(err)
			}
		}
	}
	top, err := s.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Slug != "popular" || top[0].Views != 3 || top[1].Views != 1 {
		t.Fatalf("Top = %+v", top)
	}
}

func TestCleanupKeepsTotals(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	old := time.Now().UTC().AddDate(0, 0, -10)
	if _, err := s.Hit(ctx, "post", "v1", old); err != nil {
		t.Fatal(err)
	}
	if err := s.CleanupVisitors(2); err != nil {
		t.Fatalf("CleanupVisitors: %v", err)
	}
	var rows int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM view_visitors`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 0 {
		t.Fatalf("visitor rows = %d, want 0", rows)
	}
	if n, _ := s.Views(ctx, "post"); n != 1 {
		t.Fatalf("Views after cleanup = %d, want 1", n)
	}
}

func TestSettings(t *testing.T) {
	s := setupTestStore(t)
	if v, err := s.GetSetting("absent"); err != nil || v != "" {
		t.Fatalf("GetSetting(absent) = %q, %v", v, err)
	}
	if err := s.SetSetting("k", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("k", "2"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.GetSetting("k"); v != "2" {
		t.Fatalf("GetSetting(k) = %q", v)
	}
}

func TestIsBot(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (compatible; Googlebot/2.1)", true},
		{"curl/8.4.0", true},
		{"", true},
		{"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36", false},
	}
	for _, tt := range tests {
		if got := IsBot(tt.ua); got != tt.want {
			t.Errorf("IsBot(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}
