package catalog

import (
	"io"
	"log/slog"
	"testing"

	"jobcatalog-engine/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustJob(t *testing.T, title, posted, typ, level, skill string) domain.Job {
	t.Helper()
	j, err := domain.FromRaw(domain.RawJob{Title: &title, Posted: posted, Type: typ, Level: level, Skill: skill})
	if err != nil {
		t.Fatalf("FromRaw(%q): %v", title, err)
	}
	return j
}

func titles(jobs []domain.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func assertTitles(t *testing.T, got []domain.Job, want ...string) {
	t.Helper()
	g := titles(got)
	if len(g) != len(want) {
		t.Fatalf("titles = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("titles = %v, want %v", g, want)
		}
	}
}
