package board

import (
	"context"
	"sort"
	"testing"

	"pgregory.net/rapid"

	"tableflip.dev/stickies/pkg/note"
)

func TestStoreInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(newRecorder())
		created := map[string]note.Note{}

		ops := rapid.IntRange(1, 60).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			ids := make([]string, 0, len(created))
			for id := range created {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			target := "missing"
			if len(ids) > 0 && rapid.Bool().Draw(t, "known") {
				target = rapid.SampledFrom(ids).Draw(t, "id")
			}

			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				n := s.Add(rapid.String().Draw(t, "title"), "", "")
				created[n.ID] = n
			case 1:
				s.UpdateProgress(target, rapid.Int().Draw(t, "progress"))
			case 2:
				s.UpdatePosition(target, note.Position{
					X: rapid.Float64Range(-1e6, 1e6).Draw(t, "x"),
					Y: rapid.Float64Range(-1e6, 1e6).Draw(t, "y"),
				})
			case 3:
				s.UpdateCurrentPage(target, note.Page(rapid.IntRange(-3, 5).Draw(t, "page")))
			case 4:
				s.Delete(target)
				delete(created, target)
			case 5:
				s.ArrangeNotes()
			}

			seen := map[string]bool{}
			for _, n := range s.Notes() {
				if seen[n.ID] {
					t.Fatalf("duplicate id %s", n.ID)
				}
				seen[n.ID] = true
				orig, ok := created[n.ID]
				if !ok {
					t.Fatalf("unexpected note %s", n.ID)
				}
				if !n.CreatedAt.Equal(orig.CreatedAt) {
					t.Fatalf("createdAt changed for %s", n.ID)
				}
				if n.UpdatedAt.Before(n.CreatedAt) {
					t.Fatalf("updatedAt before createdAt for %s", n.ID)
				}
				if n.Progress < note.MinProgress || n.Progress > note.MaxProgress {
					t.Fatalf("progress %d out of range", n.Progress)
				}
				if n.CurrentPage != note.PageContent && n.CurrentPage != note.PageDetail {
					t.Fatalf("page %d out of range", n.CurrentPage)
				}
				if n.Title == "" {
					t.Fatal("empty title")
				}
			}
			if len(seen) != len(created) {
				t.Fatalf("expected %d notes, got %d", len(created), len(seen))
			}
		}
		s.Flush(context.Background())
	})
}

func TestArrangeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestStore(newRecorder())
		count := rapid.IntRange(1, 40).Draw(t, "count")
		for i := 0; i < count; i++ {
			s.Add("n", "", "")
		}

		s.ArrangeNotes()
		first := s.Notes()
		s.ArrangeNotes()
		second := s.Notes()

		cols := GridColumns(count)
		for i := range first {
			if first[i].Position != second[i].Position {
				t.Fatalf("arrange not idempotent at %d: %+v vs %+v", i, first[i].Position, second[i].Position)
			}
			if first[i].Position != GridPosition(i, cols) {
				t.Fatalf("note %d at %+v, expected %+v", i, first[i].Position, GridPosition(i, cols))
			}
		}
	})
}
