package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books_data.json")
	return Open(path, nil), path
}

func mustCreate(t *testing.T, s *Store, books ...Book) {
	t.Helper()
	for _, b := range books {
		if err := s.Create(b); err != nil {
			t.Fatalf("Create(%q) failed: %v", b.Title, err)
		}
	}
}

var dune = Book{Title: "Dune", Author: "Frank Herbert", Year: "1965", Genre: "Science Fiction", Read: true}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, path := newTestStore(t)

	if s.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d books", s.Len())
	}
	if s.Path() != path {
		t.Fatalf("unexpected path: got %q want %q", s.Path(), path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("opening must not create the file, stat err = %v", err)
	}
}

func TestOpenMalformedFileStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"invalid json":  `[{"title": "Dune",`,
		"object root":   `{"title": "Dune"}`,
		"wrong type":    `[{"title": "Dune", "read": "yes"}]`,
		"empty file":    ``,
		"whitespace":    "  \n",
		"explicit null": `null`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books_data.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := Open(path, nil)
			if s.Len() != 0 {
				t.Fatalf("expected empty catalog, got %d books", s.Len())
			}
		})
	}
}

func TestOpenAcceptsNumericYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books_data.json")
	content := `[
		{"title": "Dune", "author": "Frank Herbert", "years": 1965, "genre": "SF", "read": true},
		{"title": "Emma", "author": "Jane Austen", "years": "1815", "genre": "Novel", "read": false},
		{"title": "Nameless", "author": "", "years": null, "genre": "", "read": false}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path, nil)
	got := s.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 books, got %+v", got)
	}
	if got[0].Year != "1965" || got[1].Year != "1815" || got[2].Year != "" {
		t.Fatalf("unexpected years: %q %q %q", got[0].Year, got[1].Year, got[2].Year)
	}

	mustCreate(t, s, Book{Title: "New"})
	titles := make([]string, 0, 4)
	for _, b := range Open(path, nil).List() {
		titles = append(titles, b.Title)
	}
	if want := []string{"Dune", "Emma", "Nameless", "New"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("books lost after write: got %v want %v", titles, want)
	}
}

func TestOpenSkipsOnlyUndecodableRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books_data.json")
	content := `[
		{"title": "Dune", "years": "1965", "read": true},
		{"title": "Broken", "read": "yes"},
		{"title": "Odd year", "years": true},
		{"title": "Emma", "years": "1815"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Open(path, nil).List()
	if len(got) != 2 || got[0].Title != "Dune" || got[1].Title != "Emma" {
		t.Fatalf("expected the two valid records, got %+v", got)
	}
}

func TestPersistKeepsLineSeparatorsLiteral(t *testing.T) {
	s, path := newTestStore(t)
	title := "a\u2028b\u2029c"
	mustCreate(t, s, Book{Title: title, Author: `back\\u2028slash`})

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"title": "`+title+`"`) {
		t.Fatalf("expected literal line separators, got %q", got)
	}
	if !strings.Contains(string(got), `"author": "back\\\\u2028slash"`) {
		t.Fatalf("escaped backslash must be kept, got %q", got)
	}
	if reloaded := Open(path, nil).List(); reloaded[0].Title != title || reloaded[0].Author != `back\\u2028slash` {
		t.Fatalf("round trip mismatch: %+v", reloaded[0])
	}
}

func TestDeleteFoldsCase(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, Book{Title: "Straße"}, Book{Title: "Strasse Zwei"})

	removed, err := s.Delete("STRASSE")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != 1 || s.List()[0].Title != "Strasse Zwei" {
		t.Fatalf("expected folded match on Straße only, removed=%d books=%+v", removed, s.List())
	}
}

func TestOpenUnreadablePathStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty catalog when path is a directory, got %d", s.Len())
	}
}

func TestOpenEmptyPathUsesDefaultFileName(t *testing.T) {
	t.Chdir(t.TempDir())
	s := Open("  ", nil)
	if s.Path() != DefaultFileName {
		t.Fatalf("unexpected path: %q", s.Path())
	}
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	s, path := newTestStore(t)
	want := []Book{
		dune,
		{Title: "Кобзар", Author: "Тарас Шевченко", Year: "1840", Genre: "Poetry"},
		{Title: "", Author: "", Year: "", Genre: "", Read: false},
		{Title: "Dune", Author: "Someone Else", Year: "circa 2000", Genre: "Parody", Read: true},
	}
	mustCreate(t, s, want...)

	reloaded := Open(path, nil)
	if got := reloaded.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestPersistFormat(t *testing.T) {
	s, path := newTestStore(t)
	mustCreate(t, s, Book{Title: "Über <Alles> & mehr", Author: "Jürgen", Year: "1999", Genre: "Fiction"})

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
    {
        "title": "Über <Alles> & mehr",
        "author": "Jürgen",
        "years": "1999",
        "genre": "Fiction",
        "read": false
    }
]`
	if string(got) != want {
		t.Fatalf("unexpected file contents:\n%s\nwant:\n%s", got, want)
	}
}

func TestPersistEmptyCatalogWritesEmptyArray(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := s.Delete("nothing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("delete must persist even when nothing matched: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestCreateAppends(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, dune)

	before := s.Len()
	added := Book{Title: "Emma", Author: "Jane Austen", Year: "1815", Genre: "Novel"}
	mustCreate(t, s, added)

	if s.Len() != before+1 {
		t.Fatalf("expected %d books, got %d", before+1, s.Len())
	}
	books := s.List()
	if books[len(books)-1] != added {
		t.Fatalf("expected new book last, got %+v", books[len(books)-1])
	}
}

func TestCreateAllowsDuplicates(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, dune, dune)
	if s.Len() != 2 {
		t.Fatalf("expected duplicates to be kept, got %d books", s.Len())
	}
}

func TestDeleteIsCaseInsensitiveAndExhaustive(t *testing.T) {
	s, path := newTestStore(t)
	emma := Book{Title: "Emma", Author: "Jane Austen"}
	mustCreate(t, s,
		Book{Title: "Dune", Author: "Frank Herbert"},
		emma,
		Book{Title: "DUNE", Author: "Frank Herbert"},
	)

	removed, err := s.Delete("dune")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if got := s.List(); !reflect.DeepEqual(got, []Book{emma}) {
		t.Fatalf("unexpected remaining books: %+v", got)
	}

	if got := Open(path, nil).List(); !reflect.DeepEqual(got, []Book{emma}) {
		t.Fatalf("delete not persisted, reloaded %+v", got)
	}
}

func TestDeleteMatchesWholeTitleOnly(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, dune, Book{Title: "Dune Messiah"})

	removed, err := s.Delete("Dune")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != 1 || s.Len() != 1 || s.List()[0].Title != "Dune Messiah" {
		t.Fatalf("expected only the exact title removed, removed=%d books=%+v", removed, s.List())
	}
}

func TestDeleteUnknownTitleLeavesCatalogUnchanged(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, dune)
	before := s.List()

	removed, err := s.Delete("Neuromancer")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}
	if !reflect.DeepEqual(s.List(), before) {
		t.Fatalf("catalog changed: %+v", s.List())
	}
}

func TestDeleteNonASCIITitleIgnoresCase(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, Book{Title: "Über"}, Book{Title: "ÜBER"})

	removed, err := s.Delete("über")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected both spellings removed, got %d", removed)
	}
}

func TestSearchMatchesTitleOrAuthorIgnoringCase(t *testing.T) {
	s, _ := newTestStore(t)
	emma := Book{Title: "Emma", Author: "Jane Austen"}
	mustCreate(t, s, dune, emma)

	for _, query := range []string{"dune", "herbert", "ERBE", "Dune"} {
		got := s.Search(query)
		if !reflect.DeepEqual(got, []Book{dune}) {
			t.Errorf("Search(%q) = %+v, want only Dune", query, got)
		}
	}

	if got := s.Search("xyz"); got == nil || len(got) != 0 {
		t.Errorf("Search(xyz) = %#v, want empty non-nil slice", got)
	}
}

func TestSearchEmptyQueryReturnsAllInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	books := []Book{dune, {Title: "Emma", Author: "Jane Austen"}, {Title: "Ulysses", Author: "James Joyce"}}
	mustCreate(t, s, books...)

	if got := s.Search(""); !reflect.DeepEqual(got, books) {
		t.Fatalf("Search(\"\") = %+v, want %+v", got, books)
	}
}

func TestSearchPreservesCatalogOrder(t *testing.T) {
	s, _ := newTestStore(t)
	first := Book{Title: "The Jungle", Author: "Upton Sinclair"}
	second := Book{Title: "Emma", Author: "Jane Austen"}
	third := Book{Title: "Jane Eyre", Author: "Charlotte Brontë"}
	mustCreate(t, s, first, second, third)

	got := s.Search("jan")
	if !reflect.DeepEqual(got, []Book{second, third}) {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreate(t, s, dune)

	books := s.List()
	books[0].Title = "Mutated"

	if s.List()[0].Title != "Dune" {
		t.Fatal("List must not expose internal state")
	}
}

func TestListEmptyCatalog(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestProgress(t *testing.T) {
	s, _ := newTestStore(t)

	total, percent := s.Progress()
	if total != 0 || percent != 0 {
		t.Fatalf("empty catalog progress = (%d, %v), want (0, 0)", total, percent)
	}

	mustCreate(t, s,
		Book{Title: "A", Read: true},
		Book{Title: "B"},
		Book{Title: "C"},
		Book{Title: "D"},
	)
	total, percent = s.Progress()
	if total != 4 || percent != 25.0 {
		t.Fatalf("progress = (%d, %v), want (4, 25)", total, percent)
	}

	mustCreate(t, s, Book{Title: "E", Read: true}, Book{Title: "F", Read: true})
	total, percent = s.Progress()
	if total != 6 || percent != 50.0 {
		t.Fatalf("progress = (%d, %v), want (6, 50)", total, percent)
	}
}

func TestMutationsSurviveReopen(t *testing.T) {
	s, path := newTestStore(t)
	mustCreate(t, s, dune)

	if got := Open(path, nil).Len(); got != 1 {
		t.Fatalf("create not persisted, reopened store has %d books", got)
	}

	if _, err := s.Delete("DUNE"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := Open(path, nil).Len(); got != 0 {
		t.Fatalf("delete not persisted, reopened store has %d books", got)
	}
}

func TestCreateWriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books_data.json")
	// A non-empty directory at the target path makes the final rename fail.
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := Open(path, nil)
	if err := s.Create(dune); err == nil {
		t.Fatal("expected persist error")
	}
	if s.Len() != 0 {
		t.Fatalf("failed create must not be kept in memory, got %d books", s.Len())
	}
}

func TestDeleteWriteFailureRollsBack(t *testing.T) {
	s, path := newTestStore(t)
	mustCreate(t, s, dune)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Delete("dune"); err == nil {
		t.Fatal("expected persist error")
	}
	if s.Len() != 1 {
		t.Fatalf("failed delete must leave catalog intact, got %d books", s.Len())
	}
}

func TestBookString(t *testing.T) {
	got := dune.String()
	want := "Dune by Frank Herbert (1965) - Science Fiction - Read"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if (Book{}).Status() != "Unread" {
		t.Fatal("zero book should be unread")
	}
}
