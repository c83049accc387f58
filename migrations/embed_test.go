package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("no migrations embedded")
	}
	seen := map[string]int{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			seen[strings.TrimSuffix(name, ".up.sql")]++
		case strings.HasSuffix(name, ".down.sql"):
			seen[strings.TrimSuffix(name, ".down.sql")]++
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	for base, n := range seen {
		if n != 2 {
			t.Errorf("%s: expected up and down files", base)
		}
	}
}

func TestFormSubmissionsSchema(t *testing.T) {
	data, err := FS.ReadFile("000001_create_form_submissions.up.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, col := range []string{"reference_id", "contact_name", "payload", "submitted_at"} {
		if !strings.Contains(string(data), col) {
			t.Errorf("schema missing column %s", col)
		}
	}
}
