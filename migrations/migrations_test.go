package migrations_test

import (
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"go-cv-backend/migrations"
)

var fileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

func TestMigrationFilesArePaired(t *testing.T) {
	c := qt.New(t)

	entries, err := fs.ReadDir(migrations.FS, ".")
	c.Assert(err, qt.IsNil)

	ups := map[int]string{}
	downs := map[int]string{}
	for _, e := range entries {
		m := fileRe.FindStringSubmatch(e.Name())
		c.Assert(m, qt.Not(qt.IsNil), qt.Commentf("unexpected file %s", e.Name()))
		v, err := strconv.Atoi(m[1])
		c.Assert(err, qt.IsNil)
		if m[3] == "up" {
			ups[v] = m[2]
		} else {
			downs[v] = m[2]
		}
	}

	c.Assert(ups, qt.HasLen, len(downs))
	for v, name := range ups {
		c.Assert(downs[v], qt.Equals, name, qt.Commentf("version %d", v))
	}
	for v := 1; v <= len(ups); v++ {
		_, ok := ups[v]
		c.Assert(ok, qt.IsTrue, qt.Commentf("missing version %d", v))
	}
}

func TestCollectionRelationsCascade(t *testing.T) {
	c := qt.New(t)

	body, err := fs.ReadFile(migrations.FS, "000004_create_collections.up.sql")
	c.Assert(err, qt.IsNil)
	sql := string(body)

	for _, table := range []string{"collection_profiles", "collection_actors_use", "collection_actors_update"} {
		idx := strings.Index(sql, "CREATE TABLE IF NOT EXISTS "+table)
		c.Assert(idx >= 0, qt.IsTrue, qt.Commentf("table %s", table))
		c.Assert(sql[idx:], qt.Contains, "REFERENCES collections (id) ON DELETE CASCADE")
	}
	c.Assert(sql, qt.Contains, "UNIQUE (collection_name)")
}

func TestUserStatusReplacesFlag(t *testing.T) {
	c := qt.New(t)

	body, err := fs.ReadFile(migrations.FS, "000001_create_users.up.sql")
	c.Assert(err, qt.IsNil)
	c.Assert(string(body), qt.Contains, "'pending_activation', 'active', 'archived'")
	c.Assert(string(body), qt.Not(qt.Contains), "flag")
}
