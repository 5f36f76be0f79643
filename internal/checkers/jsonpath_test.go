package checkers_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/poetry-bootstrap/internal/checkers"
)

const doc = `{"passed": false, "checks": [{"name": "poetry", "passed": true}], "count": 3}`

func TestJSONPathEquals_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Assert(doc, checkers.JSONPathEquals("$.passed"), false)
	c.Assert([]byte(doc), checkers.JSONPathEquals("$.checks[0].name"), "poetry")
	c.Assert(doc, checkers.JSONPathEquals("$.checks[0].passed"), true)
	c.Assert(doc, checkers.JSONPathEquals("$.count"), 3)
}

func TestJSONPathEquals_FailurePath(t *testing.T) {
	c := qt.New(t)
	checker := checkers.JSONPathEquals("$.checks[0].name")
	note := func(string, any) {}

	c.Run("mismatch", func(c *qt.C) {
		err := checker.Check(doc, []any{"python"}, note)
		c.Assert(err, qt.ErrorMatches, "value at JSONPath does not match")
	})

	c.Run("missing key", func(c *qt.C) {
		err := checkers.JSONPathEquals("$.nope").Check(doc, []any{"x"}, note)
		c.Assert(err, qt.ErrorMatches, "cannot evaluate JSONPath: .*")
	})

	c.Run("invalid JSON", func(c *qt.C) {
		err := checker.Check("{", []any{"x"}, note)
		c.Assert(qt.IsBadCheck(err), qt.IsTrue)
	})

	c.Run("unsupported got type", func(c *qt.C) {
		err := checker.Check(42, []any{"x"}, note)
		c.Assert(qt.IsBadCheck(err), qt.IsTrue)
	})
}
