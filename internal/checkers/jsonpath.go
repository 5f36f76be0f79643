// Package checkers provides quicktest checkers shared by the test suites.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

type jsonPathChecker struct {
	path string
}

// JSONPathEquals returns a checker that decodes the got JSON document
// ([]byte or string), evaluates path against it and compares the result with
// the wanted value. Wanted values are compared after a JSON round trip, so
// 3 and 3.0 are equal.
//
//	c.Assert(out, checkers.JSONPathEquals("$.checks[0].passed"), true)
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

// ArgNames implements qt.Checker.
func (c *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

// Check implements qt.Checker.
func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return qt.BadCheckf("got value is not []byte or string: %T", got)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return qt.BadCheckf("got value is not valid JSON: %v", err)
	}
	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		note("path", c.path)
		return fmt.Errorf("cannot evaluate JSONPath: %w", err)
	}

	want, err := normalize(args[0])
	if err != nil {
		return qt.BadCheckf("want value cannot be encoded as JSON: %v", err)
	}
	if !reflect.DeepEqual(value, want) {
		note("path", c.path)
		note("value at path", value)
		return errors.New("value at JSONPath does not match")
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(b, &out)
	return out, err
}
