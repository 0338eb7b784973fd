package ebuild

import (
	"os"
	"strings"
)

// DefaultResolvePasses is how many substitution passes run over the
// scanned variables unless the caller overrides it. Two passes resolve
// chains like A -> B -> C; deeper indirection stays literal.
const DefaultResolvePasses = 2

// Data holds the variables extracted from one ebuild.
// Keys are stored lowercase; lookups are case-insensitive.
type Data struct {
	vars map[string]string
}

// NewData creates an empty variable store
func NewData() *Data {
	return &Data{vars: make(map[string]string)}
}

// Insert stores a variable, lowercasing the name. Later inserts under
// the same name overwrite earlier ones.
func (d *Data) Insert(name, value string) {
	d.vars[strings.ToLower(name)] = value
}

// Get returns the value for name (case-insensitive) and whether it was set.
func (d *Data) Get(name string) (string, bool) {
	v, ok := d.vars[strings.ToLower(name)]
	return v, ok
}

// Lookup returns the value for name, or the empty string if unset.
func (d *Data) Lookup(name string) string {
	return d.vars[strings.ToLower(name)]
}

// Vars returns the underlying name -> value map.
func (d *Data) Vars() map[string]string {
	return d.vars
}

// Len returns the number of stored variables.
func (d *Data) Len() int {
	return len(d.vars)
}

// Scan reads an ebuild file and extracts its variable assignments.
// Only the file read can fail; parsing itself always succeeds.
func Scan(path string) (*Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content)), nil
}

// Parse extracts variable assignments from ebuild content.
// This is not a bash parser: it collects literal top-level assignments
// (scalars, quoted strings, arrays), skips shell functions, and applies
// best-effort substitution of previously seen variables. It never fails,
// no matter how malformed the input is.
func Parse(content string) *Data {
	return ParseOpts(content, DefaultResolvePasses)
}

// ParseOpts is Parse with an explicit number of resolution passes.
// Passes below zero are treated as zero (no cross-reference resolution).
func ParseOpts(content string, passes int) *Data {
	d := NewData()
	s := newScanner(content)
	for {
		name, value, ok := s.nextAssignment()
		if !ok {
			break
		}
		d.Insert(name, resolveSelf(d, name, value))
	}
	d.resolve(passes)
	return d
}
