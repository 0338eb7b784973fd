package ebuild

import (
	"sort"
	"strings"
)

// resolveSelf substitutes references to name inside its own new value
// with the variable's previous value, supporting accumulation idioms
// like IUSE="${IUSE} extra". Both ${NAME} and $NAME are tried, in both
// upper- and lowercase spelling. Without a prior value the reference
// stays literal.
func resolveSelf(d *Data, name, value string) string {
	for _, spelling := range []string{strings.ToUpper(name), strings.ToLower(name)} {
		braced := "${" + spelling + "}"
		bare := "$" + spelling
		if !strings.Contains(value, braced) && !strings.Contains(value, bare) {
			continue
		}
		prev, ok := d.Get(name)
		if !ok {
			continue
		}
		value = strings.ReplaceAll(value, braced, prev)
		value = strings.ReplaceAll(value, bare, prev)
	}
	return value
}

// resolve runs up to the given number of substitution passes over the
// stored variables, replacing ${KEY} and $KEY references with already
// known values. Each pass reads a snapshot taken at its start and
// applies its replacements atomically at its end, so results within one
// pass never see each other; the next pass picks them up. References
// still unresolved when the passes are spent stay literal.
func (d *Data) resolve(passes int) {
	for pass := 0; pass < passes; pass++ {
		snapshot := make(map[string]string, len(d.vars))
		for k, v := range d.vars {
			snapshot[k] = v
		}
		names := substitutionOrder(snapshot)

		updates := make(map[string]string)
		for key, value := range snapshot {
			if !strings.Contains(value, "$") {
				continue
			}
			resolved := substituteAll(value, names, snapshot)
			if resolved != value {
				updates[key] = resolved
			}
		}
		if len(updates) == 0 {
			return
		}
		for key, value := range updates {
			d.vars[key] = value
		}
	}
}

// substitutionOrder returns the variable names longest first, ties
// broken lexicographically. A bare reference like $ABC must never be
// claimed by a shorter name such as $AB, and map iteration order must
// not leak into the result.
func substitutionOrder(vars map[string]string) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// substituteAll replaces every ${KEY}/$KEY occurrence in value with the
// matching entry from vars, trying each key in upper- and lowercase.
func substituteAll(value string, names []string, vars map[string]string) string {
	for _, name := range names {
		replacement := vars[name]
		for _, spelling := range []string{strings.ToUpper(name), strings.ToLower(name)} {
			value = strings.ReplaceAll(value, "${"+spelling+"}", replacement)
			value = strings.ReplaceAll(value, "$"+spelling, replacement)
		}
	}
	return value
}
