package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Transform converts one captured group value into its typed form.
type Transform func(value string) (interface{}, error)

// Pattern matches a single path component against an anchored regular
// expression and extracts its named capture groups. A transform registered
// for a group name runs after extraction; groups without a transform are
// kept as raw strings. Patterns never touch the filesystem.
type Pattern struct {
	re         *regexp.Regexp
	transforms map[string]Transform
}

// NewPattern compiles expr into a Pattern. The expression must be anchored
// by the caller; group names become field names in the match result.
func NewPattern(expr string, transforms map[string]Transform) *Pattern {
	return &Pattern{
		re:         regexp.MustCompile(expr),
		transforms: transforms,
	}
}

// Match applies the pattern to one path component. It returns the captured
// and transformed fields, or ok=false when the name does not match. A
// transform failure is a hard error: the grammar accepted a value the
// model cannot represent.
func (p *Pattern) Match(name string) (Fields, bool, error) {
	submatch := p.re.FindStringSubmatch(name)
	if submatch == nil {
		return nil, false, nil
	}

	fields := make(Fields)
	for i, groupName := range p.re.SubexpNames() {
		if i == 0 || groupName == "" {
			continue
		}
		value := submatch[i]

		if transform, ok := p.transforms[groupName]; ok {
			transformed, err := transform(value)
			if err != nil {
				return nil, false, fmt.Errorf("transforming %s %q: %w", groupName, value, err)
			}
			fields[groupName] = transformed
			continue
		}
		fields[groupName] = value
	}

	return fields, true, nil
}

// String returns the pattern's source expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// toPort parses a port capture as a decimal integer. Leading zeros are
// accepted and parsed as base 10; the range is deliberately unbounded.
func toPort(value string) (interface{}, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// toRemotePath rewrites a dir_ name suffix into the absolute remote path:
// underscores become slashes, dots are preserved.
func toRemotePath(value string) (interface{}, error) {
	return "/" + strings.ReplaceAll(value, "_", "/"), nil
}
