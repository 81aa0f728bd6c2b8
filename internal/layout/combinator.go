package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	appErrors "wsb/internal/errors"
)

// Fields is the bag of named values an entity is built from: transformed
// pattern captures merged with the fields its entry validator contributed.
type Fields map[string]interface{}

// CombineStrategy merges sibling matches of one rule into a single field.
type CombineStrategy int

const (
	// Collect produces an ordered list of built items, preserving the
	// sorted-child order of the directory listing.
	Collect CombineStrategy = iota
	// Exists produces true if any child matched the rule. Used for
	// sentinel entries such as .git or data/ whose presence is the value.
	Exists
)

// Builder constructs the typed item for one matched child from its path
// and resolved fields. Exists rules carry no builder.
type Builder func(path string, fields Fields) (interface{}, error)

// Rule binds a naming pattern to a nested entry validator, a combine
// strategy, and a builder. The name identifies the rule in match errors
// and becomes the field name in the combinator's result.
type Rule struct {
	Name    string
	Pattern *Pattern
	Entry   Entry
	Combine CombineStrategy
	Build   Builder
}

type childMatch struct {
	rule   *Rule
	fields Fields
}

// resolveDir matches every immediate child of dir against rules and folds
// the results into one field per rule name. Children are processed in
// sorted-by-name order, which fixes the ordering of everything built from
// them. Every child must match exactly one rule: zero or multiple matches
// abort the load.
func resolveDir(dir string, rules []Rule) (Fields, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	collected := make(map[string][]interface{})
	present := make(map[string]bool)

	for _, child := range children {
		childPath := filepath.Join(dir, child.Name())

		var matches []childMatch
		for i := range rules {
			rule := &rules[i]

			captured, ok, err := rule.Pattern.Match(child.Name())
			if err != nil {
				return nil, fmt.Errorf("matching %s: %w", childPath, err)
			}
			if !ok {
				continue
			}

			contributed, err := rule.Entry.Validate(childPath)
			if errors.Is(err, ErrNoMatch) {
				continue
			}
			if err != nil {
				return nil, err
			}

			merged := make(Fields, len(captured)+len(contributed))
			for k, v := range captured {
				merged[k] = v
			}
			for k, v := range contributed {
				merged[k] = v
			}
			matches = append(matches, childMatch{rule: rule, fields: merged})
		}

		switch len(matches) {
		case 0:
			return nil, appErrors.NewMatchError(childPath, ruleNames(rules))
		case 1:
			// fall through below
		default:
			return nil, appErrors.NewAmbiguousMatchError(childPath, matchNames(matches))
		}

		match := matches[0]
		switch match.rule.Combine {
		case Collect:
			item, err := match.rule.Build(childPath, match.fields)
			if err != nil {
				return nil, fmt.Errorf("building %s: %w", childPath, err)
			}
			collected[match.rule.Name] = append(collected[match.rule.Name], item)
		case Exists:
			present[match.rule.Name] = true
		}
	}

	result := make(Fields, len(rules))
	for i := range rules {
		rule := &rules[i]
		switch rule.Combine {
		case Collect:
			result[rule.Name] = collected[rule.Name]
		case Exists:
			result[rule.Name] = present[rule.Name]
		}
	}
	return result, nil
}

func ruleNames(rules []Rule) []string {
	names := make([]string, len(rules))
	for i := range rules {
		names[i] = rules[i].Name
	}
	return names
}

func matchNames(matches []childMatch) []string {
	names := make([]string, len(matches))
	for i := range matches {
		names[i] = matches[i].rule.Name
	}
	return names
}
