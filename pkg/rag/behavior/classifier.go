package behavior

import (
	"regexp"
	"strings"
)

// Classifier maps a message to a Category using per-category trigger
// patterns. Categories are scanned in registration order and the first
// pattern match wins; a message that matches nothing classifies as General.
//
// RegisterCategories seeds every category with an empty pattern list, so a
// classifier with no explicitly added patterns always returns General. That
// mirrors the behavior of the original service; pattern inference from
// template text was considered and rejected as a silent behavior change.
type Classifier struct {
	order    []Category
	patterns map[Category][]*regexp.Regexp
}

func NewClassifier() *Classifier {
	return &Classifier{
		patterns: make(map[Category][]*regexp.Regexp),
	}
}

// RegisterCategories resets the classifier to the given set of categories,
// each starting with zero patterns. The iteration order of later Classify
// calls follows the order given here.
func (c *Classifier) RegisterCategories(categories []Category) {
	c.order = make([]Category, 0, len(categories))
	c.patterns = make(map[Category][]*regexp.Regexp, len(categories))
	for _, cat := range categories {
		c.order = append(c.order, cat)
		c.patterns[cat] = nil
	}
}

// AddPattern registers a trigger pattern for a category. The pattern is a
// regular expression matched against the lower-cased message. An invalid
// pattern is reported to the caller and leaves the classifier unchanged.
func (c *Classifier) AddPattern(cat Category, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	if _, known := c.patterns[cat]; !known {
		c.order = append(c.order, cat)
	}
	c.patterns[cat] = append(c.patterns[cat], re)
	return nil
}

// Classify returns the category of the first matching pattern, or General.
func (c *Classifier) Classify(message string) Category {
	lowered := strings.ToLower(message)
	for _, cat := range c.order {
		for _, re := range c.patterns[cat] {
			if re.MatchString(lowered) {
				return cat
			}
		}
	}
	return General
}
