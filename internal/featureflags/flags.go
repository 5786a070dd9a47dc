// Package featureflags evaluates the FEATURE_FLAGS setting.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flag names understood by the course platform.
const (
	// TeacherOnlyCourses restricts course creation to accounts with the teacher role.
	TeacherOnlyCourses = "teacher_only_courses"
	// CourseDetailComments embeds the comment thread in course detail responses.
	CourseDetailComments = "course_detail_comments"
)

// Set holds flag values parsed from "name=value" pairs, e.g.
// "teacher_only_courses=on,course_detail_comments=50%".
type Set struct {
	values map[string]string
}

// Parse builds a Set, skipping malformed pairs.
func Parse(raw string) *Set {
	values := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		values[key] = value
	}
	return &Set{values: values}
}

// On reports whether name is switched on for everyone. Percentage rollouts count as off.
func (s *Set) On(name string) bool {
	return s.For(name, 0)
}

// For evaluates name for one user. "N%" values place users in a stable bucket.
func (s *Set) For(name string, userID uint) bool {
	if s == nil {
		return false
	}
	value, ok := s.values[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	if userID == 0 {
		return false
	}
	return bucket(name, userID) < pct
}

// Names returns the configured flag names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
