package profile

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Changes summarizes how a tailored profile differs from its original
type Changes struct {
	SummaryChanged     bool
	ExperienceReorder  bool
	ChangedPositions   []string
	AddedSkills        []string
	RemovedSkills      []string
	AddedPositions     []string
	RemovedPositions   []string
	SkillCategoryOrder []string
}

// HasInventedContent reports whether the tailored profile names skills or
// positions that the original does not contain
func (c *Changes) HasInventedContent() bool {
	return len(c.AddedSkills) > 0 || len(c.AddedPositions) > 0
}

// Diff compares an original profile with its tailored version.
// Skills are compared case-insensitively; positions by title and company.
func Diff(original, tailored *types.Profile) *Changes {
	c := &Changes{
		SummaryChanged: strings.TrimSpace(original.Summary) != strings.TrimSpace(tailored.Summary),
	}

	c.AddedSkills, c.RemovedSkills = setDiff(original.SkillNames(), tailored.SkillNames())

	origKeys := positionKeys(original.Experience)
	tailKeys := positionKeys(tailored.Experience)
	c.AddedPositions, c.RemovedPositions = setDiff(origKeys, tailKeys)

	origByKey := make(map[string]types.ExperienceEntry, len(original.Experience))
	for i, e := range original.Experience {
		origByKey[normalize(origKeys[i])] = e
	}
	var common []string
	for i, e := range tailored.Experience {
		key := normalize(tailKeys[i])
		before, ok := origByKey[key]
		if !ok {
			continue
		}
		common = append(common, key)
		if !sameEntry(before, e) {
			c.ChangedPositions = append(c.ChangedPositions, tailKeys[i])
		}
	}
	var origCommon []string
	for _, k := range origKeys {
		if containsFold(tailKeys, k) {
			origCommon = append(origCommon, normalize(k))
		}
	}
	c.ExperienceReorder = !equalStrings(common, origCommon)

	for _, cat := range tailored.Skills {
		c.SkillCategoryOrder = append(c.SkillCategoryOrder, cat.Name)
	}
	return c
}

func positionKeys(entries []types.ExperienceEntry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Title + " @ " + e.Company
	}
	return keys
}

func sameEntry(a, b types.ExperienceEntry) bool {
	return a.Dates == b.Dates &&
		a.Description == b.Description &&
		equalStrings(a.Achievements, b.Achievements)
}

// setDiff returns the values only in b (added) and only in a (removed)
func setDiff(a, b []string) (added, removed []string) {
	for _, v := range b {
		if !containsFold(a, v) && !containsFold(added, v) {
			added = append(added, v)
		}
	}
	for _, v := range a {
		if !containsFold(b, v) && !containsFold(removed, v) {
			removed = append(removed, v)
		}
	}
	return added, removed
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if normalize(item) == normalize(v) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
