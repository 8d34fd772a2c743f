package cluster

// LatestTag picks the tag on the most recent commit. Ties keep the tag that
// comes first in the slice.
func LatestTag(tags []Tag) (Tag, bool) {
	if len(tags) == 0 {
		return Tag{}, false
	}
	latest := tags[0]
	for _, t := range tags[1:] {
		if t.When.After(latest.When) {
			latest = t
		}
	}
	return latest, true
}
