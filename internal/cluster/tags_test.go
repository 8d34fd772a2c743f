package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatestTag(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, ok := LatestTag(nil)
	assert.False(t, ok)

	tag, ok := LatestTag([]Tag{
		{Name: "v1.0.0", When: base},
		{Name: "v1.2.0", When: base.Add(48 * time.Hour)},
		{Name: "v1.1.0", When: base.Add(24 * time.Hour)},
	})
	assert.True(t, ok)
	assert.Equal(t, "v1.2.0", tag.Name)

	tag, _ = LatestTag([]Tag{{Name: "a", When: base}, {Name: "b", When: base}})
	assert.Equal(t, "a", tag.Name, "ties keep the first tag")
}
