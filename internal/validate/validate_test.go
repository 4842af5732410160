package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"teamkasse/internal/validate"
)

func TestSlug(t *testing.T) {
	for _, ok := range []string{"alpha", "team-1", "a", "x-y-z"} {
		_, valid := validate.Slug(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "Alpha", "a_b", "-lead", "trail-", "äöü", "a b"} {
		_, valid := validate.Slug(bad)
		assert.False(t, valid, bad)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "fc-alpha", validate.Slugify("FC Alpha"))
	assert.Equal(t, "team-2", validate.Slugify("  Team 2! "))
	assert.Equal(t, "a-b", validate.Slugify("a---b"))
	assert.Equal(t, "", validate.Slugify("!!!"))
}

func TestTemplate(t *testing.T) {
	_, ok := validate.Template("A")
	assert.True(t, ok)
	_, ok = validate.Template("B")
	assert.True(t, ok)
	_, ok = validate.Template("C")
	assert.False(t, ok)
	_, ok = validate.Template("")
	assert.False(t, ok)
}

func TestQuantity(t *testing.T) {
	assert.EqualValues(t, 1, validate.Quantity(0))
	assert.EqualValues(t, 1, validate.Quantity(-5))
	assert.EqualValues(t, 7, validate.Quantity(7))
	assert.EqualValues(t, 999, validate.Quantity(5000))
}
