package profile

import (
	"testing"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, []string{DefaultAvatar}, d.Photos)
	for _, l := range i18n.Supported {
		assert.NotEmpty(t, d.About[l], l)
	}
	assert.Empty(t, d.Education)
	assert.NotNil(t, d.Skills)
	require.NoError(t, d.Validate())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Skills")
	require.NoError(t, err)
	assert.Equal(t, CategorySkills, c)

	_, err = ParseCategory("hobbies")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	d := Default()
	d.Upsert(CategoryEducation, Item{ID: "1", Title: i18n.Text{i18n.EN: "BSc"}})
	d.Upsert(CategoryEducation, Item{ID: "2", Title: i18n.Text{i18n.EN: "MSc"}})
	d.Upsert(CategoryEducation, Item{ID: "1", Title: i18n.Text{i18n.EN: "BSc (Hons)"}})

	require.Len(t, d.Education, 2)
	assert.Equal(t, "BSc (Hons)", d.Education[0].Title[i18n.EN])
	assert.Equal(t, "2", d.Education[1].ID)
}

func TestRemoveItem(t *testing.T) {
	d := Default()
	d.Upsert(CategoryPractice, Item{ID: "p1", Title: i18n.Text{i18n.EN: "Intern"}})

	assert.True(t, d.RemoveItem(CategoryPractice, "p1"))
	assert.False(t, d.RemoveItem(CategoryPractice, "p1"))
	assert.Empty(t, d.Practice)
}

func TestItemDraftApply(t *testing.T) {
	date := "2020 - 2024"
	it := Item{ID: "x", Title: i18n.Text{i18n.EN: "Old"}, Subtitle: i18n.Text{i18n.EN: "Uni"}}
	ItemDraft{Title: i18n.Text{i18n.EN: "New"}, Date: &date}.Apply(&it)

	assert.Equal(t, "New", it.Title[i18n.EN])
	assert.Equal(t, "Uni", it.Subtitle[i18n.EN])
	assert.Equal(t, date, it.Date)
}

func TestValidate(t *testing.T) {
	d := Default()
	d.Skills = []Item{{ID: "s", Title: i18n.Text{i18n.RU: "Go"}}}
	assert.NoError(t, d.Validate())

	d.Skills = []Item{{ID: "s", Title: i18n.Text{i18n.EN: ""}}}
	assert.ErrorIs(t, d.Validate(), ErrTitleRequired)

	d = Default()
	d.Photos = []string{""}
	assert.ErrorIs(t, d.Validate(), ErrEmptyImage)
}

func TestClone_IsIndependent(t *testing.T) {
	d := Default()
	d.Upsert(CategorySkills, Item{ID: "s", Title: i18n.Text{i18n.EN: "Go"}, Images: []string{"a"}})
	c := d.Clone()
	c.Skills[0].Images[0] = "b"
	c.About[i18n.EN] = "changed"

	assert.Equal(t, "a", d.Skills[0].Images[0])
	assert.NotEqual(t, "changed", d.About[i18n.EN])
}
