package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSessionStepNavigation(t *testing.T) {
	s := NewDraftSession()
	assert.Equal(t, StepDetails, s.Step)
	assert.True(t, s.IsFirstStep())

	s.PrevStep()
	assert.Equal(t, StepDetails, s.Step, "prev on first step must be a no-op")

	for i := 1; i < StepCount; i++ {
		s.NextStep()
		assert.Equal(t, i, s.Step)
	}
	assert.True(t, s.IsLastStep())

	s.NextStep()
	assert.Equal(t, StepCount-1, s.Step, "next on last step must be a no-op")

	s.PrevStep()
	assert.Equal(t, StepCount-2, s.Step)
}

func TestDraftSessionJumpToStepClamps(t *testing.T) {
	cases := []struct {
		name   string
		target int
		want   int
	}{
		{"negative clamps to first", -3, 0},
		{"beyond last clamps to last", StepCount + 5, StepCount - 1},
		{"in range is kept", 2, 2},
		{"first is kept", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewDraftSession()
			s.JumpToStep(tc.target)
			assert.Equal(t, tc.want, s.Step)
		})
	}
}

func TestDraftSessionReset(t *testing.T) {
	s := NewDraftSession()
	require.NoError(t, s.Draft.SetField("title", "Cozy flat"))
	s.JumpToStep(StepSummary)

	s.Reset()

	assert.Equal(t, StepDetails, s.Step)
	assert.True(t, s.Draft.IsEmpty())
}

func TestDraftSetField(t *testing.T) {
	d := &Draft{}

	require.NoError(t, d.SetField("title", "Cozy flat"))
	require.NoError(t, d.SetField("price", float64(1200)))
	require.NoError(t, d.SetField("bedrooms", float64(2)))
	require.NoError(t, d.SetField("furnished", true))
	require.NoError(t, d.SetField("type", "rent"))
	require.NoError(t, d.SetField("imgUrls", []interface{}{"http://img/1.jpg", "http://img/2.jpg"}))
	require.NoError(t, d.SetField("mainImage", "http://img/2.jpg"))

	assert.Equal(t, "Cozy flat", d.Title)
	assert.Equal(t, 1200.0, d.Price)
	assert.Equal(t, 2, d.Bedrooms)
	assert.True(t, d.Furnished)
	assert.Equal(t, TypeRent, d.Type)
	assert.Equal(t, []string{"http://img/1.jpg", "http://img/2.jpg"}, d.ImageURLs)
	assert.Equal(t, "http://img/2.jpg", d.MainImage)
}

func TestDraftSetFieldRejectsBadInput(t *testing.T) {
	d := &Draft{}

	err := d.SetField("unknown_field", "x")
	assert.ErrorIs(t, err, ErrUnknownDraftField)

	err = d.SetField("price", "not a number")
	assert.ErrorIs(t, err, ErrInvalidListingData)

	err = d.SetField("type", "timeshare")
	assert.ErrorIs(t, err, ErrInvalidListingData)

	err = d.SetField("imgUrls", []interface{}{"ok", 42})
	assert.ErrorIs(t, err, ErrInvalidListingData)

	err = d.SetField("furnished", "yes")
	assert.ErrorIs(t, err, ErrInvalidListingData)
}

func TestDraftIsEmpty(t *testing.T) {
	d := &Draft{}
	assert.True(t, d.IsEmpty())

	require.NoError(t, d.SetField("city", "Almaty"))
	assert.False(t, d.IsEmpty())
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{
		Title:     "Cozy flat",
		Type:      TypeRent,
		Price:     1200,
		ImageURLs: []string{"http://img/1.jpg"},
	}

	t.Run("valid draft passes", func(t *testing.T) {
		d := valid
		assert.NoError(t, d.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		d := valid
		d.Title = ""
		assert.ErrorIs(t, d.Validate(), ErrInvalidListingData)
	})

	t.Run("missing type", func(t *testing.T) {
		d := valid
		d.Type = ""
		assert.ErrorIs(t, d.Validate(), ErrInvalidListingData)
	})

	t.Run("non-positive price", func(t *testing.T) {
		d := valid
		d.Price = 0
		assert.ErrorIs(t, d.Validate(), ErrInvalidListingData)
	})

	t.Run("no images", func(t *testing.T) {
		d := valid
		d.ImageURLs = nil
		assert.ErrorIs(t, d.Validate(), ErrInvalidListingData)
	})
}

func TestDraftToListing(t *testing.T) {
	d := Draft{
		Title:     "Cozy flat",
		City:      "Astana",
		Type:      TypeSale,
		Price:     95000,
		Bedrooms:  3,
		ImageURLs: []string{"http://img/1.jpg"},
	}

	listing := d.ToListing("user-1")

	assert.Empty(t, listing.ID, "the store assigns the id")
	assert.Equal(t, "user-1", listing.UserID)
	assert.Equal(t, "Cozy flat", listing.Title)
	assert.Equal(t, TypeSale, listing.Type)
	assert.Equal(t, StatusActive, listing.Status)
	assert.Equal(t, d.ImageURLs, listing.ImageURLs)

	// The listing must not alias the draft's slice.
	listing.ImageURLs[0] = "changed"
	assert.Equal(t, "http://img/1.jpg", d.ImageURLs[0])
}

func TestDraftToListingMainImage(t *testing.T) {
	t.Run("chosen main image is kept", func(t *testing.T) {
		d := Draft{
			ImageURLs: []string{"http://img/1.jpg", "http://img/2.jpg"},
			MainImage: "http://img/2.jpg",
		}
		assert.Equal(t, "http://img/2.jpg", d.ToListing("user-1").MainImage)
	})

	t.Run("first image stands in when none chosen", func(t *testing.T) {
		d := Draft{ImageURLs: []string{"http://img/1.jpg", "http://img/2.jpg"}}
		assert.Equal(t, "http://img/1.jpg", d.ToListing("user-1").MainImage)
	})
}

func TestUserHasFavourite(t *testing.T) {
	u := &User{Favourites: []string{"a", "b"}}
	assert.True(t, u.HasFavourite("a"))
	assert.False(t, u.HasFavourite("c"))

	empty := &User{}
	assert.False(t, empty.HasFavourite("a"))
}
