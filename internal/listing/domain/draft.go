package domain

import (
	"fmt"
	"time"
)

// Steps of the add-property form, in order. StepCount is fixed at build time.
const (
	StepDetails = iota
	StepFacilities
	StepImages
	StepSummary

	StepCount
)

// Draft is the builder for a Listing: the same shape minus id, owner and
// timestamp, partially populated across form steps. It is converted to a
// Listing only at successful publish.
type Draft struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address,omitempty"`
	City        string      `json:"city,omitempty"`
	Price       float64     `json:"price,omitempty"`
	Type        ListingType `json:"type,omitempty"`
	Bedrooms    int         `json:"bedrooms,omitempty"`
	Bathrooms   int         `json:"bathrooms,omitempty"`
	Furnished   bool        `json:"furnished,omitempty"`
	Parking     bool        `json:"parking,omitempty"`
	ImageURLs   []string    `json:"imgUrls,omitempty"`
	MainImage   string      `json:"mainImage,omitempty"`
}

// IsEmpty reports whether no field has been set yet. An empty draft must
// never be published; the submission flow redirects to the first step instead.
func (d *Draft) IsEmpty() bool {
	return d.Title == "" && d.Description == "" && d.Address == "" &&
		d.City == "" && d.Price == 0 && d.Type == "" &&
		d.Bedrooms == 0 && d.Bathrooms == 0 &&
		!d.Furnished && !d.Parking &&
		len(d.ImageURLs) == 0 && d.MainImage == ""
}

// Validate checks the publish preconditions.
func (d *Draft) Validate() error {
	switch {
	case d.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidListingData)
	case !d.Type.Valid():
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalidListingData, TypeRent, TypeSale)
	case d.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrInvalidListingData)
	case d.Bedrooms < 0 || d.Bathrooms < 0:
		return fmt.Errorf("%w: rooms cannot be negative", ErrInvalidListingData)
	case len(d.ImageURLs) == 0:
		return fmt.Errorf("%w: at least one image is required", ErrInvalidListingData)
	}
	return nil
}

// ToListing converts the draft into a Listing owned by ownerID. The store
// assigns the id and the creation timestamp. When no main image was chosen
// the first uploaded one stands in.
func (d *Draft) ToListing(ownerID string) *Listing {
	mainImage := d.MainImage
	if mainImage == "" && len(d.ImageURLs) > 0 {
		mainImage = d.ImageURLs[0]
	}
	return &Listing{
		UserID:      ownerID,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		City:        d.City,
		Price:       d.Price,
		Type:        d.Type,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Furnished:   d.Furnished,
		Parking:     d.Parking,
		ImageURLs:   append([]string(nil), d.ImageURLs...),
		MainImage:   mainImage,
		Status:      StatusActive,
	}
}

// SetField merges a single client-supplied field into the draft. Values come
// from decoded JSON, so numbers arrive as float64 and lists as []interface{}.
// No per-step validation happens here; that is the consuming view's concern.
func (d *Draft) SetField(key string, value interface{}) error {
	switch key {
	case "title":
		return setString(&d.Title, key, value)
	case "description":
		return setString(&d.Description, key, value)
	case "address":
		return setString(&d.Address, key, value)
	case "city":
		return setString(&d.City, key, value)
	case "price":
		return setFloat(&d.Price, key, value)
	case "type":
		var s string
		if err := setString(&s, key, value); err != nil {
			return err
		}
		t := ListingType(s)
		if s != "" && !t.Valid() {
			return fmt.Errorf("%w: type %q", ErrInvalidListingData, s)
		}
		d.Type = t
		return nil
	case "bedrooms":
		return setInt(&d.Bedrooms, key, value)
	case "bathrooms":
		return setInt(&d.Bathrooms, key, value)
	case "furnished":
		return setBool(&d.Furnished, key, value)
	case "parking":
		return setBool(&d.Parking, key, value)
	case "imgUrls":
		return setStringSlice(&d.ImageURLs, key, value)
	case "mainImage":
		return setString(&d.MainImage, key, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDraftField, key)
	}
}

func setString(dst *string, key string, value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string", ErrInvalidListingData, key)
	}
	*dst = s
	return nil
}

func setFloat(dst *float64, key string, value interface{}) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	default:
		return fmt.Errorf("%w: %s expects a number", ErrInvalidListingData, key)
	}
	return nil
}

func setInt(dst *int, key string, value interface{}) error {
	switch v := value.(type) {
	case float64:
		*dst = int(v)
	case int:
		*dst = v
	default:
		return fmt.Errorf("%w: %s expects an integer", ErrInvalidListingData, key)
	}
	return nil
}

func setBool(dst *bool, key string, value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a boolean", ErrInvalidListingData, key)
	}
	*dst = b
	return nil
}

func setStringSlice(dst *[]string, key string, value interface{}) error {
	switch v := value.(type) {
	case []string:
		*dst = append([]string(nil), v...)
	case []interface{}:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: %s expects a list of strings", ErrInvalidListingData, key)
			}
			urls = append(urls, s)
		}
		*dst = urls
	default:
		return fmt.Errorf("%w: %s expects a list of strings", ErrInvalidListingData, key)
	}
	return nil
}

// DraftSession is the form state machine: the in-progress draft plus the
// current step index. The step index is always within [0, StepCount-1].
type DraftSession struct {
	Step      int       `json:"step"`
	Draft     Draft     `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDraftSession() *DraftSession {
	return &DraftSession{Step: StepDetails}
}

func (s *DraftSession) IsFirstStep() bool { return s.Step == 0 }
func (s *DraftSession) IsLastStep() bool  { return s.Step == StepCount-1 }

// NextStep advances one step; a no-op on the last step.
func (s *DraftSession) NextStep() {
	if !s.IsLastStep() {
		s.Step++
	}
}

// PrevStep retreats one step; a no-op on the first step.
func (s *DraftSession) PrevStep() {
	if !s.IsFirstStep() {
		s.Step--
	}
}

// JumpToStep moves to step n, clamped to the valid range.
func (s *DraftSession) JumpToStep(n int) {
	if n < 0 {
		n = 0
	}
	if n > StepCount-1 {
		n = StepCount - 1
	}
	s.Step = n
}

// Reset clears the draft and returns to the first step.
func (s *DraftSession) Reset() {
	s.Draft = Draft{}
	s.Step = StepDetails
}
