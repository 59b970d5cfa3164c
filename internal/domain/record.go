package domain

import (
	"strings"

	"github.com/petalert/petalert"
)

// Record is the base contract shared by every record variant.
type Record interface {
	RecordID() string
	OccursOn() Schedule
	Attributes() []Attribute
	Author() *petalert.Author
}

// Draft is a record that can be checked before it is sent upstream.
type Draft interface {
	Record
	Validate() error
}

// Attribute is one domain-specific display field, in column order.
type Attribute struct {
	Name  string
	Value string
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Appointment is a vet appointment.
type Appointment struct {
	ID        string           `json:"_id,omitempty"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Notes     string           `json:"notes,omitempty"`
	CreatedBy *petalert.Author `json:"createdBy,omitempty"`
}

func (a Appointment) RecordID() string         { return a.ID }
func (a Appointment) Author() *petalert.Author { return a.CreatedBy }

func (a Appointment) OccursOn() Schedule {
	return Schedule{Date: a.Date, Time: a.Time, HasTime: true}
}

func (a Appointment) Attributes() []Attribute {
	return []Attribute{{Name: "notes", Value: a.Notes}}
}

func (a Appointment) Validate() error {
	if blank(a.Date) {
		return ValidationError{Field: "date", Reason: "required"}
	}
	if blank(a.Time) {
		return ValidationError{Field: "time", Reason: "required"}
	}
	if _, err := EventInstant(a.OccursOn(), nil); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	return nil
}

// Vaccination is one entry of a pet's vaccination history.
type Vaccination struct {
	ID        string           `json:"_id,omitempty"`
	Vaccine   string           `json:"vaccine"`
	Date      string           `json:"date"`
	Notes     string           `json:"notes,omitempty"`
	CreatedBy *petalert.Author `json:"createdBy,omitempty"`
}

func (v Vaccination) RecordID() string         { return v.ID }
func (v Vaccination) Author() *petalert.Author { return v.CreatedBy }
func (v Vaccination) OccursOn() Schedule       { return Schedule{Date: v.Date} }

func (v Vaccination) Attributes() []Attribute {
	return []Attribute{
		{Name: "vaccine", Value: v.Vaccine},
		{Name: "notes", Value: v.Notes},
	}
}

func (v Vaccination) Validate() error {
	if blank(v.Vaccine) {
		return ValidationError{Field: "vaccine", Reason: "required"}
	}
	if blank(v.Date) {
		return ValidationError{Field: "date", Reason: "required"}
	}
	if _, err := EventInstant(v.OccursOn(), nil); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	return nil
}

const (
	PostLost  = "Lost"
	PostFound = "Found"
)

// LostFound is a lost-and-found board post.
type LostFound struct {
	ID          string           `json:"_id,omitempty"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Location    string           `json:"location,omitempty"`
	Date        string           `json:"date"`
	Time        string           `json:"time,omitempty"`
	ContactInfo string           `json:"contactInfo,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CreatedBy   *petalert.Author `json:"createdBy,omitempty"`
}

func (l LostFound) RecordID() string         { return l.ID }
func (l LostFound) Author() *petalert.Author { return l.CreatedBy }

func (l LostFound) OccursOn() Schedule {
	return Schedule{Date: l.Date, Time: l.Time, HasTime: true}
}

func (l LostFound) Attributes() []Attribute {
	return []Attribute{
		{Name: "type", Value: l.Type},
		{Name: "description", Value: l.Description},
		{Name: "location", Value: l.Location},
		{Name: "contactInfo", Value: l.ContactInfo},
		{Name: "imageUrl", Value: l.ImageURL},
	}
}

func (l LostFound) Validate() error {
	if l.Type != PostLost && l.Type != PostFound {
		return ValidationError{Field: "type", Reason: "must be Lost or Found"}
	}
	if blank(l.Description) {
		return ValidationError{Field: "description", Reason: "required"}
	}
	if blank(l.Location) {
		return ValidationError{Field: "location", Reason: "required"}
	}
	if blank(l.Date) {
		return ValidationError{Field: "date", Reason: "required"}
	}
	if blank(l.Time) {
		return ValidationError{Field: "time", Reason: "required"}
	}
	if _, err := EventInstant(l.OccursOn(), nil); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	return nil
}

// Memorial is a tribute to a pet that passed away.
type Memorial struct {
	ID            string           `json:"_id,omitempty"`
	PetName       string           `json:"petName"`
	Message       string           `json:"message,omitempty"`
	DateOfPassing string           `json:"dateOfPassing"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	CreatedBy     *petalert.Author `json:"createdBy,omitempty"`
}

func (m Memorial) RecordID() string         { return m.ID }
func (m Memorial) Author() *petalert.Author { return m.CreatedBy }
func (m Memorial) OccursOn() Schedule       { return Schedule{Date: m.DateOfPassing} }

func (m Memorial) Attributes() []Attribute {
	return []Attribute{
		{Name: "petName", Value: m.PetName},
		{Name: "message", Value: m.Message},
		{Name: "imageUrl", Value: m.ImageURL},
	}
}

func (m Memorial) Validate() error {
	if blank(m.PetName) {
		return ValidationError{Field: "petName", Reason: "required"}
	}
	if blank(m.DateOfPassing) {
		return ValidationError{Field: "dateOfPassing", Reason: "required"}
	}
	if _, err := EventInstant(m.OccursOn(), nil); err != nil {
		return ValidationError{Field: "dateOfPassing", Reason: err.Error()}
	}
	return nil
}

var (
	_ Draft = Appointment{}
	_ Draft = Vaccination{}
	_ Draft = LostFound{}
	_ Draft = Memorial{}
)
