package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekdays enumerates the working_hours keys in display order.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// GeoPoint is a GeoJSON point as stored under the 2dsphere index.
// Coordinates are [longitude, latitude]; the zero point marks an unknown location.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// Restaurant is the sole persisted entity of the directory.
type Restaurant struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Address     string             `json:"address" bson:"address"`
	Street      string             `json:"street,omitempty" bson:"street,omitempty"`
	City        string             `json:"city" bson:"city"`
	State       string             `json:"state" bson:"state"`
	Province    string             `json:"province" bson:"province"`
	PostalCode  string             `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country     string             `json:"country" bson:"country"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Site        string             `json:"site,omitempty" bson:"site,omitempty"`
	Cuisine     string             `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	PriceRange  string             `json:"price_range,omitempty" bson:"price_range,omitempty"`
	Rating      string             `json:"rating,omitempty" bson:"rating,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Reviews     int                `json:"reviews" bson:"reviews"`
	Photo       string             `json:"photo,omitempty" bson:"photo,omitempty"`
	StreetView  string             `json:"street_view,omitempty" bson:"street_view,omitempty"`
	Logo        string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	BookingLink string             `json:"booking_appointment_link,omitempty" bson:"booking_appointment_link,omitempty"`

	WorkingHours map[string]string `json:"working_hours" bson:"working_hours"`
	Location     GeoPoint          `json:"location" bson:"location"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ErrValidation wraps required-field failures so the handler can map them to 400.
var ErrValidation = errors.New("validation failed")

// ApplyDefaults trims the location fields and fills the schema defaults:
// country Canada, category restaurants, all-Closed working hours, a zero
// geo point and a non-negative review count.
func (r *Restaurant) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Street = strings.TrimSpace(r.Street)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Province = strings.TrimSpace(r.Province)
	r.Country = strings.TrimSpace(r.Country)
	r.Site = strings.TrimSpace(r.Site)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.BookingLink = strings.TrimSpace(r.BookingLink)

	if r.Country == "" {
		r.Country = "Canada"
	}
	if r.Category == "" {
		r.Category = "restaurants"
	}
	if r.Reviews < 0 {
		r.Reviews = 0
	}
	if r.WorkingHours == nil {
		r.WorkingHours = map[string]string{}
	}
	for _, day := range Weekdays {
		if _, ok := r.WorkingHours[day]; !ok {
			r.WorkingHours[day] = "Closed"
		}
	}
	if r.Location.Type == "" {
		r.Location.Type = "Point"
	}
	if len(r.Location.Coordinates) != 2 {
		r.Location.Coordinates = []float64{0, 0}
	}
}

// Validate checks the required fields. Call ApplyDefaults first.
func (r *Restaurant) Validate() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Address == "" {
		missing = append(missing, "address")
	}
	if r.City == "" {
		missing = append(missing, "city")
	}
	if r.State == "" {
		missing = append(missing, "state")
	}
	if r.Province == "" {
		missing = append(missing, "province")
	}
	if r.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
