package domain

import "time"

type PropertyType string

const (
	PropertyTypeEntireCabin PropertyType = "Entire cabin"
	PropertyTypeEntireHome  PropertyType = "Entire home"
	PropertyTypeEntireLoft  PropertyType = "Entire loft"
	PropertyTypeEntireVilla PropertyType = "Entire villa"
	PropertyTypeEntireLodge PropertyType = "Entire lodge"
	PropertyTypePrivateRoom PropertyType = "Private room"
	PropertyTypeSharedRoom  PropertyType = "Shared room"
)

var PropertyTypes = []PropertyType{
	PropertyTypeEntireCabin,
	PropertyTypeEntireHome,
	PropertyTypeEntireLoft,
	PropertyTypeEntireVilla,
	PropertyTypeEntireLodge,
	PropertyTypePrivateRoom,
	PropertyTypeSharedRoom,
}

func ValidPropertyType(s string) bool {
	for _, pt := range PropertyTypes {
		if string(pt) == s {
			return true
		}
	}
	return false
}

type Listing struct {
	ID           int64
	Title        string
	Description  string
	Price        float64
	Location     string
	Images       []string
	Amenities    []string
	HostID       int64
	HostName     string
	MaxGuests    int
	Bedrooms     int
	Bathrooms    int
	PropertyType PropertyType
	Rating       float64
	Reviews      int
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SearchCriteria is the set of optional listing filters. Zero values mean
// "not supplied"; MinPrice/MaxPrice are inclusive bounds.
type SearchCriteria struct {
	Location      string
	MinPrice      *float64
	MaxPrice      *float64
	Guests        int
	PropertyTypes []string
}

// ListingUpdate carries a partial listing update. Nil fields are left untouched.
type ListingUpdate struct {
	Title        *string
	Description  *string
	Price        *float64
	Location     *string
	Images       []string
	Amenities    []string
	HostName     *string
	MaxGuests    *int
	Bedrooms     *int
	Bathrooms    *int
	PropertyType *string
	IsAvailable  *bool
}
