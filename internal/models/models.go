// Package models holds the records exchanged between the storage backends,
// the API handlers and the users page.
package models

import "strings"

// Geo is a pair of decimal coordinates kept as strings, exactly as submitted.
type Geo struct {
	Lat string `json:"lat" validate:"required,decimalstr"`
	Lng string `json:"lng" validate:"required,decimalstr"`
}

// Address is the postal part of a user record.
type Address struct {
	Street  string `json:"street" validate:"required"`
	Suite   string `json:"suite"`
	City    string `json:"city" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required,zipcode"`
	Geo     Geo    `json:"geo"`
}

// Company describes where the user works.
type Company struct {
	Name        string `json:"name" validate:"required,min=2"`
	CatchPhrase string `json:"catchPhrase" validate:"required,min=5"`
	BS          string `json:"bs" validate:"required,min=5"`
}

// NewUser is the payload of a create request: a user record without an id.
type NewUser struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Username string  `json:"username" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,looseemail"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone" validate:"required,min=10"`
	Website  string  `json:"website" validate:"required,website"`
	Company  Company `json:"company"`
}

// User is a persisted user record.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

// Trimmed returns a copy of the payload with surrounding whitespace removed
// from every string field.
func (u NewUser) Trimmed() NewUser {
	return NewUser{
		Name:     strings.TrimSpace(u.Name),
		Username: strings.TrimSpace(u.Username),
		Email:    strings.TrimSpace(u.Email),
		Address: Address{
			Street:  strings.TrimSpace(u.Address.Street),
			Suite:   strings.TrimSpace(u.Address.Suite),
			City:    strings.TrimSpace(u.Address.City),
			Zipcode: strings.TrimSpace(u.Address.Zipcode),
			Geo: Geo{
				Lat: strings.TrimSpace(u.Address.Geo.Lat),
				Lng: strings.TrimSpace(u.Address.Geo.Lng),
			},
		},
		Phone:   strings.TrimSpace(u.Phone),
		Website: strings.TrimSpace(u.Website),
		Company: Company{
			Name:        strings.TrimSpace(u.Company.Name),
			CatchPhrase: strings.TrimSpace(u.Company.CatchPhrase),
			BS:          strings.TrimSpace(u.Company.BS),
		},
	}
}

// WithID turns the payload into a user record carrying the given id.
func (u NewUser) WithID(id int) User {
	return User{
		ID:       id,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Address:  u.Address,
		Phone:    u.Phone,
		Website:  u.Website,
		Company:  u.Company,
	}
}

// GeoErrors mirrors Geo with one message per field.
type GeoErrors struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// AddressErrors mirrors Address with one message per field.
type AddressErrors struct {
	Street  string    `json:"street"`
	Suite   string    `json:"suite"`
	City    string    `json:"city"`
	Zipcode string    `json:"zipcode"`
	Geo     GeoErrors `json:"geo"`
}

// CompanyErrors mirrors Company with one message per field.
type CompanyErrors struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// UserErrors has the shape of NewUser; an empty string means the field is fine.
type UserErrors struct {
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Address  AddressErrors `json:"address"`
	Phone    string        `json:"phone"`
	Website  string        `json:"website"`
	Company  CompanyErrors `json:"company"`
}

// Empty reports whether no field carries a message.
func (e UserErrors) Empty() bool {
	return e == UserErrors{}
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InternalStatsResponse is returned by the internal stats endpoint.
type InternalStatsResponse struct {
	Users int `json:"users"`
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeRedis
	StorageTypeFile
	StorageTypeMemory
)
