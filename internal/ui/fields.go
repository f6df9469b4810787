package ui

import "github.com/patric-chuzhbe/userdir/internal/models"

// Field describes one input of the create form. Path is the JSON path of
// the value inside models.NewUser.
type Field struct {
	Path  string
	Label string
	Hint  string
	Type  string
	Group string

	value func(*models.NewUser) *string
	issue func(*models.UserErrors) *string
}

// Field groups, rendered as fieldsets.
const (
	GroupUser    = ""
	GroupAddress = "Address"
	GroupGeo     = "Geo"
	GroupCompany = "Company"
)

// Fields lists the form inputs in display order.
var Fields = []Field{
	{
		Path: "name", Label: "Name", Hint: "(First Name, Last Name)", Type: "text", Group: GroupUser,
		value: func(u *models.NewUser) *string { return &u.Name },
		issue: func(e *models.UserErrors) *string { return &e.Name },
	},
	{
		Path: "username", Label: "Username", Type: "text", Group: GroupUser,
		value: func(u *models.NewUser) *string { return &u.Username },
		issue: func(e *models.UserErrors) *string { return &e.Username },
	},
	{
		Path: "email", Label: "Email", Type: "email", Group: GroupUser,
		value: func(u *models.NewUser) *string { return &u.Email },
		issue: func(e *models.UserErrors) *string { return &e.Email },
	},
	{
		Path: "address.street", Label: "Street", Type: "text", Group: GroupAddress,
		value: func(u *models.NewUser) *string { return &u.Address.Street },
		issue: func(e *models.UserErrors) *string { return &e.Address.Street },
	},
	{
		Path: "address.suite", Label: "Suite", Type: "text", Group: GroupAddress,
		value: func(u *models.NewUser) *string { return &u.Address.Suite },
		issue: func(e *models.UserErrors) *string { return &e.Address.Suite },
	},
	{
		Path: "address.city", Label: "City", Type: "text", Group: GroupAddress,
		value: func(u *models.NewUser) *string { return &u.Address.City },
		issue: func(e *models.UserErrors) *string { return &e.Address.City },
	},
	{
		Path: "address.zipcode", Label: "Zipcode", Type: "text", Group: GroupAddress,
		value: func(u *models.NewUser) *string { return &u.Address.Zipcode },
		issue: func(e *models.UserErrors) *string { return &e.Address.Zipcode },
	},
	{
		Path: "address.geo.lat", Label: "Latitude", Type: "text", Group: GroupGeo,
		value: func(u *models.NewUser) *string { return &u.Address.Geo.Lat },
		issue: func(e *models.UserErrors) *string { return &e.Address.Geo.Lat },
	},
	{
		Path: "address.geo.lng", Label: "Longitude", Type: "text", Group: GroupGeo,
		value: func(u *models.NewUser) *string { return &u.Address.Geo.Lng },
		issue: func(e *models.UserErrors) *string { return &e.Address.Geo.Lng },
	},
	{
		Path: "phone", Label: "Phone", Type: "tel", Group: GroupUser,
		value: func(u *models.NewUser) *string { return &u.Phone },
		issue: func(e *models.UserErrors) *string { return &e.Phone },
	},
	{
		Path: "website", Label: "Website", Type: "text", Group: GroupUser,
		value: func(u *models.NewUser) *string { return &u.Website },
		issue: func(e *models.UserErrors) *string { return &e.Website },
	},
	{
		Path: "company.name", Label: "Company Name", Type: "text", Group: GroupCompany,
		value: func(u *models.NewUser) *string { return &u.Company.Name },
		issue: func(e *models.UserErrors) *string { return &e.Company.Name },
	},
	{
		Path: "company.catchPhrase", Label: "Catch Phrase", Type: "text", Group: GroupCompany,
		value: func(u *models.NewUser) *string { return &u.Company.CatchPhrase },
		issue: func(e *models.UserErrors) *string { return &e.Company.CatchPhrase },
	},
	{
		Path: "company.bs", Label: "BS", Type: "text", Group: GroupCompany,
		value: func(u *models.NewUser) *string { return &u.Company.BS },
		issue: func(e *models.UserErrors) *string { return &e.Company.BS },
	},
}

var fieldsByPath = func() map[string]Field {
	index := make(map[string]Field, len(Fields))
	for _, field := range Fields {
		index[field.Path] = field
	}
	return index
}()
