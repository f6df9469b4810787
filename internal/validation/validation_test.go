package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

func validUser() models.NewUser {
	return models.NewUser{
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address: models.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
			Geo: models.Geo{
				Lat: "-37.3159",
				Lng: "81.1496",
			},
		},
		Phone:   "1-770-736-8031 x56442",
		Website: "hildegard.org",
		Company: models.Company{
			Name:        "Romaguera-Crona",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	}
}

func TestCheckNewUserAcceptsValidPayload(t *testing.T) {
	v := New()

	assert.NoError(t, v.CheckNewUser(validUser()))

	usr := validUser()
	usr.Address.Suite = ""
	assert.NoError(t, v.CheckNewUser(usr), "suite is optional")
}

func TestCheckNewUserRuleGroups(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *models.NewUser)
		wantMsg string
	}{
		{
			name:    "missing name",
			mutate:  func(u *models.NewUser) { u.Name = "" },
			wantMsg: "All required fields must be provided",
		},
		{
			name:    "missing latitude",
			mutate:  func(u *models.NewUser) { u.Address.Geo.Lat = "" },
			wantMsg: "All required fields must be provided",
		},
		{
			name:    "missing company bs",
			mutate:  func(u *models.NewUser) { u.Company.BS = "" },
			wantMsg: "All required fields must be provided",
		},
		{
			name:    "short username",
			mutate:  func(u *models.NewUser) { u.Username = "B" },
			wantMsg: "Name, username, and company name must be at least 2 characters",
		},
		{
			name:    "short company name",
			mutate:  func(u *models.NewUser) { u.Company.Name = "R" },
			wantMsg: "Name, username, and company name must be at least 2 characters",
		},
		{
			name:    "email without top level domain",
			mutate:  func(u *models.NewUser) { u.Email = "foo@bar" },
			wantMsg: "Invalid email format",
		},
		{
			name:    "four digit zipcode",
			mutate:  func(u *models.NewUser) { u.Address.Zipcode = "1234" },
			wantMsg: "Invalid zipcode format",
		},
		{
			name:    "non numeric latitude",
			mutate:  func(u *models.NewUser) { u.Address.Geo.Lat = "abc" },
			wantMsg: "Latitude and longitude must be valid numbers",
		},
		{
			name:    "non numeric longitude",
			mutate:  func(u *models.NewUser) { u.Address.Geo.Lng = "NaN" },
			wantMsg: "Latitude and longitude must be valid numbers",
		},
		{
			name:    "short phone",
			mutate:  func(u *models.NewUser) { u.Phone = "555-1234" },
			wantMsg: "Phone must be at least 10 characters",
		},
		{
			name:    "bad website",
			mutate:  func(u *models.NewUser) { u.Website = "not a website" },
			wantMsg: "Invalid website URL",
		},
		{
			name:    "short catch phrase",
			mutate:  func(u *models.NewUser) { u.Company.CatchPhrase = "abc" },
			wantMsg: "Catch phrase and BS must be at least 5 characters",
		},
		{
			name: "required wins over format",
			mutate: func(u *models.NewUser) {
				u.Email = "foo@bar"
				u.Phone = ""
			},
			wantMsg: "All required fields must be provided",
		},
		{
			name: "earlier group wins",
			mutate: func(u *models.NewUser) {
				u.Company.BS = "bs"
				u.Address.Zipcode = "zip"
			},
			wantMsg: "Invalid zipcode format",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := validUser()
			tt.mutate(&usr)

			err := v.CheckNewUser(usr)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestFormatRules(t *testing.T) {
	v := New()

	accepted := map[string][]string{
		"looseemail": {"foo@bar.com", "a.b@c.d"},
		"zipcode":    {"12345", "12345-6789"},
		"decimalstr": {"40.7128", "-74.0060", "0", "1e3", "1e400", "0x1A", "Infinity"},
		"website":    {"hildegard.org", "http://example.com", "https://example.com/path/to", "www.kale.biz/"},
	}
	rejected := map[string][]string{
		"looseemail": {"foo@bar", "foo bar@baz.com", "@bar.com"},
		"zipcode":    {"1234", "123456", "12345-678", "abcde"},
		"decimalstr": {"abc", "NaN", "12abc", "inf", "0x1p3"},
		"website":    {"example", "http://", "EXAMPLE.COM"},
	}

	for tag, values := range accepted {
		for _, value := range values {
			assert.NoError(t, v.validate.Var(value, tag), "%s should accept %q", tag, value)
		}
	}
	for tag, values := range rejected {
		for _, value := range values {
			assert.Error(t, v.validate.Var(value, tag), "%s should reject %q", tag, value)
		}
	}
}

func TestIsDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "40.7128", want: true},
		{in: " -68.6102 ", want: true},
		{in: ".5", want: true},
		{in: "5.", want: true},
		{in: "+1E-3", want: true},
		{in: "1e400", want: true},
		{in: "0x1A", want: true},
		{in: "0o17", want: true},
		{in: "0b101", want: true},
		{in: "Infinity", want: true},
		{in: "-Infinity", want: true},
		{in: "   ", want: true},
		{in: "inf", want: false},
		{in: "infinity", want: false},
		{in: "NaN", want: false},
		{in: "0x1p3", want: false},
		{in: "-0x1A", want: false},
		{in: "1_000", want: false},
		{in: "12abc", want: false},
		{in: "1e", want: false},
		{in: ".", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDecimal(tt.in))
		})
	}
}

func TestCheckFields(t *testing.T) {
	v := New()

	t.Run("valid draft has no messages", func(t *testing.T) {
		assert.True(t, v.CheckFields(validUser()).Empty())
	})

	t.Run("empty draft reports every required field", func(t *testing.T) {
		errs := v.CheckFields(models.NewUser{})

		assert.Equal(t, "Name is required.", errs.Name)
		assert.Equal(t, "Username is required.", errs.Username)
		assert.Equal(t, "Email is required.", errs.Email)
		assert.Equal(t, "Street is required.", errs.Address.Street)
		assert.Equal(t, "", errs.Address.Suite)
		assert.Equal(t, "City is required.", errs.Address.City)
		assert.Equal(t, "Zipcode is required.", errs.Address.Zipcode)
		assert.Equal(t, "Latitude is required.", errs.Address.Geo.Lat)
		assert.Equal(t, "Longitude is required.", errs.Address.Geo.Lng)
		assert.Equal(t, "Phone is required.", errs.Phone)
		assert.Equal(t, "Website is required.", errs.Website)
		assert.Equal(t, "Company name is required.", errs.Company.Name)
		assert.Equal(t, "Catch phrase is required.", errs.Company.CatchPhrase)
		assert.Equal(t, "BS is required.", errs.Company.BS)
	})

	t.Run("whitespace only counts as missing", func(t *testing.T) {
		usr := validUser()
		usr.Name = "   "

		errs := v.CheckFields(usr)
		assert.Equal(t, "Name is required.", errs.Name)
		assert.Equal(t, "", errs.Username)
	})

	t.Run("format messages", func(t *testing.T) {
		usr := validUser()
		usr.Address.Street = "K"
		usr.Email = "foo@bar"
		usr.Address.Zipcode = "1234"
		usr.Address.Geo.Lng = "east"
		usr.Company.BS = "bs"

		errs := v.CheckFields(usr)
		assert.Equal(t, "Street must be at least 2 characters.", errs.Address.Street)
		assert.Equal(t, "Please enter a valid email address.", errs.Email)
		assert.Equal(t, "Please enter a valid zipcode (e.g., 12345 or 12345-6789).", errs.Address.Zipcode)
		assert.Equal(t, "Longitude must be a valid number.", errs.Address.Geo.Lng)
		assert.Equal(t, "BS must be at least 5 characters.", errs.Company.BS)
		assert.Equal(t, "", errs.Name)
	})
}
