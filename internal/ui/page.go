package ui

import (
	"context"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
)

type usersAPI interface {
	userCreator
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Card is the summary of one user shown in the grid.
type Card struct {
	ID      int
	Name    string
	Company string
	Email   string
}

// Page holds the users list and the create form.
type Page struct {
	api     usersAPI
	Form    *Form
	users   []models.User
	loading bool
}

func NewPage(api usersAPI, checker fieldChecker) *Page {
	return &Page{
		api:     api,
		Form:    NewForm(checker),
		users:   []models.User{},
		loading: true,
	}
}

// Load fetches the collection once. A failed fetch is logged and leaves the
// list empty.
func (p *Page) Load(ctx context.Context) {
	p.loading = true
	defer func() {
		p.loading = false
	}()

	users, err := p.api.ListUsers(ctx)
	if err != nil {
		logger.Log.Errorw("Error fetching users", zap.Error(err))
		p.users = []models.User{}
		return
	}
	if users == nil {
		users = []models.User{}
	}
	p.users = users
}

func (p *Page) Loading() bool {
	return p.loading
}

func (p *Page) Users() []models.User {
	return p.users
}

// Cards maps the loaded users to their grid summaries.
func (p *Page) Cards() []Card {
	return funk.Map(p.users, func(usr models.User) Card {
		return Card{
			ID:      usr.ID,
			Name:    usr.Name,
			Company: usr.Company.Name,
			Email:   usr.Email,
		}
	}).([]Card)
}

// Submit sends the form and appends the created record to the list.
func (p *Page) Submit(ctx context.Context) (models.User, error) {
	created, err := p.Form.Submit(ctx, p.api)
	if err != nil {
		return models.User{}, err
	}

	p.users = append(p.users, created)

	return created, nil
}
