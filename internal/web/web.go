// Package web serves the server-rendered users page.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/apiclient"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
	"github.com/patric-chuzhbe/userdir/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

var usersTemplate = template.Must(template.ParseFS(templatesFS, "templates/users.html"))

const usersPath = "/users"

type usersAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, payload models.NewUser) (models.User, error)
}

type fieldChecker interface {
	CheckFields(draft models.NewUser) models.UserErrors
}

type fieldView struct {
	Path  string
	Label string
	Hint  string
	Type  string
	Value string
	Error string
}

type fieldsetView struct {
	Legend string
	Fields []fieldView
}

type pageView struct {
	Cards       []ui.Card
	FormOpen    bool
	SubmitError string
	Fieldsets   []fieldsetView
}

// Pages renders the users page from the API reachable through api.
type Pages struct {
	api     usersAPI
	checker fieldChecker
}

func New(api usersAPI, checker fieldChecker) *Pages {
	return &Pages{
		api:     api,
		checker: checker,
	}
}

// Register mounts the page routes on router.
func (p *Pages) Register(router chi.Router) {
	router.Get(`/`, p.GetRoot)
	router.Get(usersPath, p.GetUsers)
	router.Post(usersPath, p.PostUsers)
}

// apiContext tags the request context with the browser address so the API
// limits page traffic per browser. RemoteAddr has already been rewritten by
// middleware.RealIP when a proxy header is present.
func apiContext(request *http.Request) context.Context {
	ip, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		ip = request.RemoteAddr
	}

	return apiclient.WithClientIP(request.Context(), ip)
}

func (p *Pages) GetRoot(response http.ResponseWriter, request *http.Request) {
	http.Redirect(response, request, usersPath, http.StatusFound)
}

// GetUsers renders the list; "?create=1" opens the create form.
func (p *Pages) GetUsers(response http.ResponseWriter, request *http.Request) {
	page := ui.NewPage(p.api, p.checker)
	page.Load(apiContext(request))

	if request.URL.Query().Get("create") == "1" {
		page.Form.Open()
	}

	render(response, http.StatusOK, page)
}

// PostUsers submits the form-encoded draft. Success redirects back to the
// list; failure re-renders the open form with its messages.
func (p *Pages) PostUsers(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	page := ui.NewPage(p.api, p.checker)
	page.Form.Open()
	for _, field := range ui.Fields {
		if err := page.Form.Set(field.Path, request.PostForm.Get(field.Path)); err != nil {
			logger.Log.Errorw("Error filling the form", zap.Error(err))
		}
	}

	ctx := apiContext(request)
	_, err := page.Submit(ctx)
	if err == nil {
		http.Redirect(response, request, usersPath, http.StatusSeeOther)
		return
	}

	page.Load(ctx)

	status := http.StatusBadGateway
	var apiErr *apiclient.APIError
	if errors.Is(err, ui.ErrInvalid) || (errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest) {
		status = http.StatusUnprocessableEntity
	}

	render(response, status, page)
}

func buildView(page *ui.Page) pageView {
	view := pageView{
		Cards:       page.Cards(),
		FormOpen:    page.Form.State() != ui.StateClosed,
		SubmitError: page.Form.SubmitError(),
	}
	if !view.FormOpen {
		return view
	}

	for _, field := range ui.Fields {
		if len(view.Fieldsets) == 0 || view.Fieldsets[len(view.Fieldsets)-1].Legend != field.Group {
			view.Fieldsets = append(view.Fieldsets, fieldsetView{Legend: field.Group})
		}
		last := &view.Fieldsets[len(view.Fieldsets)-1]
		last.Fields = append(last.Fields, fieldView{
			Path:  field.Path,
			Label: field.Label,
			Hint:  field.Hint,
			Type:  field.Type,
			Value: page.Form.Value(field.Path),
			Error: page.Form.Error(field.Path),
		})
	}

	return view
}

func render(response http.ResponseWriter, status int, page *ui.Page) {
	var buf bytes.Buffer
	if err := usersTemplate.Execute(&buf, buildView(page)); err != nil {
		logger.Log.Errorw("Error rendering users page", zap.Error(err))
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(status)
	if _, err := buf.WriteTo(response); err != nil {
		logger.Log.Debugw("Error writing users page", zap.Error(err))
	}
}
