// Package handlers exposes the todo core over HTTP: JSON bodies in and
// out, a bearer session token on every authenticated route, and the
// rotated token returned in the X-Session-Token response header.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mitoneko/neko-todo/auth"
	"github.com/mitoneko/neko-todo/database"
	"github.com/mitoneko/neko-todo/middleware"
	"github.com/mitoneko/neko-todo/models"
	"github.com/mitoneko/neko-todo/todo"
)

// Handlers holds the two service layers, allowing methods to share them.
type Handlers struct {
	Auth  *auth.Manager
	Todos *todo.Service

	// DefaultSortOrder and DefaultOnlyIncomplete apply when a listing
	// request omits the sort and incomplete query parameters.
	DefaultSortOrder      models.SortOrder
	DefaultOnlyIncomplete bool
}

// NewHandlers is a constructor for the Handlers struct.
func NewHandlers(a *auth.Manager, t *todo.Service, defaultOrder models.SortOrder, defaultOnlyIncomplete bool) *Handlers {
	return &Handlers{Auth: a, Todos: t, DefaultSortOrder: defaultOrder, DefaultOnlyIncomplete: defaultOnlyIncomplete}
}

// Router wires every route, with the session middleware on everything
// below the login boundary.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register", h.RegisterUser).Methods("POST")
	r.HandleFunc("/login", h.LoginUser).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return middleware.Auth(h.Auth, next)
	})
	api.HandleFunc("/session", h.CheckSession).Methods("GET")
	api.HandleFunc("/todos", h.ListTodos).Methods("GET")
	api.HandleFunc("/todos", h.AddTodo).Methods("POST")
	api.HandleFunc("/todos/{id}", h.GetTodo).Methods("GET")
	api.HandleFunc("/todos/{id}", h.EditTodo).Methods("PUT")
	api.HandleFunc("/todos/{id}/done", h.UpdateDone).Methods("PUT")
	return r
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError maps the domain error vocabulary onto HTTP statuses.
// Anything unmapped is an infrastructure failure: logged here, opaque to
// the client.
func respondWithError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrDuplicateUser):
		http.Error(w, "User name already exists", http.StatusConflict)
	case errors.Is(err, database.ErrSessionNotFound):
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
	case errors.Is(err, database.ErrTodoNotFound):
		http.Error(w, "Todo not found", http.StatusNotFound)
	default:
		log.Printf("handlers: storage failure: %v", err)
		http.Error(w, "Storage failure", http.StatusInternalServerError)
	}
}

// todoForm is the request body for adding and editing items. Dates accept
// both YYYY-MM-DD and YYYY/MM/DD.
type todoForm struct {
	Title string  `json:"title"`
	Work  *string `json:"work,omitempty"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// item converts the form into a TodoItem, leaving unset dates zero so the
// storage layer applies its defaults.
func (f todoForm) item() (models.TodoItem, error) {
	it := models.TodoItem{Title: f.Title, Work: f.Work}
	if f.Start != nil {
		d, err := models.ParseDate(*f.Start)
		if err != nil {
			return models.TodoItem{}, err
		}
		it.StartDate = d
	}
	if f.End != nil {
		d, err := models.ParseDate(*f.End)
		if err != nil {
			return models.TodoItem{}, err
		}
		it.EndDate = d
	}
	return it, nil
}

// RegisterUser handles a new user registration.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if creds.Name == "" || creds.Password == "" {
		http.Error(w, "Name and password required", http.StatusBadRequest)
		return
	}

	if err := h.Auth.Register(r.Context(), creds.Name, creds.Password); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"name": creds.Name})
}

// LoginUser authenticates and returns a fresh session token. An unknown
// name and a wrong password produce the same response on purpose.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sess, err := h.Auth.Login(r.Context(), creds.Name, creds.Password)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) || errors.Is(err, auth.ErrWrongPassword) {
			http.Error(w, "Invalid user name or password", http.StatusUnauthorized)
			return
		}
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": sess.String()})
}

// CheckSession reports the rotated session token. The middleware already
// validated and rotated it; an invalid token never reaches this handler.
func (h *Handlers) CheckSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": sess.String()})
}

// ListTodos returns the caller's items. Query parameters: incomplete
// (true/false) and sort (one of the six sort orders); either one left
// unset falls back to the configured default.
func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	onlyIncomplete := h.DefaultOnlyIncomplete
	if v := r.URL.Query().Get("incomplete"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid incomplete parameter", http.StatusBadRequest)
			return
		}
		onlyIncomplete = b
	}

	order := h.DefaultSortOrder
	if v := r.URL.Query().Get("sort"); v != "" {
		parsed, err := models.ParseSortOrder(v)
		if err != nil {
			http.Error(w, "Invalid sort order", http.StatusBadRequest)
			return
		}
		order = parsed
	}

	items, err := h.Todos.List(r.Context(), sess, onlyIncomplete, order)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if items == nil {
		items = []models.TodoItem{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// AddTodo stores a new item for the caller.
func (h *Handlers) AddTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	var form todoForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if form.Title == "" {
		http.Error(w, "Title required", http.StatusBadRequest)
		return
	}
	item, err := form.item()
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	if err := h.Todos.Add(r.Context(), sess, item); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetTodo returns a single item by id.
func (h *Handlers) GetTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	id, err := todoID(r)
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return
	}

	item, err := h.Todos.Get(r.Context(), id, sess)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// EditTodo overwrites an existing item.
func (h *Handlers) EditTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	id, err := todoID(r)
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return
	}

	var form todoForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if form.Title == "" {
		http.Error(w, "Title required", http.StatusBadRequest)
		return
	}
	item, err := form.item()
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	item.ID = id

	if err := h.Todos.Edit(r.Context(), item, sess); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDone flips the done flag of an existing item.
func (h *Handlers) UpdateDone(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	id, err := todoID(r)
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Todos.ChangeDone(r.Context(), id, sess, body.Done); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func todoID(r *http.Request) (uint32, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
