package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/kennel/internal/domain"
	"github.com/msomdec/kennel/internal/service"
)

// DogHandler handles dog HTTP requests.
type DogHandler struct {
	dogs *service.DogService
}

// NewDogHandler creates a new DogHandler.
func NewDogHandler(dogs *service.DogService) *DogHandler {
	return &DogHandler{dogs: dogs}
}

// HandleList returns every dog.
// GET /api/dogs
func (h *DogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	dogs, err := h.dogs.List(r.Context())
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dogs": toDogDTOs(dogs)})
}

// HandleGet returns one dog by id.
// GET /api/dogs/{id}
func (h *DogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	dog, err := h.dogs.FindByID(r.Context(), id)
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDogDTO(dog))
}

// HandleSearch returns the first dog with an exactly matching name.
// GET /api/dogs/search?name=Rex
func (h *DogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("name") {
		writeError(w, http.StatusBadRequest, "The name query parameter is required.")
		return
	}

	dog, err := h.dogs.FindByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDogDTO(dog))
}

// HandleCreate inserts a new dog.
// POST /api/dogs
// Request:  {"name":"Rex","breed":"Lab"}
// Response: {"id":1,"name":"Rex","breed":"Lab"}
func (h *DogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dogRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	dog, err := h.dogs.Create(r.Context(), req.Name, req.Breed)
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDogDTO(dog))
}

// HandleFindOrCreate returns the dog matching name and breed, creating it
// when absent.
// POST /api/dogs/find-or-create
func (h *DogHandler) HandleFindOrCreate(w http.ResponseWriter, r *http.Request) {
	var req dogRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	dog, err := h.dogs.FindOrCreate(r.Context(), req.Name, req.Breed)
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDogDTO(dog))
}

// HandleUpdate overwrites a dog's name and breed.
// PUT /api/dogs/{id}
func (h *DogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dogRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	dog, err := h.dogs.Update(r.Context(), id, service.DogPatch{Name: &req.Name, Breed: &req.Breed})
	if err != nil {
		handleDogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDogDTO(dog))
}

// HandleCreateTable ensures the dogs table exists.
// PUT /api/table
func (h *DogHandler) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	if err := h.dogs.CreateTable(r.Context()); err != nil {
		handleDogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDropTable removes the dogs table if present.
// DELETE /api/table
func (h *DogHandler) HandleDropTable(w http.ResponseWriter, r *http.Request) {
	if err := h.dogs.DropTable(r.Context()); err != nil {
		handleDogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid dog id.")
		return 0, false
	}
	return id, true
}

func handleDogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Dog not found.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotPersisted), errors.Is(err, domain.ErrAlreadyPersisted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("dog operation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
