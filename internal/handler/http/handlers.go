package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"example.com/userdir/internal/domain"
	"example.com/userdir/internal/storage"
	"example.com/userdir/internal/usecase"
	"example.com/userdir/pkg/response"
)

const (
	msgCreated      = "User added successfully."
	msgAgeUpdated   = "User age updated successfully."
	msgDeleted      = "User deleted successfully."
	msgNotFound     = "User ID not found"
	msgConflict     = "Email already exists."
	msgInvalidRoute = "Invalid Method or URL"
	msgInvalidBody  = "Invalid request body"
	msgTooLarge     = "Request body too large"
	msgInternal     = "Internal server error"
)

// DefaultMaxBodyBytes bounds request bodies when New is given a
// non-positive limit.
const DefaultMaxBodyBytes = 1 << 20

type Service interface {
	List() ([]domain.User, error)
	GetByID(id int64) (domain.User, error)
	Create(in usecase.CreateUserInput) (domain.User, error)
	Ensure(id int64) error
	UpdateAge(id int64, in usecase.UpdateUserInput) (domain.User, error)
	Delete(id int64) error
}

type Handler struct {
	mux     *http.ServeMux
	svc     Service
	logger  *slog.Logger
	maxBody int64
}

func New(svc Service, logger *slog.Logger, maxBody int64) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	h := &Handler{
		mux:     http.NewServeMux(),
		svc:     svc,
		logger:  logger,
		maxBody: maxBody,
	}
	h.routes()
	return withMiddleware(h.mux, logger)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("POST /user", h.createUser)
	h.mux.HandleFunc("PATCH /user/{id}", h.updateUser)
	h.mux.HandleFunc("DELETE /user/{id}", h.deleteUser)
	h.mux.HandleFunc("GET /user", h.users)
	h.mux.HandleFunc("GET /user/{id}", h.user)
	h.mux.HandleFunc("GET /healthz", h.health)
	// Matches every method and path not claimed above, so the mux never
	// answers 405 on its own.
	h.mux.HandleFunc("/", h.notFound)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	response.Envelope(w, http.StatusNotFound, msgInvalidRoute)
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List()
	if err != nil {
		h.writeError(w, r, err, msgNotFound)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Envelope(w, http.StatusNotFound, msgNotFound)
		return
	}
	item, err := h.svc.GetByID(id)
	if err != nil {
		h.writeError(w, r, err, msgNotFound)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateUserInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeBodyError(w, err)
		return
	}
	created, err := h.svc.Create(req)
	if err != nil {
		h.writeError(w, r, err, msgNotFound)
		return
	}
	h.logger.Info("user created", "id", created.ID)
	response.Envelope(w, http.StatusCreated, msgCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Envelope(w, http.StatusNotFound, msgNotFound)
		return
	}
	// Unknown ids are rejected before the body is read.
	if err := h.svc.Ensure(id); err != nil {
		h.writeError(w, r, err, msgNotFound)
		return
	}
	var req usecase.UpdateUserInput
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeBodyError(w, err)
		return
	}
	if _, err := h.svc.UpdateAge(id, req); err != nil {
		h.writeError(w, r, err, msgNotFound)
		return
	}
	h.logger.Info("user age updated", "id", id)
	response.Envelope(w, http.StatusOK, msgAgeUpdated)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Envelope(w, http.StatusNotFound, msgNotFound+".")
		return
	}
	if err := h.svc.Delete(id); err != nil {
		h.writeError(w, r, err, msgNotFound+".")
		return
	}
	h.logger.Info("user deleted", "id", id)
	response.Envelope(w, http.StatusOK, msgDeleted)
}

// decodeJSON reads a single JSON value. An empty body decodes as the zero
// value so that presence checks report the missing fields.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("extra data")
	}
	return nil
}

func (h *Handler) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Envelope(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	response.Envelope(w, http.StatusBadRequest, msgInvalidBody)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Envelope(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, storage.ErrNotFound):
		response.Envelope(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrConflict):
		response.Envelope(w, http.StatusConflict, msgConflict)
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"err", err,
		)
		response.Envelope(w, http.StatusInternalServerError, msgInternal)
	}
}

// parseID reports false for ids that cannot name any user.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
