package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	MessageInternal = "Something went wrong."
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Page       string `json:"page,omitempty"`
	Limit      string `json:"limit,omitempty"`
	TotalPages string `json:"totalPages,omitempty"`
	PrevPage   string `json:"prevPage,omitempty"`
	NextPage   string `json:"nextPage,omitempty"`
}

// Page describes one page of a list response and how to link its neighbours.
type Page struct {
	Number     int
	Limit      int
	TotalPages int
	// Path is the list route the prev/next links point at.
	Path string
}

func JSON(w http.ResponseWriter, r *http.Request, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.WarnContext(r.Context(), "response encode failed", "error", err, "path", r.URL.Path)
	}
}

func Success(w http.ResponseWriter, r *http.Request, message string, data any) {
	JSON(w, r, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Paginated writes a list response with string page fields and neighbour links.
func Paginated(w http.ResponseWriter, r *http.Request, message string, data any, p Page) {
	env := Envelope{
		Status:     StatusSuccess,
		Message:    message,
		Data:       data,
		Page:       strconv.Itoa(p.Number),
		Limit:      strconv.Itoa(p.Limit),
		TotalPages: strconv.Itoa(p.TotalPages),
	}
	if p.Number > 1 {
		env.PrevPage = PageLink(p.Path, p.Number-1, p.Limit)
	}
	if p.Number < p.TotalPages {
		env.NextPage = PageLink(p.Path, p.Number+1, p.Limit)
	}
	JSON(w, r, http.StatusOK, env)
}

func Error(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	JSON(w, r, status, Envelope{Status: StatusError, Message: message, Data: data})
}

func PageLink(path string, page, limit int) string {
	return path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
}
