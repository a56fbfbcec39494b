package httputil

import (
	"encoding/json"
	"net/http"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeProblem = "application/problem+json"
)

// rfc7231 sections for the statuses the API returns
var problemSections = map[int]string{
	http.StatusBadRequest:            "6.5.1",
	http.StatusForbidden:             "6.5.3",
	http.StatusNotFound:              "6.5.4",
	http.StatusConflict:              "6.5.8",
	http.StatusRequestEntityTooLarge: "6.5.11",
	http.StatusUnsupportedMediaType:  "6.5.13",
	http.StatusInternalServerError:   "6.6.1",
	http.StatusServiceUnavailable:    "6.6.4",
}

// problemType returns the RFC 7807 "type" URI for status
func problemType(status int) string {
	if status == http.StatusUnauthorized {
		return "https://datatracker.ietf.org/doc/html/rfc7235#section-3.1"
	}
	if section, ok := problemSections[status]; ok {
		return "https://datatracker.ietf.org/doc/html/rfc7231#section-" + section
	}
	return "about:blank"
}

// ProblemDetail is an RFC 7807 error body. Extra keys are written next to
// the standard members.
type ProblemDetail struct {
	Type   string
	Title  string
	Status int
	Detail string
	Extra  map[string]interface{}
}

// MarshalJSON flattens Extra into the top-level object
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// write marshals body before touching the response, so an encoding failure
// still produces a clean 500
func write(w http.ResponseWriter, status int, contentType string, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondJSON writes data as a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, contentTypeJSON, data)
}

// RespondError writes a problem response
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes a problem response with additional top-level fields
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	write(w, status, contentTypeProblem, ProblemDetail{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Extra:  extras,
	})
}

// RespondNoContent writes a 204 with no body
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
