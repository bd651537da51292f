package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == target
}

// pathID parses the named chi URL parameter as a positive int64 id.
func pathID(r *http.Request, name string) (int64, bool) {
	return parsePositive(chi.URLParam(r, name))
}

func parsePositive(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
