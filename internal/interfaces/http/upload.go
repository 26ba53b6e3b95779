package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"snaplist/internal/domain/attachment"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHandler struct {
	store attachment.Store
}

func NewUploadHandler(store attachment.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

type UploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// HandleUpload stores a multipart-uploaded image and returns its public URL
// together with the original file name. The client attaches both to the todo
// it inserts next; an error here aborts that insert entirely.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "File exceeds the 5MB upload limit", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		http.Error(w, "Only image files are allowed (jpg, jpeg, png, gif, webp)", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	key := attachment.NewKey(header.Filename)

	if err := h.store.Upload(r.Context(), key, contentType, file); err != nil {
		log.Printf("Error uploading attachment %s: %v", key, err)
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{
		URL:  h.store.PublicURL(key),
		Name: header.Filename,
	})
}
