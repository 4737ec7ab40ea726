package api

import (
	"net/http"

	"go.uber.org/zap"

	"folio/internal/storage"
)

const maxUploadSize = 20 << 20 // 20 MiB multipart cap; policies enforce tighter limits

func (d Dependencies) uploadImage(w http.ResponseWriter, r *http.Request) {
	d.upload(w, r, storage.ImagePolicy, "images")
}

func (d Dependencies) uploadPDF(w http.ResponseWriter, r *http.Request) {
	d.upload(w, r, storage.PDFPolicy, "documents")
}

// upload stores one multipart "file" field. The optional folder query
// parameter overrides the endpoint's default folder.
func (d Dependencies) upload(w http.ResponseWriter, r *http.Request, policy storage.UploadPolicy, defaultFolder string) {
	if _, ok := d.currentProfile(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart body", d.Log)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field", d.Log)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := policy.ValidateFile(header.Filename, contentType, header.Size); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), d.Log)
		return
	}

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = defaultFolder
	}

	url, err := d.Media.Save(r.Context(), folder, header.Filename, file)
	if err != nil {
		d.Log.Error("store upload", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to store file", d.Log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
