package handlers

import (
	"errors"
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/metrics"
	"github.com/precinct-systems/precinct-stack/records/internal/storage"
)

// maxUploadBytes caps a single multipart upload at 8 MiB.
const maxUploadBytes = 8 << 20

// uploadKinds maps the URL kind segment to the storage subdirectory.
// Anything else is rejected.
var uploadKinds = map[string]string{
	"fotos":      "fotos",
	"evidencias": "evidencias",
}

type UploadHandler struct {
	store *storage.LocalStore
}

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts one multipart file and returns its public path. The
// caller attaches the path to a record in a follow-up request.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind, ok := uploadKinds[r.PathValue("kind")]
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "unknown upload kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		metrics.UploadsTotal.WithLabelValues(kind, "rejected").Inc()
		httputil.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(kind, "rejected").Inc()
		httputil.WriteError(w, http.StatusBadRequest, "arquivo field is required")
		return
	}
	defer file.Close()

	path, err := h.store.Save(kind, header.Filename, file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			metrics.UploadsTotal.WithLabelValues(kind, "rejected").Inc()
			httputil.WriteError(w, http.StatusUnsupportedMediaType, "unsupported file type")
			return
		}
		metrics.UploadsTotal.WithLabelValues(kind, "error").Inc()
		httputil.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	metrics.UploadsTotal.WithLabelValues(kind, "ok").Inc()
	httputil.WriteCreated(w, map[string]string{"path": path})
}
