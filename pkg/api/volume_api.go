package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mittwald/volumeprobe/pkg/volume"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxWriteBodyBytes = 1 << 20

// Volume is the set of operations served over HTTP.
type Volume interface {
	Path() string
	Status() *volume.Status
	Write(message string) (*volume.WriteResult, error)
	Read() (*volume.SharedState, error)
	Files() (*volume.FileList, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

type WriteRequest struct {
	Message string `json:"message"`
}

type volumeHandlers struct {
	volume Volume
}

// NewVolumeApi returns an Api serving the probe routes for v.
func NewVolumeApi(listenAddr string, v Volume) *Api {
	api := NewApi(listenAddr)
	h := &volumeHandlers{volume: v}

	api.RegisterMiddlewareFuncs(requestLogger)
	api.RegisterHandler("/", []string{http.MethodGet}, h.status)
	api.RegisterHandler("/write", []string{http.MethodPost}, h.write)
	api.RegisterHandler("/read", []string{http.MethodGet}, h.read)
	api.RegisterHandler("/files", []string{http.MethodGet}, h.files)

	return api
}

func (h *volumeHandlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.volume.Status())
}

func (h *volumeHandlers) write(w http.ResponseWriter, req *http.Request) {
	body := WriteRequest{}
	err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxWriteBodyBytes)).Decode(&body)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, err == io.EOF:
	case errors.As(err, &tooLarge):
		h.writeError(w, errors.Wrapf(err, "write request exceeds %d bytes", tooLarge.Limit))
		return
	default:
		log.WithFields(log.Fields{"kind": "http", "path": req.URL.Path}).WithError(err).Debug("ignoring undecodable request body")
		body.Message = ""
	}

	result, err := h.volume.Write(body.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *volumeHandlers) read(w http.ResponseWriter, _ *http.Request) {
	state, err := h.volume.Read()
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *volumeHandlers) files(w http.ResponseWriter, _ *http.Request) {
	list, err := h.volume.Files()
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *volumeHandlers) writeError(w http.ResponseWriter, err error) {
	log.WithFields(log.Fields{"kind": "volume", "path": h.volume.Path()}).WithError(err).Warn("volume operation failed")

	writeJSON(w, http.StatusInternalServerError, &ErrorResponse{
		Error: errors.Cause(err).Error(),
		Path:  h.volume.Path(),
	})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, &ErrorResponse{Error: "Not found"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
