package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/fingerprint"
	"github.com/kozaktomas/slide-sheets/internal/job"
	"github.com/kozaktomas/slide-sheets/internal/layout"
	"github.com/kozaktomas/slide-sheets/internal/raster"
)

// multipartMemory is how much of an upload is held in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// SheetsHandler handles planning and rendering of uploaded documents.
type SheetsHandler struct {
	config  *config.Config
	store   *RenderStore
	decoder raster.Decoder
}

// NewSheetsHandler creates a new sheets handler.
func NewSheetsHandler(cfg *config.Config, store *RenderStore, dec raster.Decoder) *SheetsHandler {
	return &SheetsHandler{
		config:  cfg,
		store:   store,
		decoder: dec,
	}
}

// PlanResponse is the dry-run result of a job.
type PlanResponse struct {
	Report         *layout.Report         `json:"report"`
	NearDuplicates []raster.NearDuplicate `json:"near_duplicates"`
}

// RenderResponse is returned after a successful render.
type RenderResponse struct {
	*Render
	PDFURL string `json:"pdf_url"`
}

// requestError carries the HTTP status an upload problem maps to.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...any) *requestError {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// upload is a parsed and decoded render request.
type upload struct {
	job     *job.Job
	library *raster.Library
	groups  []layout.Group
	opts    layout.GlobalOptions
	dir     string
}

func (u *upload) cleanup() {
	if u.dir != "" {
		os.RemoveAll(u.dir)
	}
}

// Defaults returns the group settings applied when a job sets none.
func (h *SheetsHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.config.Defaults)
}

// Plan lays out an uploaded job without producing a PDF.
func (h *SheetsHandler) Plan(w http.ResponseWriter, r *http.Request) {
	u, err := h.readUpload(w, r)
	if err != nil {
		respondUploadError(w, err)
		return
	}
	defer u.cleanup()

	plan, err := layout.PlanDocument(u.groups, u.library, u.opts)
	if err != nil {
		respondLayoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PlanResponse{
		Report:         layout.NewReport(plan, u.opts),
		NearDuplicates: u.library.FindNearDuplicates(u.job.DocumentIDs(), fingerprint.DefaultThreshold),
	})
}

// Render renders an uploaded job and keeps the PDF for download.
func (h *SheetsHandler) Render(w http.ResponseWriter, r *http.Request) {
	u, err := h.readUpload(w, r)
	if err != nil {
		respondUploadError(w, err)
		return
	}
	defer u.cleanup()

	pdf, report, err := layout.RenderDocument(u.groups, u.library, u.opts)
	if err != nil {
		respondLayoutError(w, err)
		return
	}

	stored := h.store.Put(pdf, report)
	log.Printf("Rendered %q: %d pages from %d source pages (%d bytes)",
		sanitizeForLog(report.Title), report.PageCount, report.SourcePages, len(pdf))

	respondJSON(w, http.StatusCreated, RenderResponse{
		Render: stored,
		PDFURL: "/api/v1/renders/" + stored.ID + "/pdf",
	})
}

// Get returns the metadata and report of a stored render.
func (h *SheetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored := h.store.Get(chi.URLParam(r, "id"))
	if stored == nil {
		respondError(w, http.StatusNotFound, "render not found")
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// PDF streams a stored render.
func (h *SheetsHandler) PDF(w http.ResponseWriter, r *http.Request) {
	stored := h.store.Get(chi.URLParam(r, "id"))
	if stored == nil {
		respondError(w, http.StatusNotFound, "render not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename(stored.Title)))
	w.Header().Set("Content-Length", strconv.Itoa(len(stored.PDF())))
	w.WriteHeader(http.StatusOK)
	w.Write(stored.PDF())
}

// Delete removes a stored render.
func (h *SheetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "render not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readUpload parses the multipart form (a "job" field plus "files"), saves
// the files, decodes every document and resolves the job's groups.
func (h *SheetsHandler) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Web.MaxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, message: "upload too large"}
		}
		return nil, badRequest("failed to parse multipart form")
	}

	jobText := r.FormValue("job")
	if jobText == "" {
		return nil, badRequest("job is required")
	}
	j, err := job.Parse([]byte(jobText), h.config.Defaults)
	if err != nil {
		return nil, badRequest("%v", err)
	}

	dir, err := os.MkdirTemp("", "slide-sheets-upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	u := &upload{job: j, dir: dir}

	saved, err := saveUploadedFiles(r.MultipartForm.File["files"], dir)
	if err != nil {
		u.cleanup()
		return nil, err
	}
	for i, doc := range j.Documents {
		name := filepath.Base(doc.Path)
		path, ok := saved[name]
		if !ok {
			u.cleanup()
			return nil, badRequest("documents[%d].path: file %q was not uploaded", i, name)
		}
		j.Documents[i].Path = path
	}

	u.library, err = raster.DecodeAll(r.Context(), h.decoder, j.Sources(), h.config.Render.Workers, nil)
	if err != nil {
		u.cleanup()
		if errors.Is(err, raster.ErrToolMissing) {
			return nil, &requestError{status: http.StatusServiceUnavailable, message: err.Error()}
		}
		return nil, &requestError{status: http.StatusUnprocessableEntity, message: err.Error()}
	}

	u.groups, u.opts, err = j.Build(u.library, h.config.Render.LabelLength)
	if err != nil {
		u.cleanup()
		return nil, badRequest("%v", err)
	}
	return u, nil
}

// saveUploadedFiles saves multipart files into dir, keyed by base name.
func saveUploadedFiles(files []*multipart.FileHeader, dir string) (map[string]string, error) {
	saved := make(map[string]string, len(files))
	for _, fileHeader := range files {
		safeName := filepath.Base(fileHeader.Filename)
		if safeName == "." || safeName == string(filepath.Separator) {
			return nil, badRequest("invalid file name %q", fileHeader.Filename)
		}
		if _, dup := saved[safeName]; dup {
			return nil, badRequest("file %q uploaded twice", safeName)
		}
		path := filepath.Join(dir, safeName)
		if err := saveUploadedFile(fileHeader, path); err != nil {
			return nil, err
		}
		saved[safeName] = path
	}
	return saved, nil
}

func saveUploadedFile(fileHeader *multipart.FileHeader, path string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest("failed to open file: %s", fileHeader.Filename)
	}
	defer file.Close()

	out, err := os.Create(path) //nolint:gosec // filename sanitized via filepath.Base
	if err != nil {
		return errors.New("failed to create temp file")
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return errors.New("failed to save file")
	}
	return out.Close()
}

func respondUploadError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		respondError(w, reqErr.status, reqErr.message)
		return
	}
	log.Printf("Upload failed: %v", err)
	respondError(w, http.StatusInternalServerError, "failed to process upload")
}

// respondLayoutError maps layout failures: bad input is the client's fault,
// anything else is ours.
func respondLayoutError(w http.ResponseWriter, err error) {
	var invalid *layout.InvalidLayoutError
	var missing *layout.MissingImageError
	switch {
	case errors.Is(err, layout.ErrEmptyInput), errors.As(err, &invalid), errors.As(err, &missing):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Render failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to render document")
	}
}

func pdfFilename(title string) string {
	if title == "" {
		return "slides.pdf"
	}
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r == '"' || r == '/' || r == '\\' || r < 0x20:
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out) + ".pdf"
}
