package v1handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"emailfinder/internal/discovery"
	"emailfinder/internal/validation"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type domainRequest struct {
	Domain string `json:"domain"`
}

type customNameRequest struct {
	Name string `json:"name"`
}

type verifyRequest struct {
	Count int `json:"count"`
}

type uploadResponse struct {
	Domains  []string        `json:"domains"`
	Workflow discovery.State `json:"workflow"`
}

type toggleResponse struct {
	Selected bool            `json:"selected"`
	Workflow discovery.State `json:"workflow"`
}

func (h *Handler) workflow(r *http.Request) *discovery.Workflow {
	return h.deps.Workflows.Get(sessionKey(r.Context()))
}

func (h *Handler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.workflow(r).Snapshot())
}

func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var patch discovery.FormPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.writeError(w, r, err)

		return
	}

	wf := h.workflow(r)
	if err := wf.ApplyPatch(patch); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

// SetDomain stores the typed domain and answers once its existence check is done.
func (h *Handler) SetDomain(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if !h.allow(w, r, h.lookups, ActionLookup) {
		return
	}

	wf := h.workflow(r)
	if _, err := wf.SetDomain(r.Context(), req.Domain); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

func (h *Handler) CheckDomain(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if !h.allow(w, r, h.lookups, ActionLookup) {
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Discovery.CheckDomain(r.Context(), req.Domain))
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	maxSize := h.opts.MaxUploadSize
	if maxSize <= 0 {
		maxSize = validation.MaxUploadSize
	}
	// leave room for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, validation.ErrFileTooLarge)

			return
		}
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "a .txt file is required"))

		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "could not read upload"))

		return
	}

	wf := h.workflow(r)
	domains, err := wf.SetFile(header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Domains: domains, Workflow: wf.Snapshot()})
}

func (h *Handler) ClearFile(w http.ResponseWriter, r *http.Request) {
	wf := h.workflow(r)
	if err := wf.ClearFile(); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

// AddCustomName selects the posted name, or the pending one when the body has none.
func (h *Handler) AddCustomName(w http.ResponseWriter, r *http.Request) {
	var req customNameRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)

			return
		}
	}

	wf := h.workflow(r)
	wf.AddCustomName(req.Name)

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

func (h *Handler) RemoveCustomName(w http.ResponseWriter, r *http.Request) {
	wf := h.workflow(r)
	wf.RemoveCustomName(chi.URLParam(r, "name"))

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

func (h *Handler) ToggleCustomName(w http.ResponseWriter, r *http.Request) {
	wf := h.workflow(r)
	selected := wf.ToggleCustomName(chi.URLParam(r, "name"))

	writeJSON(w, http.StatusOK, toggleResponse{Selected: selected, Workflow: wf.Snapshot()})
}

func (h *Handler) ResetWorkflow(w http.ResponseWriter, r *http.Request) {
	wf := h.workflow(r)
	if err := wf.Reset(); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, wf.Snapshot())
}

// Submit starts email generation. Every submission also counts as an AI lookup.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, h.submissions, ActionSubmit) || !h.allow(w, r, h.lookups, ActionLookup) {
		return
	}

	wf := h.workflow(r)
	token := Token(r.Context())
	h.run(w, r, wf, func(ctx context.Context) (<-chan error, error) {
		return wf.StartSubmit(ctx, token)
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)

			return
		}
	}

	wf := h.workflow(r)
	token := Token(r.Context())
	h.run(w, r, wf, func(ctx context.Context) (<-chan error, error) {
		return wf.StartVerify(ctx, token, req.Count)
	})
}

// runContext outlives r and is bounded by RunTimeout when set.
func (h *Handler) runContext(r *http.Request) (context.Context, context.CancelFunc) {
	parent := context.WithoutCancel(r.Context())
	if h.opts.RunTimeout > 0 {
		return context.WithTimeout(parent, h.opts.RunTimeout)
	}

	return context.WithCancel(parent)
}

// run starts a workflow run detached from the request. With ?wait=true the
// response is sent when the run ends; otherwise 202 is returned right away
// and clients poll GET /workflow.
func (h *Handler) run(w http.ResponseWriter,
	r *http.Request,
	wf *discovery.Workflow,
	start func(ctx context.Context) (<-chan error, error)) {
	ctx, cancel := h.runContext(r)

	done, err := start(ctx)
	if err != nil {
		cancel()
		h.writeError(w, r, err)

		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		go func() {
			<-done
			cancel()
		}()
		writeJSON(w, http.StatusAccepted, wf.Snapshot())

		return
	}

	select {
	case err = <-done:
		cancel()
	case <-r.Context().Done():
		logger.Info(r.Context(), "client left before the run finished")
		go func() {
			<-done
			cancel()
		}()

		return
	}

	state := wf.Snapshot()
	if err != nil {
		e := h.NewError(r.Context(), err)
		if state.Error != "" {
			e.Response.Message = state.Error
		}
		logger.Debug(r.Context(), "workflow run failed", zap.String("message", e.Response.Message))
		writeJSON(w, e.StatusCode, e.Response)

		return
	}

	writeJSON(w, http.StatusOK, state)
}
