package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/lifecycle"
)

type createJobRequest struct {
	model.Job
	Logger       string `json:"logger,omitempty"`
	PapertrailID string `json:"papertrailId,omitempty"`
}

type publishRequest struct {
	Message string `json:"message"`
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	skip, err := intParam(values.Get("skip"), "skip")
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	limit, err := intParam(values.Get("limit"), "limit")
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	jobs, err := h.service.List(r.Context(), &lifecycle.ListQuery{
		Status:   values.Get("status"),
		UserID:   values.Get("userId"),
		Platform: values.Get("platform"),
		Language: values.Get("language"),
		Sort:     values.Get("sort"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	data, err := project(jobs, values.Get("fields"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "", data)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "", job)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	request := &createJobRequest{}
	if err := decode(r, request); err != nil {
		h.fail(w, err, nil)
		return
	}
	var options []lifecycle.CreateOption
	if request.Logger != "" {
		options = append(options, lifecycle.WithLoggerName(request.Logger))
	}
	if request.PapertrailID != "" {
		options = append(options, lifecycle.WithPapertrailID(request.PapertrailID))
	}
	job, err := h.service.Create(r.Context(), &request.Job, options...)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "Job created", job)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	patch := map[string]interface{}{}
	if err := decode(r, &patch); err != nil {
		h.fail(w, err, nil)
		return
	}
	job, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "Job updated", job)
}

func (h *Handler) submitJob(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		var data interface{}
		if result != nil {
			data = result
		}
		h.fail(w, err, data)
		return
	}
	h.ok(w, "Job has been successfully submitted", result)
}

func (h *Handler) completeJob(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		var data interface{}
		if result != nil {
			data = result.Job
		}
		h.fail(w, err, data)
		return
	}
	h.ok(w, "Job updated and server released", result)
}

func (h *Handler) messageJob(w http.ResponseWriter, r *http.Request) {
	request := &lifecycle.MessageRequest{}
	if err := decode(r, request); err != nil {
		h.fail(w, err, nil)
		return
	}
	line, err := h.service.Message(r.Context(), chi.URLParam(r, "id"), request)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, line, line)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	request := &publishRequest{}
	if err := decode(r, request); err != nil {
		h.fail(w, err, nil)
		return
	}
	relay, err := h.service.Publish(r.Context(), request.Message)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "Message successfully published.", relay)
}

func decode(r *http.Request, target interface{}) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return &model.ValidationError{Field: "body", Value: err.Error()}
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, target); err != nil {
		return &model.ValidationError{Field: "body", Value: err.Error()}
	}
	return nil
}

func intParam(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	ret, err := strconv.Atoi(value)
	if err != nil || ret < 0 {
		return 0, &model.ValidationError{Field: name, Value: value}
	}
	return ret, nil
}
