package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/lifecycle"
)

func (h *Handler) listServers(w http.ResponseWriter, r *http.Request) {
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
	servers, err := h.service.ListServers(r.Context(), &lifecycle.ServerQuery{
		Status:   values.Get("status"),
		Platform: values.Get("platform"),
		Language: values.Get("language"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	data, err := project(servers, values.Get("fields"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "", data)
}

func (h *Handler) getServer(w http.ResponseWriter, r *http.Request) {
	server, err := h.service.GetServer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "", server)
}

func (h *Handler) registerServer(w http.ResponseWriter, r *http.Request) {
	server := &model.Server{}
	if err := decode(r, server); err != nil {
		h.fail(w, err, nil)
		return
	}
	registered, err := h.service.RegisterServer(r.Context(), server)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.ok(w, "Server registered", registered)
}
