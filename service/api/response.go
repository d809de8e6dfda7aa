package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/viant/thurgood/model"
	"go.uber.org/zap"
)

// Response represents the response envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// StatusOf maps an error onto HTTP status code
func StatusOf(err error) int {
	var (
		validation *model.ValidationError
		capacity   *model.NoCapacityError
		publish    *model.DispatchPublishError
		conflict   *model.ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &capacity):
		return http.StatusServiceUnavailable
	case errors.As(err, &publish):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, response *Response) {
	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		data = []byte(`{"success":false,"message":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *Handler) ok(w http.ResponseWriter, message string, data interface{}) {
	h.writeJSON(w, http.StatusOK, &Response{Success: true, Message: message, Data: data})
}

// fail writes error response; data carries partial results such as a completed job
func (h *Handler) fail(w http.ResponseWriter, err error, data interface{}) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, &Response{Message: err.Error(), Data: data})
}

// project keeps only the requested fields of each record; _id is always kept
func project[T any](records []*T, fields string) (interface{}, error) {
	if strings.TrimSpace(fields) == "" {
		return records, nil
	}
	keep := map[string]bool{"_id": true}
	for _, field := range strings.Split(fields, ",") {
		if field = strings.TrimSpace(field); field != "" {
			keep[field] = true
		}
	}
	ret := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		doc := map[string]interface{}{}
		if err = json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		for key := range doc {
			if !keep[key] {
				delete(doc, key)
			}
		}
		ret = append(ret, doc)
	}
	return ret, nil
}
