package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http/apierr"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// handlerFunc is an HTTP handler that reports failures as errors; handle
// turns them into JSON error responses.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// requestError marks an error caused by an unreadable request (body or
// path parameter) rather than by the business layer.
type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }

func (e requestError) Unwrap() error { return e.err }

func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var reqErr requestError
		if errors.As(err, &reqErr) {
			s.handleRequestError(w, r, reqErr.err)
			return
		}

		s.handleResponseError(w, r, err)
	}
}

func (s *Service) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(apperr.ValidationErr.WrapParent(err))
	s.logger.WarnContext(r.Context(), "http request error", slog.Any("error", err))
	s.writeError(w, r, res)
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err, apierr.ExposeInternal(s.cfg.ExposeErrors))

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	s.writeError(w, r, res)
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, res apierr.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, msg string) error {
	return writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return requestError{errors.New("request body is empty")}
		}
		return requestError{fmt.Errorf("decode request body: %w", err)}
	}

	return nil
}

// pathID binds the {id} path segment as an integer.
func pathID(r *http.Request) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		}); err != nil {
		return 0, requestError{fmt.Errorf("invalid format for parameter id: %w", err)}
	}

	return id, nil
}
