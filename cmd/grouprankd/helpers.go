package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/groupfile"
	"github.com/ezBadminton/grouprank/internal/config"
	"github.com/ezBadminton/grouprank/setscore"
)

const maxBodyBytes = 1_048_576

type jsonResponse map[string]any

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := writeJSON(w, status, jsonResponse{"error": message}); err != nil {
		s.logger.Error("writing error response", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
}

func (s *server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal server error", slog.Any("error", err), slog.String("path", r.URL.Path))
	message := "the server encountered a problem and could not process your request"
	s.errorResponse(w, r, http.StatusInternalServerError, message)
}

// Errors caused by the content of a request
var requestErrors = []error{
	core.ErrTooFewTeams,
	core.ErrDuplicateTeam,
	core.ErrUnknownTeam,
	core.ErrUnknownMatch,
	core.ErrSameTeam,
	core.ErrInvalidRank,
	core.ErrInvalidFixture,
	core.ErrInvalidRoundBound,
	groupfile.ErrInvalidScore,
	groupfile.ErrScoreAndWinner,
	setscore.ErrPointsZero,
}

func isRequestError(err error) bool {
	for _, target := range requestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Maps the errors of a prediction to HTTP responses
func (s *server) predictionErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, config.ErrTooManyRemaining):
		s.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case isRequestError(err):
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	default:
		s.serverErrorResponse(w, r, err)
	}
}
