package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidDimensions = "INVALID_DIMENSIONS"
	CodeBoardTooLarge     = "BOARD_TOO_LARGE"
	CodeTooManyMines      = "TOO_MANY_MINES"
	CodeInvalidDifficulty = "INVALID_DIFFICULTY"
	CodeInvalidPosition   = "INVALID_POSITION"
	CodeInvalidButton     = "INVALID_BUTTON"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeGameFinished      = "GAME_FINISHED"
	CodeUnknownStrategy   = "UNKNOWN_STRATEGY"
	CodeNoMoveAvailable   = "NO_MOVE_AVAILABLE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrInvalidDimensions):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, "Width and height must be at least 1"}}
	case errors.Is(err, model.ErrBoardTooLarge):
		return &httpError{http.StatusBadRequest, APIError{CodeBoardTooLarge, fmt.Sprintf("Width and height must be at most %d", model.MaxDimension)}}
	case errors.Is(err, model.ErrTooManyMines):
		return &httpError{http.StatusBadRequest, APIError{CodeTooManyMines, "Mine count must be less than the number of cells"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Unknown difficulty"}}
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrInvalidButton):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidButton, "Button must be left or right"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown bot strategy"}}
	case errors.Is(err, model.ErrNoMoveAvailable):
		return &httpError{http.StatusConflict, APIError{CodeNoMoveAvailable, "No move available"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
