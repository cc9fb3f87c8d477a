package core

import (
	"net/http"
)

// AppError is an error the page shell knows how to render as an error view.
type AppError int

const (
	NotFound AppError = iota
	Internal
)

func (e AppError) StatusCode() int {
	switch e {
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e AppError) Error() string {
	switch e {
	case NotFound:
		return "Not Found"
	default:
		return "Internal Server Error"
	}
}

// ErrorData feeds the error view. Errors is rendered as a list, one item per
// status/message pair.
type ErrorData struct {
	Title   string
	Message string
	Errors  []ErrorItem
	IsDev   bool
}

type ErrorItem struct {
	Status  int
	Message string
}

func NewErrorData(isDev bool, errs ...AppError) ErrorData {
	data := ErrorData{
		Title: "Error",
		IsDev: isDev,
	}
	for _, e := range errs {
		data.Errors = append(data.Errors, ErrorItem{Status: e.StatusCode(), Message: e.Error()})
	}
	return data
}
