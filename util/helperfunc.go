package util

import (
	"errors"
	"net/http"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorResponse(params APIErrorParams) APIResponse {
	errMsg := ""
	if params.Err != nil {
		errMsg = params.Err.Error()
	}
	return APIResponse{
		Success: false,
		Error:   errMsg,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	}
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(params))
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorResponse(params))
}

// CallTooManyRequests is for return API response when the client is throttled
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusTooManyRequests, errorResponse(params))
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, errorResponse(params))
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	response := APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	}
	c.JSON(http.StatusOK, response)
}

// StatusFor returns the HTTP status an apperror kind is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrBadRequest), errors.Is(err, apperror.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CallAppError writes err with the status of its kind. fallback is the message used
// when err carries no client facing message (storage errors).
func CallAppError(c *gin.Context, err error, fallback string) {
	params := APIErrorParams{Msg: apperror.Message(err, fallback), Err: err}
	switch StatusFor(err) {
	case http.StatusNotFound:
		CallErrorNotFound(c, params)
	case http.StatusBadRequest:
		CallUserError(c, params)
	default:
		_ = c.Error(err)
		CallServerError(c, params)
	}
}
