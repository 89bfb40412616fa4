// Package handlers implements the HTTP endpoints of the marketplace API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// errorBody is the standard error response shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an application error onto its HTTP status and writes the
// standard body.  Server-side errors are masked.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatusForCode(code)

	body := errorBody{Code: code.String(), Message: apperrors.DefaultMessageForCode(code)}
	if apperrors.IsClientError(code) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			body.Message = appErr.Message
			body.Detail = appErr.Detail
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
		Code:    apperrors.ErrCodeBadRequest.String(),
		Message: "invalid request body",
		Detail:  err.Error(),
	})
}

// parsePagination extracts page and page_size query parameters with the
// standard caps.
func parsePagination(c *gin.Context) common.Pagination {
	page := 1
	pageSize := 20

	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := c.Query("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return common.Pagination{Page: page, PageSize: pageSize}
}
