package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes bounds a single multipart file.
const maxUploadBytes = 32 << 20

// HTTPErrorHandler renders aggregates as 400 with every entry, echo errors with
// their own code, and anything else as a bare 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var body interface{} = echo.Map{"message": http.StatusText(http.StatusInternalServerError)}

	var he *echo.HTTPError
	if agg, ok := apperrors.As(err); ok {
		status = http.StatusBadRequest
		body = agg
	} else if errors.As(err, &he) {
		status = he.Code
		body = echo.Map{"message": he.Message}
	} else {
		log.Printf("Unhandled error on %s %s: %v\n", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Printf("Failed to write error response: %v\n", err)
	}
}

// currentUserID reads the id the JWT middleware stored on the context.
func currentUserID(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
	}
	return claims.UserID, nil
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func queryID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// pageParams binds pageNumber/pageSize; missing or non-positive values fall back to the defaults.
func pageParams(c echo.Context) (pagination.Params, error) {
	var p pagination.Params
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "Invalid pagination parameters")
	}
	return p.Normalize(), nil
}

// bindAndValidate binds the request and runs e.Validator over it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// formFiles reads every file sent under field. A request that is not multipart yields none.
func formFiles(c echo.Context, field string) ([]services.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}

	var uploads []services.Upload
	for _, fh := range form.File[field] {
		if fh.Size > maxUploadBytes {
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, fh.Filename+" is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, services.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

func formFile(c echo.Context, field string) (*services.Upload, error) {
	files, err := formFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}
