package handler

import (
	"net/http"

	"revorz/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		OK:      false,
		Error:   string(usecase.KindValidation),
		Message: msg,
	})
}

// usecaseのエラー種別をHTTPステータスへ変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if ae, ok := usecase.AsAppError(err); ok {
		status := http.StatusInternalServerError
		switch ae.Kind {
		case usecase.KindValidation:
			status = http.StatusBadRequest
		case usecase.KindNotFound:
			status = http.StatusNotFound
		case usecase.KindConflict:
			status = http.StatusConflict
		case usecase.KindStorage:
			status = http.StatusInternalServerError
		}
		return c.JSON(status, ErrorResponse{
			OK:      false,
			Error:   string(ae.Kind),
			Message: ae.Message,
		})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		OK:      false,
		Error:   string(usecase.KindStorage),
		Message: "internal error",
	})
}
