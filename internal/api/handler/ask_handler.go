package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

type AskHandler struct {
	askService ports.AskService
}

func NewAskHandler(askService ports.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// Ask answers a question from the selected retrieval backends.
//
// @Summary      Ask a question
// @Tags         ask
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      askRequest  true  "Question and optional backend names"
// @Success      200   {object}  askResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /ask [post]
func (h *AskHandler) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}

	res, err := h.askService.Ask(c.Request().Context(), ports.AskInput{
		Question: req.Question,
		Sources:  req.Sources,
		Subject:  ctxSubject(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAskResponse(res))
}
