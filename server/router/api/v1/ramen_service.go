package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apierrors "github.com/watayuraType-C/playground-ramen-concierge/server/internal/errors"
	"github.com/watayuraType-C/playground-ramen-concierge/server/service/ramen"
)

type textRequest struct {
	// Text stays untyped so a non-string value fails validation, not decoding.
	Text any `json:"text"`
}

func (r *textRequest) text() string {
	text, _ := r.Text.(string)
	return text
}

type updateRequest struct {
	ID any `json:"id"`
	ramen.ShopInput
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	ID      int32  `json:"id"`
	Message string `json:"message"`
}

func (s *APIV1Service) ParseRamen(c echo.Context) error {
	req := &textRequest{}
	if err := decodeJSON(c, req); err != nil {
		return err
	}
	draft, err := s.RamenService.Parse(c.Request().Context(), req.text())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

func (s *APIV1Service) RegisterRamen(c echo.Context) error {
	input := &ramen.ShopInput{}
	if err := decodeJSON(c, input); err != nil {
		if apierrors.IsCode(err, apierrors.ErrCodeInvalidJSON) {
			return err
		}
		return apierrors.BadRequest("登録データが正しくありません。")
	}
	shop, err := s.RamenService.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, &registerResponse{
		ID:      shop.ID,
		Message: "ラーメン情報の登録が完了しました！",
	})
}

func (s *APIV1Service) SearchRamen(c echo.Context) error {
	req := &textRequest{}
	if err := decodeJSON(c, req); err != nil {
		return err
	}
	result, err := s.RamenService.Search(c.Request().Context(), req.text())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) ListRamen(c echo.Context) error {
	shops, err := s.RamenService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shops)
}

func (s *APIV1Service) UpdateRamen(c echo.Context) error {
	req := &updateRequest{}
	if err := decodeJSON(c, req); err != nil {
		if apierrors.IsCode(err, apierrors.ErrCodeInvalidJSON) {
			return err
		}
		return apierrors.BadRequest("更新データが正しくありません。")
	}
	id, ok := parseID(req.ID)
	if !ok {
		return apierrors.BadRequest("更新するIDが指定されていません。")
	}
	if _, err := s.RamenService.Update(c.Request().Context(), id, &req.ShopInput); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &messageResponse{Message: "更新しました"})
}

func (s *APIV1Service) DeleteRamen(c echo.Context) error {
	id, ok := parseID(c.QueryParam("id"))
	if !ok {
		return apierrors.BadRequest("削除するIDが指定されていません。")
	}
	if err := s.RamenService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &messageResponse{Message: "削除しました"})
}

// parseID accepts a positive integer given as a JSON number or a string.
func parseID(v any) (int32, bool) {
	switch x := v.(type) {
	case float64:
		if x <= 0 || x != float64(int32(x)) {
			return 0, false
		}
		return int32(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 32)
		if err != nil || n <= 0 {
			return 0, false
		}
		return int32(n), true
	default:
		return 0, false
	}
}
