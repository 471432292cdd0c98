package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodhub-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestErrorMirrorsHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set(constants.ContextKeyRequestID, "req-1")

	Forbidden(c, "forbidden")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected http status: %d", rec.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeForbidden || body.Msg != "forbidden" || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Page != 2 || p.PageSize != 20 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if BuildPagination(1, 0, 10).TotalPage != 0 {
		t.Fatalf("zero page size should not divide")
	}
}

func TestWrapErrorUnwraps(t *testing.T) {
	base := errors.New("boom")
	appErr := WrapError(CodeInternal, "failed", base)
	if !errors.Is(appErr, base) {
		t.Fatalf("app error should unwrap original error")
	}
	if appErr.Error() != "failed: boom" {
		t.Fatalf("unexpected error text: %s", appErr.Error())
	}
}

func TestAppErrorWriteAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	appErr := WrapError(CodeConflict, "order changed", nil)
	if appErr.Internal() {
		t.Fatalf("409 should not be internal")
	}
	appErr.Write(c)
	if !c.IsAborted() {
		t.Fatalf("write should abort the chain")
	}
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), `"status_code":409`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "pagination") {
		t.Fatalf("error body should not carry pagination: %s", w.Body.String())
	}
	if !WrapError(CodeInternal, "x", nil).Internal() {
		t.Fatalf("500 should be internal")
	}
}

func TestSuccessWithPageCarriesPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []int{1, 2}, BuildPagination(1, 2, 5))

	var body struct {
		StatusCode int         `json:"status_code"`
		Data       []int       `json:"data"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeOK || len(body.Data) != 2 || body.Pagination == nil || body.Pagination.TotalPage != 3 {
		t.Fatalf("unexpected page body: %s", w.Body.String())
	}
}
