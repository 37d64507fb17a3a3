package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// fakeVerifier accepts tokens of the form "user-<id>".
type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (*models.Identity, error) {
	raw, ok := strings.CutPrefix(token, "user-")
	if !ok {
		return nil, errors.New("bad token")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &models.Identity{UserID: id}, nil
}

type request struct {
	method  string
	path    string
	token   string
	company string
}

func do(t *testing.T, app *fiber.App, r request) (int, models.ApiResponse) {
	t.Helper()
	method := r.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, r.path, nil)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.company != "" {
		req.Header.Set("X-Company-Id", r.company)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.ApiResponse
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(models.Success("ok"))
}
