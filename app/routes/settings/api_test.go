package settings

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	// The db and recomputer are never reached on a validation failure.
	SetupSettingsRoutes(app, nil, nil)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestGradingScaleRejectsInvertedInterval(t *testing.T) {
	app := newTestApp()
	body := `{"level":"O_LEVEL","grade":"A","min_mark":80,"max_mark":10,"points":1}`

	code := doJSON(t, app, fiber.MethodPost, "/api/settings/grading-scales/", body)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code = doJSON(t, app, fiber.MethodPut, "/api/settings/grading-scales/some-id", body)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestDivisionScaleRejectsInvertedInterval(t *testing.T) {
	app := newTestApp()
	body := `{"level":"O_LEVEL","division":"I","min_points":7,"max_points":3}`

	code := doJSON(t, app, fiber.MethodPost, "/api/settings/division-scales/", body)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code = doJSON(t, app, fiber.MethodPut, "/api/settings/division-scales/some-id", body)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestGradingScaleRequiresLevelAndGrade(t *testing.T) {
	app := newTestApp()
	code := doJSON(t, app, fiber.MethodPost, "/api/settings/grading-scales/", `{"min_mark":0,"max_mark":100}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
