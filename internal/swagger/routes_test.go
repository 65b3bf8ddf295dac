package swagger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixeltrack/internal/env"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func TestDocJSONCarriesVersionAndRoutes(t *testing.T) {
	env.VERSION = "9.9.9"

	app := fiber.New()
	Register(app)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "9.9.9", doc.Info.Version)
	require.Contains(t, doc.Paths, "/events")
	require.Contains(t, doc.Paths, "/user/pixels")
}

func TestDocsUI(t *testing.T) {
	app := fiber.New()
	Register(app)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Type"), "text/html")
}
