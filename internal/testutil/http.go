package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"pixeltrack/internal/errmsg"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

// Request describes one call made through RequestRunner.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Token   *string
	Cookies []*http.Cookie
	Headers map[string]string
}

func RequestRunner(
	t *testing.T,
	app *fiber.App,
	r Request,
) (bodyBytes []byte, res *http.Response) {
	t.Helper()

	req, err := http.NewRequest(
		r.Method,
		r.Path,
		bytes.NewBuffer(r.Body),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if r.Token != nil {
		req.Header.Set("Authorization", "Bearer "+*r.Token)
	}
	for _, c := range r.Cookies {
		req.AddCookie(c)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	res, err = app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer res.Body.Close()

	bodyBytes, err = io.ReadAll(res.Body)
	require.NoError(t, err)

	return bodyBytes, res
}

func ResponseErrorCheck(
	t *testing.T,
	serr errmsg.StatusError,
	bodyBytes []byte,
	statusCode int,
) {
	t.Helper()
	require.Equal(t, serr.StatusCode, statusCode)

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	err := json.Unmarshal(bodyBytes, &body)
	require.NoError(t, err)

	require.Equal(t, serr.Message, body.Message)
	require.Equal(t, serr.Code, body.Error)
}

func MustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
