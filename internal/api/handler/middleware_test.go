package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func callWithAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (bool, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}

	err := mw(next)(c)
	require.NoError(t, err)
	return reached, rec
}

func TestAuthnSweepRejectsBeforeAnyWork(t *testing.T) {
	mw := AuthnSweep("topsecret")

	reached, rec := callWithAuth(t, mw, "")
	require.False(t, reached)
	require.NotEqual(t, http.StatusOK, rec.Code)

	reached, rec = callWithAuth(t, mw, "Bearer wrong")
	require.False(t, reached)
	require.NotEqual(t, http.StatusOK, rec.Code)
}

func TestAuthnSweepAcceptsMatchingSecret(t *testing.T) {
	mw := AuthnSweep("topsecret")

	reached, rec := callWithAuth(t, mw, "Bearer topsecret")
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
}
