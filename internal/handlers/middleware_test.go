package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, RequestLogger(zap.New(core)))
	r.Get("/healthz", Healthz)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, codeInternalError, "Internal server error")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "/healthz", first["path"])
	require.Equal(t, "/healthz", first["route"])
	require.EqualValues(t, http.StatusOK, first["status"])
	require.NotEmpty(t, first["request_id"])

	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	require.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}

func TestPasswordHasAllClasses(t *testing.T) {
	require.True(t, passwordHasAllClasses("A1#dsa12"))
	require.True(t, passwordHasAllClasses("Zz9 zzzz"))
	require.False(t, passwordHasAllClasses("A1dsa12x"))
	require.False(t, passwordHasAllClasses("a1#dsa12"))
	require.False(t, passwordHasAllClasses("A1#DSA12"))
	require.False(t, passwordHasAllClasses("Aa#dsabc"))

	// Only ASCII letters and digits form their classes; everything else is a symbol.
	require.True(t, passwordHasAllClasses("Abcdefg1é"))
	require.True(t, passwordHasAllClasses("Abcdefg1²"))
	require.False(t, passwordHasAllClasses("ABCDEFG1é!"))
	require.False(t, passwordHasAllClasses("abcdefg1É!"))
	require.False(t, passwordHasAllClasses("Abcdefgh٣!"))
}
