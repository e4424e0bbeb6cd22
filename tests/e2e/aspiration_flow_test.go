//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	jwtauth "github.com/mpmulbi/aspirasi-backend/internal/auth"
	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/service/aspiration"
	authsvc "github.com/mpmulbi/aspirasi-backend/internal/service/auth"
	"github.com/mpmulbi/aspirasi-backend/internal/service/catalog"
	"github.com/mpmulbi/aspirasi-backend/internal/store/sqlite"
	"github.com/mpmulbi/aspirasi-backend/internal/transport/middleware"
	"github.com/mpmulbi/aspirasi-backend/internal/transport/rest"
)

// newServer boots the full HTTP stack on a fresh sqlite database.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.Default()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	jwtManager := jwtauth.NewJWTManager("e2e-test-secret-e2e-test-secret!!!!", "aspirasi-e2e", time.Hour)
	auth := authsvc.NewService(log, jwtManager, []authsvc.Account{
		{Username: "admin_mpm", Name: "Admin MPM ULBI", Role: domain.RoleMPM},
		{Username: "staff_kema", Name: "Staff Kemahasiswaan", Role: domain.RoleKemahasiswaan},
		{Username: "bem_ulbi", Name: "Presiden BEM", Role: domain.RoleBEM},
	})

	router := rest.NewRouter(rest.Handlers{
		Aspiration: rest.NewAspirationHandler(aspiration.NewService(log, st), log),
		Catalog:    rest.NewCatalogHandler(catalog.NewService(log, st), log),
		Auth:       rest.NewAuthHandler(auth, log),
		Health:     rest.NewHealthHandler(st, "e2e"),
	})

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Auth(auth),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func call(t *testing.T, srv *httptest.Server, method, path, body, token string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	status, env := call(t, srv, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"username":%q,"password":"demo"}`, username), "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var result struct {
		Token string `json:"token"`
	}
	decode(t, env, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAspirationLifecycle(t *testing.T) {
	srv := newServer(t)

	// A student submits an aspiration.
	status, env := call(t, srv, http.MethodPost, "/api/aspirations",
		`{"name":"Ana","email":"ana@x.com","category":"AKADEMIK","subject":"WiFi lambat","description":"WiFi di gedung A sangat lambat saat UAS"}`, "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var created domain.Aspiration
	decode(t, env, &created)
	require.Equal(t, domain.StatusPending, created.Status)
	require.Regexp(t, `^ASP-\d{8}-\d{4}$`, created.TrackingID)
	require.NotNil(t, created.Responses)
	require.Empty(t, created.Responses)

	// The tracking code resolves without authentication.
	status, env = call(t, srv, http.MethodGet, "/api/aspirations/track/"+created.TrackingID, "", "")
	require.Equal(t, http.StatusOK, status)
	var tracked domain.Aspiration
	decode(t, env, &tracked)
	require.Equal(t, created.ID, tracked.ID)

	// Staff moves the aspiration into review and assigns it.
	adminToken := login(t, srv, "admin_mpm")
	status, env = call(t, srv, http.MethodPatch, "/api/aspirations/"+created.ID,
		`{"status":"REVIEW","assignedTo":"KEMAHASISWAAN","internalNotes":"cek unit IT"}`, adminToken)
	require.Equal(t, http.StatusOK, status)
	var updated domain.Aspiration
	decode(t, env, &updated)
	require.Equal(t, domain.StatusReview, updated.Status)
	require.Equal(t, domain.RoleKemahasiswaan, updated.AssignedTo)

	// An authenticated staff response records the status at that moment.
	kemaToken := login(t, srv, "staff_kema")
	status, env = call(t, srv, http.MethodPost, "/api/aspirations/"+created.ID+"/responses",
		`{"content":"Sudah dikoordinasikan dengan unit IT"}`, kemaToken)
	require.Equal(t, http.StatusOK, status)
	decode(t, env, &updated)
	require.Len(t, updated.Responses, 1)
	require.Equal(t, domain.RoleKemahasiswaan, updated.Responses[0].AuthorRole)
	require.Equal(t, domain.StatusReview, updated.Responses[0].StatusAtResponse)

	// Backward transitions are rejected once work has started.
	status, _ = call(t, srv, http.MethodPatch, "/api/aspirations/"+created.ID,
		`{"status":"PENDING"}`, adminToken)
	require.Equal(t, http.StatusConflict, status)

	// Completing the aspiration shows up in the stats.
	status, _ = call(t, srv, http.MethodPatch, "/api/aspirations/"+created.ID,
		`{"status":"SELESAI"}`, adminToken)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, srv, http.MethodGet, "/api/stats", "", "")
	require.Equal(t, http.StatusOK, status)
	var stats aspiration.Stats
	decode(t, env, &stats)
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Completed)

	// Deletion needs a staff token and removes the tracking code too.
	status, _ = call(t, srv, http.MethodDelete, "/api/aspirations/"+created.ID, "", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, srv, http.MethodDelete, "/api/aspirations/"+created.ID, "", adminToken)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, srv, http.MethodGet, "/api/aspirations/track/"+created.TrackingID, "", "")
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, env.Success)
}

func TestCatalogCollections(t *testing.T) {
	srv := newServer(t)

	status, env := call(t, srv, http.MethodPost, "/api/supervision",
		`{"title":"Rapat dengar pendapat BEM","description":"Evaluasi program kerja triwulan"}`, "")
	require.Equal(t, http.StatusOK, status)
	var activity domain.SupervisionActivity
	decode(t, env, &activity)
	require.NotEmpty(t, activity.ID)
	require.Positive(t, activity.Date)

	status, env = call(t, srv, http.MethodGet, "/api/supervision", "", "")
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Items []domain.SupervisionActivity `json:"items"`
	}
	decode(t, env, &list)
	require.Len(t, list.Items, 1)
}

func TestInvalidTokenRejected(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/aspirations", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
