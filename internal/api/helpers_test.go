package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"pens_market/internal/assets"
	"pens_market/internal/config"
	"pens_market/internal/db"
	"pens_market/internal/domain"
	"pens_market/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	passwordCost = bcrypt.MinCost
	logrus.SetOutput(io.Discard)
}

// recorder keeps every published event in memory
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	T      *testing.T
	DB     *gorm.DB
	Assets *assets.Store
	Events *recorder
	Router *gin.Engine
}

// upload is an image part of a multipart request
type upload struct {
	Name    string
	Content []byte
}

func newTestEnv(t *testing.T, jwtSecret string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	gdb, err := db.Open(&config.Config{DBDriver: db.DriverSQLite, DBPath: filepath.Join(dir, "pens.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	store, err := assets.New(filepath.Join(dir, "static"))
	require.NoError(t, err)

	rec := &recorder{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &testEnv{
		T:      t,
		DB:     gdb,
		Assets: store,
		Events: rec,
		Router: NewRouter(Deps{
			DB:          gdb,
			Assets:      store,
			Events:      rec,
			JWTSecret:   jwtSecret,
			CORSOrigins: []string{"http://localhost:5173"},
			Logger:      logger,
		}),
	}
}

func (env *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// do sends an urlencoded form (or no body when fields is nil)
func (env *testEnv) do(method, path string, fields map[string]string, headers ...string) *httptest.ResponseRecorder {
	var body io.Reader
	if fields != nil {
		vals := url.Values{}
		for k, v := range fields {
			vals.Set(k, v)
		}
		body = strings.NewReader(vals.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if fields != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return env.serve(req)
}

// doMultipart sends a multipart form with an optional image part
func (env *testEnv) doMultipart(method, path string, fields map[string]string, img *upload, headers ...string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if img != nil {
		part, err := w.CreateFormFile("image", img.Name)
		require.NoError(env.T, err)
		_, err = part.Write(img.Content)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return env.serve(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func (env *testEnv) registerSeller(wallet, password string) uint {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/register_seller", map[string]string{"wallet_address": wallet, "password": password})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[struct {
		SellerID uint `json:"seller_id"`
	}](env.T, rec)
	return resp.SellerID
}

// createUser inserts a user directly; no endpoint creates buyers
func (env *testEnv) createUser(wallet, password, role string) uint {
	env.T.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(env.T, err)
	u := domain.User{WalletAddress: wallet, Password: string(hash), Role: role}
	require.NoError(env.T, env.DB.Create(&u).Error)
	return u.ID
}

func (env *testEnv) addPen(sellerID uint, name string, price float64, img *upload) domain.Pen {
	env.T.Helper()
	rec := env.doMultipart(http.MethodPost, "/add_pen", map[string]string{
		"name":      name,
		"price":     strconv.FormatFloat(price, 'f', -1, 64),
		"seller_id": strconv.FormatUint(uint64(sellerID), 10),
	}, img)
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())
	return decode[domain.Pen](env.T, rec)
}

func (env *testEnv) allPens() []domain.Pen {
	env.T.Helper()
	rec := env.do(http.MethodGet, "/all_pens/", nil)
	require.Equal(env.T, http.StatusOK, rec.Code)
	return decode[[]domain.Pen](env.T, rec)
}

func idStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
