package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"memories-chain/config"
	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"
	"memories-chain/internal/handler"
	"memories-chain/internal/repository"
	"memories-chain/internal/server"
	"memories-chain/internal/services"
	"memories-chain/internal/storage"
	"memories-chain/internal/transport/httpdto"
	"memories-chain/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type stubProvider struct {
	cid string
	err error
}

func (p *stubProvider) Pin(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (storage.PinResult, error) {
	if p.err != nil {
		return storage.PinResult{}, p.err
	}
	n, _ := io.Copy(io.Discard, body)
	return storage.PinResult{CID: p.cid, Size: n}, nil
}

func (p *stubProvider) ResolveURL(contentID string) string {
	return storage.GatewayURL("gw.example.com", contentID)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &memory.MemoryForm{}, &memory.FormOwner{}, &memory.Photo{}))

	userRepo := repository.NewUserRepository(db)
	memoryRepo := repository.NewMemoryRepository(db)

	userService := services.NewUserService(userRepo, nil, nil)
	memoryService := services.NewMemoryService(memoryRepo, userRepo, nil, nil)
	uploadService := services.NewUploadService(&stubProvider{cid: "QmTESTCID"}, nil)
	authService := services.NewAuthService("test-secret", "localhost")

	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := server.New(&config.Config{AppPort: "0", AppMode: server.TestMode}, nil)
	srv.SetupRoutes(&server.Handlers{
		User:   handler.NewUserHandler(userService, nil),
		Memory: handler.NewMemoryHandler(memoryService, nil),
		Upload: handler.NewUploadHandler(uploadService, nil),
		Diag:   handler.NewDiagHandler(db, userRepo, nil),
		WS:     websocket.NewHandler(authService, hub),
	}, authService, nil, db)

	return &testEnv{router: srv.Engine(), db: db}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUser_IdempotentStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", gin.H{"wallet_address": "0xAAA"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode[httpdto.UserResponse](t, w)
	assert.Equal(t, "0xAAA", first.User.WalletAddress)

	w = env.do(t, http.MethodPost, "/users", gin.H{"wallet_address": "0xAAA"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[httpdto.UserResponse](t, w)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestCreateUser_MissingWallet(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/users", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[httpdto.ErrorResponse](t, w)
	assert.Equal(t, "Wallet address is required", resp.Error)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/users", gin.H{"wallet_address": "0xAAA"})

	w := env.do(t, http.MethodGet, "/users?wallet_address=0xAAA", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users?wallet_address=0xZZZ", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decode[httpdto.ErrorResponse](t, w)
	assert.Equal(t, "User not found", resp.Error)

	w = env.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemoryFormLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", gin.H{"wallet_address": "0xAAA"})
	require.Equal(t, http.StatusCreated, w.Code)
	creator := decode[httpdto.UserResponse](t, w).User

	w = env.do(t, http.MethodPost, "/memory-forms", gin.H{
		"title":      "Summer trip",
		"created_by": creator.ID.String(),
		"owners":     []string{"0xBBB"},
		"photos": []gin.H{{
			"url":      "https://gw.example.com/ipfs/QmTESTCID",
			"cid":      "QmTESTCID",
			"fileName": "beach.jpg",
			"fileSize": 2048,
			"mimeType": "image/jpeg",
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[httpdto.CreateMemoryFormResponse](t, w)
	assert.True(t, created.OwnersWritten)
	assert.True(t, created.PhotosWritten)
	assert.Equal(t, "Summer trip", created.Form.Title)
	require.Len(t, created.Form.Owners, 1)
	assert.Equal(t, "0xBBB", created.Form.Owners[0].WalletAddress)
	require.Len(t, created.Form.Photos, 1)
	assert.Equal(t, "QmTESTCID", created.Form.Photos[0].PinataCID)
	require.NotNil(t, created.Form.Creator)
	assert.Equal(t, "0xAAA", created.Form.Creator.WalletAddress)

	// Until the granted wallet registers, the resolver treats it as unknown
	// and the visible set is empty.
	w = env.do(t, http.MethodGet, "/memory-forms?wallet_address=0xBBB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[httpdto.ListMemoryFormsResponse](t, w).Forms)

	env.do(t, http.MethodPost, "/users", gin.H{"wallet_address": "0xBBB"})
	w = env.do(t, http.MethodGet, "/memory-forms?wallet_address=0xBBB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	granted := decode[httpdto.ListMemoryFormsResponse](t, w)
	require.Len(t, granted.Forms, 1)
	assert.Equal(t, created.Form.ID, granted.Forms[0].ID)

	// The creator sees it too.
	w = env.do(t, http.MethodGet, "/memory-forms?created_by="+creator.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	byCreator := decode[httpdto.ListMemoryFormsResponse](t, w)
	require.Len(t, byCreator.Forms, 1)
}

func TestCreateMemoryForm_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := []gin.H{
		{"description": "no title or creator"},
		{"title": "no creator"},
		{"title": "bad creator", "created_by": "not-a-uuid"},
	}
	for _, body := range cases {
		w := env.do(t, http.MethodPost, "/memory-forms", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[httpdto.ErrorResponse](t, w)
		assert.Equal(t, "Title and created_by are required", resp.Error)
	}

	var count int64
	require.NoError(t, env.db.Model(&memory.MemoryForm{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListMemoryForms_InvalidCreatedBy(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/memory-forms?created_by=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMemoryForms_EmptyIsAnArray(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/memory-forms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"forms":[]}`, w.Body.String())
}

func TestUploadFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "beach.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[httpdto.UploadResponse](t, w)
	assert.Equal(t, "QmTESTCID", resp.CID)
	assert.Equal(t, "https://gw.example.com/ipfs/QmTESTCID", resp.URL)
	assert.Equal(t, "beach.jpg", resp.FileName)
	assert.Equal(t, int64(len("fake image bytes")), resp.FileSize)
}

func TestUploadFile_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/files", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[httpdto.ErrorResponse](t, w)
	assert.Equal(t, "No file provided", resp.Error)
}

func TestRejectsBadBearerToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/memory-forms", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
