package httpHandler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"waterbill-server/auth"
	"waterbill-server/confs"
	"waterbill-server/entities"
	"waterbill-server/pdf"
	"waterbill-server/usecases"
)

// In-memory repository doubles shared by the handler tests.

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetActiveByEmail(email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetActiveByEmailAndOTP(email, code string, now time.Time) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive &&
			u.OTPCode != nil && *u.OTPCode == code &&
			u.OTPExpires != nil && u.OTPExpires.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) ExistsByEmail(email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Update(user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type memGPRepo struct {
	gps map[string]*entities.GramPanchayat
}

func newMemGPRepo() *memGPRepo {
	return &memGPRepo{gps: make(map[string]*entities.GramPanchayat)}
}

func (r *memGPRepo) Create(gp *entities.GramPanchayat) error {
	if gp.ID == "" {
		gp.ID = uuid.New().String()
	}
	cp := *gp
	r.gps[gp.ID] = &cp
	return nil
}

func (r *memGPRepo) GetByID(id string) (*entities.GramPanchayat, error) {
	gp, ok := r.gps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *gp
	return &cp, nil
}

func (r *memGPRepo) GetAll() ([]entities.GramPanchayat, error) {
	var out []entities.GramPanchayat
	for _, gp := range r.gps {
		out = append(out, *gp)
	}
	return out, nil
}

type memBillRepo struct {
	bills map[string]*entities.WaterBill
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{bills: make(map[string]*entities.WaterBill)}
}

func (r *memBillRepo) Create(bill *entities.WaterBill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *memBillRepo) GetByIDAndGramPanchayat(id, gramPanchayatID string) (*entities.WaterBill, error) {
	bill, ok := r.bills[id]
	if !ok || bill.GramPanchayatID != gramPanchayatID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *bill
	return &cp, nil
}

type memNotifier struct {
	sent []string
}

func (n *memNotifier) SendOTP(email, name, code string) error {
	n.sent = append(n.sent, code)
	return nil
}

// testEnv wires real usecases and handlers over the in-memory doubles, with
// the same routes the server registers.
type testEnv struct {
	router   *gin.Engine
	users    *memUserRepo
	gps      *memGPRepo
	bills    *memBillRepo
	notifier *memNotifier
	tokens   *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	gps := newMemGPRepo()
	bills := newMemBillRepo()
	notifier := &memNotifier{}
	tokens := auth.NewTokenManager("test-secret", "waterbill-test", time.Hour)
	cfg := &confs.Config{OTPMode: confs.OTPModeReal, OTPExpiry: 10 * time.Minute}

	authUseCase := usecases.NewAuthUseCase(users, gps, notifier, tokens, cfg, zerolog.Nop())
	billUseCase := usecases.NewBillUseCase(bills, gps)
	gpUseCase := usecases.NewGramPanchayatUseCase(gps)

	renderer := pdf.NewRenderer(zerolog.Nop())
	authHandler := NewAuthHandler(authUseCase)
	billHandler := NewBillHandler(billUseCase, users, renderer, zerolog.Nop())
	gpHandler := NewGramPanchayatHandler(gpUseCase, users)
	middleware := NewMiddleware(tokens)

	router := gin.New()
	api := router.Group("/api/v1")
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/request-otp", authHandler.RequestOTP)
	authGroup.POST("/verify-login-otp", authHandler.VerifyLoginOTP)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/verify-otp", authHandler.VerifyOTP)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)

	billGroup := api.Group("/bills", middleware.AuthRequired())
	billGroup.GET("/:id/download", billHandler.DownloadBill)

	gpGroup := api.Group("/gram-panchayats", middleware.AuthRequired())
	gpGroup.POST("", gpHandler.Create)
	gpGroup.GET("", gpHandler.GetAll)
	gpGroup.GET("/:id", gpHandler.GetByID)

	return &testEnv{
		router:   router,
		users:    users,
		gps:      gps,
		bills:    bills,
		notifier: notifier,
		tokens:   tokens,
	}
}

func (e *testEnv) seedUser(t *testing.T, email, password string, role entities.Role, gpID string) *entities.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &entities.User{
		Name:     "Seeded",
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if gpID != "" {
		id := gpID
		user.GramPanchayatID = &id
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.tokens.Generate(userID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
