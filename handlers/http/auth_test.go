package httpHandler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"waterbill-server/entities"
)

func TestRegisterMissingGramPanchayat(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "secret123",
		"role":     "gp_admin",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, false, body["success"])
	require.Equal(t, "gramPanchayat is required for this role", body["message"])
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "secret123",
		"role":     "super_admin",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "User created successfully", body["message"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, "admin@example.com", data["email"])
	require.Equal(t, "super_admin", data["role"])
	require.NotEmpty(t, data["id"])
}

func TestRegisterEchoesGramPanchayat(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.gps.Create(&entities.GramPanchayat{ID: "gp-1", Name: "Shivapur"}))

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":          "GP Admin",
		"email":         "gpadmin@example.com",
		"password":      "secret123",
		"role":          "gp_admin",
		"gramPanchayat": "gp-1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	gp, ok := data["gramPanchayat"].(map[string]interface{})
	require.True(t, ok, "register response should echo the gram panchayat")
	require.Equal(t, "Shivapur", gp["name"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "taken@example.com", "secret123", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Second",
		"email":    "taken@example.com",
		"password": "secret123",
		"role":     "super_admin",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User with this email already exists", decodeEnvelope(t, w)["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@example.com", "right-password", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid email or password", decodeEnvelope(t, w)["message"])
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "user@example.com", "secret123", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, "Login successful", body["message"])

	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	userID, err := env.tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, userID)
}

func TestOTPLoginFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "otp@example.com", "secret123", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/request-otp", "", map[string]string{
		"email": "otp@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OTP sent to your email", decodeEnvelope(t, w)["message"])
	require.Len(t, env.notifier.sent, 1)

	code := env.notifier.sent[0]

	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-login-otp", "", map[string]string{
		"email": "otp@example.com",
		"otp":   code,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, "Login successful", body["message"])
	require.NotEmpty(t, body["data"].(map[string]interface{})["token"])

	// The code is consumed on success, so a replay is rejected.
	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-login-otp", "", map[string]string{
		"email": "otp@example.com",
		"otp":   code,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid or expired OTP", decodeEnvelope(t, w)["message"])
}

func TestVerifyLoginOTPMalformedCode(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "otp@example.com", "secret123", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/verify-login-otp", "", map[string]string{
		"email": "otp@example.com",
		"otp":   "12345",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Please enter a valid 6-digit OTP", decodeEnvelope(t, w)["message"])
}

func TestRequestOTPUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/request-otp", "", map[string]string{
		"email": "nobody@example.com",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", decodeEnvelope(t, w)["message"])
}

func TestPasswordResetFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "reset@example.com", "old-password", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "reset@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OTP sent to your email", decodeEnvelope(t, w)["message"])
	require.Len(t, env.notifier.sent, 1)

	code := env.notifier.sent[0]

	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]string{
		"email": "reset@example.com",
		"otp":   code,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OTP verified successfully", decodeEnvelope(t, w)["message"])

	w = env.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"email":       "reset@example.com",
		"otp":         code,
		"newPassword": "new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Password reset successfully", decodeEnvelope(t, w)["message"])

	// Old password no longer works, new one does.
	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "reset@example.com",
		"password": "old-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "reset@example.com",
		"password": "new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/auth/profile", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileSuccess(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "me@example.com", "secret123", entities.RoleSuperAdmin, "")

	w := env.do(t, http.MethodGet, "/api/v1/auth/profile", env.tokenFor(t, seeded.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, "Profile retrieved successfully", body["message"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, "me@example.com", data["email"])
	require.NotContains(t, data, "password")
}
