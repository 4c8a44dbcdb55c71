package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/pkg/helpers"
)

func testRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/staff", StaffAuth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString("userID"), "role": c.GetString("userRole")})
	})
	r.GET("/client", ClientAuth(jwt), func(c *gin.Context) {
		id, _ := ClientID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertRequired(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Success || body.Message != "required" {
		t.Fatalf("body = %s, want uniform rejection", w.Body.String())
	}
}

// Every failure mode answers the identical body, so a caller cannot tell
// a missing credential from a forged one.
func TestStaffAuthUniformRejection(t *testing.T) {
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	r := testRouter(jwt)

	noHeader := httptest.NewRequest(http.MethodGet, "/staff", nil)

	badToken := httptest.NewRequest(http.MethodGet, "/staff", nil)
	badToken.Header.Set("Authorization", "Bearer not-a-token")

	wrongScheme := httptest.NewRequest(http.MethodGet, "/staff", nil)
	wrongScheme.Header.Set("Authorization", "Basic abc")

	clientToken, _, err := jwt.GenerateClientToken(7)
	if err != nil {
		t.Fatalf("GenerateClientToken: %v", err)
	}
	crossDomain := httptest.NewRequest(http.MethodGet, "/staff", nil)
	crossDomain.Header.Set("Authorization", "Bearer "+clientToken)

	for name, req := range map[string]*http.Request{
		"no header":    noHeader,
		"bad token":    badToken,
		"wrong scheme": wrongScheme,
		"client token": crossDomain,
	} {
		w := do(r, req)
		t.Run(name, func(t *testing.T) { assertRequired(t, w) })
	}
}

func TestStaffAuthAccepts(t *testing.T) {
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	r := testRouter(jwt)
	token, _, err := jwt.GenerateStaffToken("uid-1", "admin")
	if err != nil {
		t.Fatalf("GenerateStaffToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.ID != "uid-1" || body.Role != "admin" {
		t.Fatalf("context values lost: %+v", body)
	}
}

func TestClientAuthUniformRejection(t *testing.T) {
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	r := testRouter(jwt)

	noCookie := httptest.NewRequest(http.MethodGet, "/client", nil)

	badCookie := httptest.NewRequest(http.MethodGet, "/client", nil)
	badCookie.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: "garbage"})

	staffToken, _, err := jwt.GenerateStaffToken("uid-1", "admin")
	if err != nil {
		t.Fatalf("GenerateStaffToken: %v", err)
	}
	crossDomain := httptest.NewRequest(http.MethodGet, "/client", nil)
	crossDomain.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: staffToken})

	for name, req := range map[string]*http.Request{
		"no cookie":   noCookie,
		"bad cookie":  badCookie,
		"staff token": crossDomain,
	} {
		w := do(r, req)
		t.Run(name, func(t *testing.T) { assertRequired(t, w) })
	}
}

func TestClientAuthAccepts(t *testing.T) {
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	r := testRouter(jwt)
	token, _, err := jwt.GenerateClientToken(7)
	if err != nil {
		t.Fatalf("GenerateClientToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/client", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.ID != 7 {
		t.Fatalf("client id lost: %+v", body)
	}
}
