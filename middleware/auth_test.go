package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/cliniccare/clinic-api/models"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret()))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func protectedApp(roles ...models.Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{Protected()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		ident, err := CurrentIdentity(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"id": ident.SubjectID, "role": ident.Role})
	})
	app.Get("/secure", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestProtectedAcceptsValidToken(t *testing.T) {
	app := protectedApp()
	token := signToken(t, jwt.MapClaims{
		"id":    float64(7),
		"email": "pat@example.com",
		"role":  string(models.RolePatient),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	resp := doRequest(t, app, token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	resp := doRequest(t, protectedApp(), "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	app := protectedApp()
	token := signToken(t, jwt.MapClaims{
		"id":   float64(7),
		"role": string(models.RolePatient),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	resp := doRequest(t, app, token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRejectsUnknownRole(t *testing.T) {
	app := protectedApp()
	token := signToken(t, jwt.MapClaims{
		"id":   float64(7),
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	resp := doRequest(t, app, token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRejectsWrongSignature(t *testing.T) {
	app := protectedApp()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   float64(7),
		"role": string(models.RolePatient),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("someone_elses_key"))
	if err != nil {
		t.Fatal(err)
	}

	resp := doRequest(t, app, signed)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":   float64(7),
		"role": string(models.RolePatient),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	resp := doRequest(t, protectedApp(models.RolePatient), token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("matching role status = %d, want 200", resp.StatusCode)
	}

	resp = doRequest(t, protectedApp(models.RoleDoctor), token)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("mismatched role status = %d, want 403", resp.StatusCode)
	}

	resp = doRequest(t, protectedApp(models.RoleDoctor, models.RoleAdmin, models.RolePatient), token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("role in allowed set status = %d, want 200", resp.StatusCode)
	}
}

func TestExtractUserIDFormats(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    uint
		wantErr bool
	}{
		{"float64", jwt.MapClaims{"id": float64(42)}, 42, false},
		{"string", jwt.MapClaims{"id": "42"}, 42, false},
		{"missing", jwt.MapClaims{}, 0, true},
		{"bad string", jwt.MapClaims{"id": "forty-two"}, 0, true},
		{"bool", jwt.MapClaims{"id": true}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractUserID(tt.claims)
			if tt.wantErr {
				if err == nil {
					t.Errorf("extractUserID = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("extractUserID = %d, want %d", got, tt.want)
			}
		})
	}
}
