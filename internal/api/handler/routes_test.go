package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justinas/alice"
	repomocks "github.com/rovema/bi-comercial-api/infrastructure/repository/mocks"
	"github.com/rovema/bi-comercial-api/internal/api/handler/router"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/usecases/authenticating"
	"github.com/rovema/bi-comercial-api/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// monta o router real com a cadeia de autenticação, sobre repositórios
// mockados sem expectativas: qualquer chamada ao banco falha o teste
func newProtectedRouter(t *testing.T) http.Handler {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := repomocks.NewMockUserRepository(ctrl)
	auditLogRepo := repomocks.NewMockAuditLogRepository(ctrl)
	service := authenticating.NewService(userRepo, auditLogRepo, &config.Config{SecretKey: "segredo-de-teste"})

	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Authentication(service)...),
		router.WithRoutes(User(service)...),
	)

	return alice.New(middleware.AuthMiddleware(service)).Then(rt)
}

func TestCriacaoDeUsuarioExigeAutenticacao(t *testing.T) {
	handler := newProtectedRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{
			name: "registro aberto não existe",
			path: "/v1/register",
		},
		{
			name: "rota administrativa sem token",
			path: "/v1/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.NewReader(`{"name":"Intruso","email":"intruso@rovema.com.br","password":"Senha@Forte1","role":"admin"}`)
			req := httptest.NewRequest(http.MethodPost, tt.path, body)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTokenInvalidoNaoPassaDaAutenticacao(t *testing.T) {
	handler := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Authorization", "Bearer não-é-um-jwt")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthcheckNaoExigeToken(t *testing.T) {
	handler := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
