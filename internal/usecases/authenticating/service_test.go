package authenticating

import (
	"errors"
	"testing"

	repomocks "github.com/rovema/bi-comercial-api/infrastructure/repository/mocks"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(ctrl *gomock.Controller) (Authenticator, *repomocks.MockUserRepository, *repomocks.MockAuditLogRepository) {
	userRepo := repomocks.NewMockUserRepository(ctrl)
	auditLogRepo := repomocks.NewMockAuditLogRepository(ctrl)
	cfg := &config.Config{SecretKey: "segredo-de-teste"}
	return NewService(userRepo, auditLogRepo, cfg), userRepo, auditLogRepo
}

func userFixture(t *testing.T, password string, active bool) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		UID:          "u-uid-1",
		Name:         "Maria Silva",
		Email:        "maria@rovema.com.br",
		PasswordHash: string(hash),
		Role:         domain.RoleConsultant,
		Active:       active,
	}
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository)
		validate func(t *testing.T, service Authenticator, token string, err error)
	}{
		{
			name:     "login válido devolve token com as claims do usuário",
			email:    "Maria@Rovema.com.br",
			password: "senha-correta",
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().
					GetUserByEmail("maria@rovema.com.br").
					Return(userFixture(t, "senha-correta", true), nil)
			},
			validate: func(t *testing.T, service Authenticator, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "u-uid-1", claims.UserUID)
				assert.Equal(t, domain.RoleConsultant, claims.UserRole)
			},
		},
		{
			name:     "sem email ou senha nem consulta o banco",
			email:    "",
			password: "qualquer",
			setup:    func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {},
			validate: func(t *testing.T, service Authenticator, token string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingRequiredData))
			},
		},
		{
			name:     "usuário inexistente registra a tentativa na auditoria",
			email:    "fantasma@rovema.com.br",
			password: "senha",
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().GetUserByEmail("fantasma@rovema.com.br").Return(nil, nil)
				auditLogRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(entry *domain.AuditLog) error {
						assert.Equal(t, domain.AuditActionLoginFailed, entry.Action)
						assert.Equal(t, "fantasma@rovema.com.br", entry.UserEmail)
						return nil
					})
			},
			validate: func(t *testing.T, service Authenticator, token string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUserNotFound))
			},
		},
		{
			name:     "conta desativada mantém o histórico mas não entra",
			email:    "maria@rovema.com.br",
			password: "senha-correta",
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().
					GetUserByEmail("maria@rovema.com.br").
					Return(userFixture(t, "senha-correta", false), nil)
				auditLogRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(entry *domain.AuditLog) error {
						assert.Equal(t, domain.AuditActionLoginFailed, entry.Action)
						assert.Contains(t, entry.Details, "desativada")
						return nil
					})
			},
			validate: func(t *testing.T, service Authenticator, token string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUserDisabled))

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, apiErrors.ErrUserDisabled, authErr.Code)
				assert.Equal(t, "u-uid-1", authErr.UserUID)
			},
		},
		{
			name:     "senha incorreta registra a tentativa na auditoria",
			email:    "maria@rovema.com.br",
			password: "senha-errada",
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().
					GetUserByEmail("maria@rovema.com.br").
					Return(userFixture(t, "senha-correta", true), nil)
				auditLogRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(entry *domain.AuditLog) error {
						assert.Equal(t, domain.AuditActionLoginFailed, entry.Action)
						assert.Contains(t, entry.Details, "senha incorreta")
						return nil
					})
			},
			validate: func(t *testing.T, service Authenticator, token string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCredentials))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, userRepo, auditLogRepo := newTestService(ctrl)
			tt.setup(t, userRepo, auditLogRepo)

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, service, token, err)
		})
	}
}

func TestValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newTestService(ctrl)

	t.Run("token adulterado é rejeitado", func(t *testing.T) {
		claims, err := service.ValidateToken("nao-é-um-jwt")
		require.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("token assinado com outro segredo é rejeitado", func(t *testing.T) {
		otherCtrl := gomock.NewController(t)
		defer otherCtrl.Finish()

		otherUserRepo := repomocks.NewMockUserRepository(otherCtrl)
		otherService := NewService(otherUserRepo, repomocks.NewMockAuditLogRepository(otherCtrl), &config.Config{SecretKey: "outro-segredo"})

		otherUserRepo.EXPECT().
			GetUserByEmail("maria@rovema.com.br").
			Return(userFixture(t, "senha-correta", true), nil)

		token, err := otherService.LoginUser("maria@rovema.com.br", "senha-correta")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		setup    func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository)
		validate func(t *testing.T, created *domain.User, err error)
	}{
		{
			name: "cria consultor por padrão com senha em hash",
			user: &domain.User{Name: "João Souza", Email: " Joao@Rovema.com.br ", PasswordHash: "senha-em-claro"},
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().GetUserByEmail("joao@rovema.com.br").Return(nil, nil)
				userRepo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						assert.Equal(t, "joao@rovema.com.br", user.Email)
						assert.Equal(t, domain.RoleConsultant, user.Role)
						assert.NotEmpty(t, user.UID)
						assert.NotEqual(t, "senha-em-claro", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-em-claro")))
						return user, nil
					})
				auditLogRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(entry *domain.AuditLog) error {
						assert.Equal(t, domain.AuditActionUserEdit, entry.Action)
						return nil
					})
			},
			validate: func(t *testing.T, created *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.RoleConsultant, created.Role)
			},
		},
		{
			name: "email já cadastrado é rejeitado",
			user: &domain.User{Name: "João Souza", Email: "joao@rovema.com.br", PasswordHash: "senha"},
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().
					GetUserByEmail("joao@rovema.com.br").
					Return(&domain.User{UID: "u-uid-9", Email: "joao@rovema.com.br"}, nil)
			},
			validate: func(t *testing.T, created *domain.User, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUserAlreadyExists))

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, apiErrors.ErrUserAlreadyExists, authErr.Code)
			},
		},
		{
			name:  "dados obrigatórios ausentes",
			user:  &domain.User{Name: "João Souza"},
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {},
			validate: func(t *testing.T, created *domain.User, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingRequiredData))
			},
		},
		{
			name: "papel desconhecido é rejeitado",
			user: &domain.User{Name: "João Souza", Email: "joao@rovema.com.br", PasswordHash: "senha", Role: "diretor"},
			setup: func(t *testing.T, userRepo *repomocks.MockUserRepository, auditLogRepo *repomocks.MockAuditLogRepository) {
				userRepo.EXPECT().GetUserByEmail("joao@rovema.com.br").Return(nil, nil)
			},
			validate: func(t *testing.T, created *domain.User, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFormat))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, userRepo, auditLogRepo := newTestService(ctrl)
			tt.setup(t, userRepo, auditLogRepo)

			created, err := service.CreateUser(tt.user)
			tt.validate(t, created, err)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	t.Run("atualiza só os campos enviados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, auditLogRepo := newTestService(ctrl)

		existing := userFixture(t, "senha", true)
		userRepo.EXPECT().GetUserByUID("u-uid-1").Return(existing, nil)

		newRole := domain.RoleManager
		active := false
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.Equal(t, domain.RoleManager, user.Role)
				assert.False(t, user.Active)
				assert.Equal(t, "Maria Silva", user.Name, "campo não enviado permanece")
				return nil
			})
		auditLogRepo.EXPECT().Insert(gomock.Any()).Return(nil)

		err := service.UpdateUser(&domain.UpdateUserRequest{UID: "u-uid-1", Role: &newRole, Active: &active})
		require.NoError(t, err)
	})

	t.Run("papel inválido é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, _ := newTestService(ctrl)

		userRepo.EXPECT().GetUserByUID("u-uid-1").Return(userFixture(t, "senha", true), nil)

		badRole := "diretor"
		err := service.UpdateUser(&domain.UpdateUserRequest{UID: "u-uid-1", Role: &badRole})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	})

	t.Run("sem UID é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _, _ := newTestService(ctrl)

		err := service.UpdateUser(&domain.UpdateUserRequest{})
		require.Error(t, err)
	})
}

func TestGenerateStrongPassword(t *testing.T) {
	t.Run("apenas administradores redefinem senhas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, _ := newTestService(ctrl)

		userRepo.EXPECT().
			GetUserByUID("u-uid-1").
			Return(&domain.User{UID: "u-uid-1", Role: domain.RoleManager}, nil)

		password, err := service.GenerateStrongPassword("u-uid-1", "u-uid-2")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoAdminPrivileges))
		assert.Empty(t, password)
	})

	t.Run("administrador gera senha forte e grava o hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, auditLogRepo := newTestService(ctrl)

		userRepo.EXPECT().
			GetUserByUID("admin-uid").
			Return(&domain.User{UID: "admin-uid", Email: "admin@rovema.com.br", Role: domain.RoleAdmin}, nil)
		target := &domain.User{UID: "u-uid-2", Email: "alvo@rovema.com.br", Role: domain.RoleConsultant}
		userRepo.EXPECT().GetUserByUID("u-uid-2").Return(target, nil)

		var savedHash string
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				savedHash = user.PasswordHash
				return nil
			})
		auditLogRepo.EXPECT().Insert(gomock.Any()).Return(nil)

		password, err := service.GenerateStrongPassword("admin-uid", "u-uid-2")

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedHash), []byte(password)))
		assert.NoError(t, service.ValidatePasswordStrength(password), "senha gerada passa na própria régua")
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("senha atual incorreta é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, _ := newTestService(ctrl)

		userRepo.EXPECT().GetUserByUID("u-uid-1").Return(userFixture(t, "senha-correta", true), nil)

		err := service.ChangePassword("u-uid-1", "senha-errada", "NovaSenha1!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "senha atual incorreta")
	})

	t.Run("nova senha fraca é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, _ := newTestService(ctrl)

		userRepo.EXPECT().GetUserByUID("u-uid-1").Return(userFixture(t, "senha-correta", true), nil)

		err := service.ChangePassword("u-uid-1", "senha-correta", "fraca")
		require.Error(t, err)
	})

	t.Run("troca válida grava o novo hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, userRepo, _ := newTestService(ctrl)

		userRepo.EXPECT().GetUserByUID("u-uid-1").Return(userFixture(t, "senha-correta", true), nil)
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NovaSenha1!")))
				return nil
			})

		err := service.ChangePassword("u-uid-1", "senha-correta", "NovaSenha1!")
		require.NoError(t, err)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newTestService(ctrl)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"senha completa", "Forte123!", false},
		{"curta demais", "Ab1!", true},
		{"sem maiúscula", "fraca123!", true},
		{"sem minúscula", "FRACA123!", true},
		{"sem número", "SenhaForte!", true},
		{"sem caractere especial", "SenhaForte123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
