package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entities.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entities.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo UserRepository) UserService {
	return NewUserService(repo, jwt.NewJWTService("secret"), utils.NewValidator())
}

func TestRegister(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "cook@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("supersecret")) == nil
		})).Return(nil)

		res, err := newTestService(repo).Register(context.Background(), domain.RegisterRequest{
			Name:     " Cook ",
			Email:    "Cook@Example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, "Cook", res.Name)
		assert.Equal(t, "cook@example.com", res.Email)
		assert.Equal(t, domain.RoleUser, res.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "cook@example.com").Return(&entities.User{}, nil)

		_, err := newTestService(repo).Register(context.Background(), domain.RegisterRequest{
			Name: "Cook", Email: "cook@example.com", Password: "supersecret",
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("short password is a validation error", func(t *testing.T) {
		repo := new(MockUserRepository)

		_, err := newTestService(repo).Register(context.Background(), domain.RegisterRequest{
			Name: "Cook", Email: "cook@example.com", Password: "short",
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Details[0].Field)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entities.User{ID: uuid.New(), Email: "cook@example.com", Password: string(hashed), Role: domain.RoleUser}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid credentials", password: "supersecret"},
		{name: "wrong password", password: "wrongpassword", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("GetUserByEmail", mock.Anything, "cook@example.com").Return(stored, nil)

			res, err := newTestService(repo).Login(context.Background(), domain.LoginRequest{
				Email: "cook@example.com", Password: tt.password,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.Token)
		})
	}

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := newTestService(repo).Login(context.Background(), domain.LoginRequest{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
