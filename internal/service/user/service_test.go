package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	byID       map[string]user.User
	byUsername map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[string]user.User{},
		byUsername: map[string]user.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) error {
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	delete(f.byID, id)
	delete(f.byUsername, u.Username)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.byID {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	var ids []string
	for _, u := range f.byID {
		if u.Role == role {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Name:       "Sara Ahmed",
		Username:   "sara",
		Password:   "s3cret-pass",
		Role:       string(user.RoleEmployee),
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleEmployee, created.Role)

	stored, err := repo.GetByUsername(context.Background(), "sara")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	req := user.CreateUserRequest{
		Name:       "Sara Ahmed",
		Username:   "sara",
		Password:   "s3cret-pass",
		Role:       string(user.RoleEmployee),
		Department: "Engineering",
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Name:       "Omar Khalid",
		Username:   "omar",
		Password:   "first-pass-1",
		Role:       string(user.RoleAdmin),
		Department: "HR",
	})
	require.NoError(t, err)

	newPass := "second-pass-2"
	_, err = svc.Update(context.Background(), user.UpdateUserRequest{
		ID:       created.ID,
		Password: &newPass,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPass)))
}

func TestDeleteUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
