package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/domain/entity"
	"github.com/alibia/backoffice/pkg/helpers"
)

func newUserSvc(t *testing.T) (*UserService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewUserService(repo, jwt, nil, "", logger), repo
}

func TestStaffCreateAndLogin(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, _, err := svc.Create(ctx, CreateUserInput{
		Name: "Boss", Email: "boss@example.com", Password: "longenough", Role: entity.RoleAdmin,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.UUID == "" {
		t.Fatal("no public uuid assigned")
	}

	logged, token, _, err := svc.Login(ctx, "boss@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("no token on login")
	}
	claims, err := svc.JWT.ParseStaffToken(token)
	if err != nil {
		t.Fatalf("ParseStaffToken: %v", err)
	}
	if claims.UserID != logged.ID || claims.Role != entity.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestStaffLoginGenericRejection(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()
	if _, _, err := svc.Create(ctx, CreateUserInput{
		Name: "Boss", Email: "boss@example.com", Password: "longenough", Role: entity.RoleAdmin,
	}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _, _, errPass := svc.Login(ctx, "boss@example.com", "wrong")
	_, _, _, errUser := svc.Login(ctx, "ghost@example.com", "wrong")
	if !errors.Is(errPass, ErrInvalidCredentials) || !errors.Is(errUser, ErrInvalidCredentials) {
		t.Fatalf("rejections differ: %v vs %v", errPass, errUser)
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserSvc(t)
	_, _, err := svc.Create(context.Background(), CreateUserInput{
		Name: "X", Email: "x@example.com", Password: "longenough", Role: "superuser",
	}, "")
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()
	in := CreateUserInput{Name: "A", Email: "a@example.com", Password: "longenough", Role: entity.RoleEmployee}
	if _, _, err := svc.Create(ctx, in, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := svc.Create(ctx, in, ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateRecordsCreator(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()
	boss, _, err := svc.Create(ctx, CreateUserInput{
		Name: "Boss", Email: "boss@example.com", Password: "longenough", Role: entity.RoleAdmin,
	}, "")
	if err != nil {
		t.Fatalf("Create boss: %v", err)
	}
	emp, creator, err := svc.Create(ctx, CreateUserInput{
		Name: "Emp", Email: "emp@example.com", Password: "longenough", Role: entity.RoleEmployee,
	}, boss.ID)
	if err != nil {
		t.Fatalf("Create employee: %v", err)
	}
	if emp.CreatedBy == nil || *emp.CreatedBy != boss.ID {
		t.Fatal("creator id not recorded")
	}
	if creator == nil || creator.ID != boss.ID {
		t.Fatal("creator not returned")
	}
}

func TestPartialUpdateKeepsUnsetFields(t *testing.T) {
	svc, repo := newUserSvc(t)
	ctx := context.Background()
	u, _, err := svc.Create(ctx, CreateUserInput{
		Name: "Before", Email: "before@example.com", Password: "longenough", Role: entity.RoleEmployee,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	oldHash := u.Password

	updated, err := svc.Update(ctx, u.UUID, UpdateUserInput{Name: "After"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "After" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.Email != "before@example.com" || updated.Role != entity.RoleEmployee {
		t.Fatal("unset fields were overwritten")
	}
	if updated.Password != oldHash {
		t.Fatal("password changed without being provided")
	}

	stored, _ := repo.GetByUUID(ctx, u.UUID)
	if stored.Name != "After" {
		t.Fatal("update not persisted")
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()
	u, _, err := svc.Create(ctx, CreateUserInput{
		Name: "A", Email: "a@example.com", Password: "longenough", Role: entity.RoleEmployee,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(ctx, u.UUID, UpdateUserInput{Password: "newpassword"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "a@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "a@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password still accepted")
	}
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newUserSvc(t)
	ctx := context.Background()
	u, _, err := svc.Create(ctx, CreateUserInput{
		Name: "A", Email: "a@example.com", Password: "longenough", Role: entity.RoleEmployee,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "no-such-uuid"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	repo.inUse[u.UUID] = true
	if err := svc.Delete(ctx, u.UUID); !errors.Is(err, ErrUserInUse) {
		t.Fatalf("expected ErrUserInUse, got %v", err)
	}
	repo.inUse[u.UUID] = false

	if err := svc.Delete(ctx, u.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByUUID(ctx, u.UUID); !errors.Is(err, ErrUserNotFound) {
		t.Fatal("deleted account still readable")
	}
}

// A store outage must reach the caller as-is, not as a not-found or
// credentials rejection.
func TestStaffStoreOutagePropagates(t *testing.T) {
	outage := errors.New("connection refused")
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewUserService(&erringUserRepo{err: outage}, jwt, nil, "", logger)
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "boss@example.com", "longenough")
	if !errors.Is(err, outage) || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.GetByUUID(ctx, "some-uuid"); !errors.Is(err, outage) || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetByUUID: %v", err)
	}
	if _, err := svc.Update(ctx, "some-uuid", UpdateUserInput{Name: "X"}); !errors.Is(err, outage) || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, "some-uuid"); !errors.Is(err, outage) || errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrUserInUse) {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPublicProjectionOmitsPassword(t *testing.T) {
	u := &entity.User{UUID: "u", Name: "n", Email: "e", Password: "hash", Role: entity.RoleAdmin}
	pub := u.Public()
	if _, ok := pub["password"]; ok {
		t.Fatal("password leaked in public projection")
	}
}
