package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/alibia/backoffice/internal/domain/entity"
	repo "github.com/alibia/backoffice/internal/domain/repository"
)

// In-memory repository stubs used across the service tests.

type stubClientRepo struct {
	byID    map[int64]*entity.UserClient
	byEmail map[string]*entity.UserClient
	nextID  int64
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{
		byID:    map[int64]*entity.UserClient{},
		byEmail: map[string]*entity.UserClient{},
		nextID:  1,
	}
}

func (s *stubClientRepo) Create(_ context.Context, u *entity.UserClient) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	u.ID = s.nextID
	s.nextID++
	if u.Role == "" {
		u.Role = entity.ClientRoleUser
	}
	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *stubClientRepo) GetByID(_ context.Context, id int64) (*entity.UserClient, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubClientRepo) GetByEmail(_ context.Context, email string) (*entity.UserClient, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubClientRepo) Update(_ context.Context, u *entity.UserClient) error {
	old, ok := s.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	delete(s.byEmail, old.Email)
	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[u.Email] = &cp
	return nil
}

// erringClientRepo fails every call with a fixed error, standing in for a
// store that is down.
type erringClientRepo struct{ err error }

func (r *erringClientRepo) Create(context.Context, *entity.UserClient) error { return r.err }
func (r *erringClientRepo) GetByID(context.Context, int64) (*entity.UserClient, error) {
	return nil, r.err
}
func (r *erringClientRepo) GetByEmail(context.Context, string) (*entity.UserClient, error) {
	return nil, r.err
}
func (r *erringClientRepo) Update(context.Context, *entity.UserClient) error { return r.err }

type stubQueue struct {
	jobs []any
	fail bool
}

func (q *stubQueue) PublishJSON(_ context.Context, body any) error {
	if q.fail {
		return errors.New("broker down")
	}
	q.jobs = append(q.jobs, body)
	return nil
}

type stubUserRepo struct {
	byID    map[string]*entity.User
	byUUID  map[string]*entity.User
	byEmail map[string]*entity.User
	nextID  int
	inUse   map[string]bool // uuids whose delete violates a constraint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    map[string]*entity.User{},
		byUUID:  map[string]*entity.User{},
		byEmail: map[string]*entity.User{},
		inUse:   map[string]bool{},
	}
}

func (s *stubUserRepo) put(u *entity.User) {
	cp := *u
	s.byID[u.ID] = &cp
	s.byUUID[u.UUID] = &cp
	s.byEmail[u.Email] = &cp
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	s.nextID++
	u.ID = fmt.Sprintf("id-%d", s.nextID)
	s.put(u)
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByUUID(_ context.Context, uuid string) (*entity.User, error) {
	u, ok := s.byUUID[uuid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	old, ok := s.byUUID[u.UUID]
	if !ok {
		return repo.ErrNotFound
	}
	delete(s.byEmail, old.Email)
	s.put(u)
	return nil
}

func (s *stubUserRepo) DeleteByUUID(_ context.Context, uuid string) error {
	u, ok := s.byUUID[uuid]
	if !ok {
		return repo.ErrNotFound
	}
	if s.inUse[uuid] {
		return repo.ErrInUse
	}
	delete(s.byID, u.ID)
	delete(s.byEmail, u.Email)
	delete(s.byUUID, uuid)
	return nil
}

type erringUserRepo struct{ err error }

func (r *erringUserRepo) Create(context.Context, *entity.User) error { return r.err }
func (r *erringUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
func (r *erringUserRepo) GetByUUID(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
func (r *erringUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
func (r *erringUserRepo) List(context.Context) ([]*entity.User, error) { return nil, r.err }
func (r *erringUserRepo) Update(context.Context, *entity.User) error   { return r.err }
func (r *erringUserRepo) DeleteByUUID(context.Context, string) error   { return r.err }

type stubCategoryRepo struct {
	byID   map[int64]*entity.Category
	nextID int64
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: map[int64]*entity.Category{}, nextID: 1}
}

func (s *stubCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.byID[c.ID] = &cp
	return nil
}

func (s *stubCategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(s.byID))
	for _, c := range s.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := s.byID[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	s.byID[c.ID] = &cp
	return nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubProductRepo struct {
	byID       map[int64]*entity.Product
	nextID     int64
	categories *stubCategoryRepo
}

func newStubProductRepo(cats *stubCategoryRepo) *stubProductRepo {
	return &stubProductRepo{byID: map[int64]*entity.Product{}, nextID: 1, categories: cats}
}

func (s *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	if s.categories != nil {
		if _, ok := s.categories.byID[p.CategoryID]; !ok {
			return repo.ErrInUse
		}
	}
	p.ID = s.nextID
	s.nextID++
	cp := *p
	s.byID[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(s.byID))
	for _, p := range s.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := s.byID[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	s.byID[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubImageRepo struct {
	byProduct map[int64][]*entity.ProductImage
	nextID    int64
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{byProduct: map[int64][]*entity.ProductImage{}, nextID: 1}
}

func (s *stubImageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	img.ID = s.nextID
	s.nextID++
	cp := *img
	s.byProduct[img.ProductID] = append(s.byProduct[img.ProductID], &cp)
	return nil
}

func (s *stubImageRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.ProductImage, error) {
	return s.byProduct[productID], nil
}

func (s *stubImageRepo) CountByProduct(_ context.Context, productID int64) (int, error) {
	return len(s.byProduct[productID]), nil
}

func (s *stubImageRepo) GetByID(_ context.Context, productID, imageID int64) (*entity.ProductImage, error) {
	for _, img := range s.byProduct[productID] {
		if img.ID == imageID {
			cp := *img
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *stubImageRepo) Delete(_ context.Context, productID, imageID int64) error {
	imgs := s.byProduct[productID]
	for i, img := range imgs {
		if img.ID == imageID {
			s.byProduct[productID] = append(imgs[:i], imgs[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}
