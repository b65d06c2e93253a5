package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/empdir/portal/internal/core/domain"
)

type stubTabStore struct {
	mu     sync.Mutex
	spaces map[string]map[string]string
	locks  map[string]bool
	err    error
}

func newStubTabStore() *stubTabStore {
	return &stubTabStore{spaces: make(map[string]map[string]string), locks: make(map[string]bool)}
}

func (s *stubTabStore) GetAll(_ context.Context, ns string, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := s.spaces[ns][k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *stubTabStore) SetAll(_ context.Context, ns string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.spaces[ns] == nil {
		s.spaces[ns] = make(map[string]string)
	}
	for k, v := range entries {
		s.spaces[ns][k] = v
	}
	return nil
}

func (s *stubTabStore) Remove(_ context.Context, ns string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.spaces[ns], k)
	}
	return nil
}

func (s *stubTabStore) Ping(context.Context) error { return s.err }

func (s *stubTabStore) Acquire(_ context.Context, ns, name string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[ns+"/"+name] {
		return false, nil
	}
	s.locks[ns+"/"+name] = true
	return true, nil
}

func (s *stubTabStore) Release(_ context.Context, ns, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, ns+"/"+name)
	return nil
}

// stubDirectory answers each call through an optional function field and
// records what it was sent.
type stubDirectory struct {
	loginFn       func(username, password string) (*domain.LoginResult, error)
	createFn      func(p domain.EmployeePayload) (*domain.Employee, error)
	fetchOneFn    func(id domain.EmployeeID) (*domain.Employee, error)
	fetchAllFn    func() ([]domain.Employee, error)
	updateFn      func(id domain.EmployeeID, p domain.EmployeePayload) (*domain.Employee, error)
	deleteFn      func(id domain.EmployeeID) error
	credentialsFn func(id domain.EmployeeID, c domain.CredentialsUpdate) error

	tokens []string
	calls  []string
}

func (d *stubDirectory) seen(op, token string) {
	d.calls = append(d.calls, op)
	d.tokens = append(d.tokens, token)
}

func (d *stubDirectory) Login(_ context.Context, username, password string) (*domain.LoginResult, error) {
	d.seen("login", "")
	if d.loginFn == nil {
		return nil, &domain.RequestError{Kind: domain.KindServer, Status: 401}
	}
	return d.loginFn(username, password)
}

func (d *stubDirectory) Create(_ context.Context, token string, p domain.EmployeePayload) (*domain.Employee, error) {
	d.seen("create", token)
	if d.createFn == nil {
		return &domain.Employee{ID: "1"}, nil
	}
	return d.createFn(p)
}

func (d *stubDirectory) FetchOne(_ context.Context, token string, id domain.EmployeeID) (*domain.Employee, error) {
	d.seen("fetch_one", token)
	if d.fetchOneFn == nil {
		return &domain.Employee{ID: id}, nil
	}
	return d.fetchOneFn(id)
}

func (d *stubDirectory) FetchAll(_ context.Context, token string) ([]domain.Employee, error) {
	d.seen("fetch_all", token)
	if d.fetchAllFn == nil {
		return nil, nil
	}
	return d.fetchAllFn()
}

func (d *stubDirectory) Update(_ context.Context, token string, id domain.EmployeeID, p domain.EmployeePayload) (*domain.Employee, error) {
	d.seen("update", token)
	if d.updateFn == nil {
		return &domain.Employee{ID: id}, nil
	}
	return d.updateFn(id, p)
}

func (d *stubDirectory) Delete(_ context.Context, token string, id domain.EmployeeID) error {
	d.seen("delete", token)
	if d.deleteFn == nil {
		return nil
	}
	return d.deleteFn(id)
}

func (d *stubDirectory) UpdateCredentials(_ context.Context, token string, id domain.EmployeeID, c domain.CredentialsUpdate) error {
	d.seen("update_credentials", token)
	if d.credentialsFn == nil {
		return nil
	}
	return d.credentialsFn(id, c)
}

func (d *stubDirectory) Ping(context.Context) error { return nil }

func mintToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: subject}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
