// Package session tracks the signed-in user and talks to the login and
// logout endpoints.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/exchange"
)

const (
	storeKey = "userInfo"
	codeOK   = 200

	// UserHeader carries the signed-in user's UUID on outgoing requests.
	UserHeader = "X-User-Uuid"
)

type UserInfo struct {
	UserName string `json:"userName"`
	UUID     string `json:"uuid"`
}

type Requester interface {
	Request(ctx context.Context, config exchange.RequestConfig) (*exchange.Response, error)
}

type Store interface {
	Set(key string, value interface{}) error
	Get(key string, out interface{}) (bool, error)
	Delete(key string) (bool, error)
	Save() error
}

type Endpoints struct {
	Login  string
	Logout string
}

// APIError is a 2xx reply whose envelope carries a code other than 200.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Session struct {
	client    Requester
	store     Store
	endpoints Endpoints

	mu      sync.RWMutex
	current *UserInfo
}

func New(client Requester, store Store, endpoints Endpoints) *Session {
	return &Session{
		client:    client,
		store:     store,
		endpoints: endpoints,
	}
}

// Set replaces the current user and persists it.
func (s *Session) Set(info UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &info
	if err := s.store.Set(storeKey, info); err != nil {
		return err
	}
	return s.store.Save()
}

// Current returns the signed-in user, reading the store when nothing is
// held in memory yet.
func (s *Session) Current() (UserInfo, bool, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return *current, true, nil
	}

	var info UserInfo
	found, err := s.store.Get(storeKey, &info)
	if err != nil || !found {
		return UserInfo{}, false, err
	}

	s.mu.Lock()
	s.current = &info
	s.mu.Unlock()
	return info, true, nil
}

// Interceptor stamps UserHeader on requests made while a user is signed in.
// A header set by the caller is left alone.
func (s *Session) Interceptor() exchange.RequestInterceptor {
	return func(config exchange.RequestConfig) exchange.RequestConfig {
		info, ok, err := s.Current()
		if err != nil || !ok || info.UUID == "" {
			return config
		}
		if config.Header == nil {
			config.Header = map[string]string{}
		}
		if _, set := config.Header[UserHeader]; !set {
			config.Header[UserHeader] = info.UUID
		}
		return config
	}
}

func (s *Session) Login(ctx context.Context, userName, password string) (UserInfo, error) {
	resp, err := s.client.Request(ctx, exchange.RequestConfig{
		Method: exchange.MethodPost,
		URL:    s.endpoints.Login,
		Data: map[string]string{
			"userName": userName,
			"password": password,
		},
	})
	if err != nil {
		return UserInfo{}, err
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return UserInfo{}, err
	}
	var info UserInfo
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &info); err != nil {
			return UserInfo{}, errors.Wrap(err, "parsing login data")
		}
	}
	if info.UserName == "" {
		info.UserName = userName
	}
	if err := s.Set(info); err != nil {
		return UserInfo{}, err
	}
	return info, nil
}

// Logout calls the logout endpoint and forgets the stored user. It returns
// the server's message.
func (s *Session) Logout(ctx context.Context) (string, error) {
	resp, err := s.client.Request(ctx, exchange.RequestConfig{
		Method: exchange.MethodGet,
		URL:    s.endpoints.Logout,
	})
	if err != nil {
		return "", err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if _, err := s.store.Delete(storeKey); err != nil {
		return env.Message, err
	}
	return env.Message, s.store.Save()
}

func decodeEnvelope(resp *exchange.Response) (*envelope, error) {
	var env envelope
	if err := resp.JSON(&env); err != nil {
		return nil, err
	}
	if env.Code != codeOK {
		return nil, errors.WithStack(&APIError{Code: env.Code, Message: env.Message})
	}
	return &env, nil
}
