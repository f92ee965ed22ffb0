package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/bullbear-client/internal/config"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/utils"
	"github.com/MKhiriev/bullbear-client/models"
	"github.com/go-resty/resty/v2"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
)

type httpAuthBackend struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAuthBackend constructs an HTTP/REST implementation of [AuthBackend].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying client with the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAuthBackend(adapterCfg config.Adapter, log *logger.Logger) (AuthBackend, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpAuthBackend{
		client: utils.NewJSONClient(baseURL, adapterCfg.RequestTimeout),
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Login implements [AuthBackend]. POSTs the credentials to /api/auth/login
// and expects 200 with the user and token.
func (h *httpAuthBackend) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	return h.exchange(ctx, loginPath, creds, creds.Email)
}

// Register implements [AuthBackend]. POSTs the registration fields to
// /api/auth/register and expects 201 with the user and token.
func (h *httpAuthBackend) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	if req.PreferredSectors == nil {
		req.PreferredSectors = []string{}
	}
	return h.exchange(ctx, registerPath, req, req.Email)
}

func (h *httpAuthBackend) exchange(ctx context.Context, path string, body any, email string) (models.AuthResult, error) {
	log := h.logger.WithOp(path)

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		if ctx.Err() != nil {
			return models.AuthResult{}, ctx.Err()
		}
		log.Err(err).Msg("auth request failed")
		return models.AuthResult{}, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	if err = mapHTTPError(resp); err != nil {
		log.Debug().Int("status", resp.StatusCode()).Err(err).Msg("auth request rejected")
		return models.AuthResult{}, err
	}

	return decodeAuthResponse(resp, email)
}

func decodeAuthResponse(resp *resty.Response, email string) (models.AuthResult, error) {
	var out authResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: decode body: %v", ErrUnexpectedResponse, err)
	}
	if out.User == nil {
		return models.AuthResult{}, fmt.Errorf("%w: response carries no user", ErrUnexpectedResponse)
	}

	user := out.User.toModel()
	if user.ID == "" {
		return models.AuthResult{}, fmt.Errorf("%w: response user has no id", ErrUnexpectedResponse)
	}
	if user.Email == "" {
		user.Email = email
	}

	token := strings.TrimSpace(out.Token)
	if token == "" {
		token = strings.TrimSpace(out.AccessToken)
	}
	if token == "" {
		if bearer, err := utils.ParseBearerToken(resp.Header().Get("Authorization")); err == nil {
			token = bearer
		}
	}
	if token == "" {
		return models.AuthResult{}, fmt.Errorf("%w: response carries no token", ErrUnexpectedResponse)
	}

	return models.AuthResult{User: user, Token: token}, nil
}
