package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/user"
)

func Test_userApi_userLogin(t *testing.T) {
	env := setup(t)

	env.createUser(t, "Awe", "awe", "awe@test.cd", "LolC@t123", nil, true)
	env.createUser(t, "Naughty", "ndog", "ndog@test.cd", "LolC@t123", nil, false)

	tests := []httpTest{
		{
			name: "unknown user", body: marchallObj(t, LoginRequest{Username: "lol", Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, LoginRequest{Username: "awe", Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marchallObj(t, LoginRequest{Username: "ndog", Password: "LolC@t123"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "login with username", body: marchallObj(t, LoginRequest{Username: "awe", Password: "LolC@t123"}),
			wantCode: http.StatusOK,
		},
		{
			name: "login with email", body: marchallObj(t, LoginRequest{Username: "awe@test.cd", Password: "LolC@t123"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			} else {
				var resp LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling response failed, %v", err)
				}
				if resp.Token == "" {
					t.Error("expected a token in the response")
				}
			}
		})
	}
}

func Test_userApi_userLogout(t *testing.T) {
	env := setup(t)

	admin := env.createUser(t, "Admin", "admin", "admin@test.cd", "LolC@t123", []string{user.RoleAdmin}, true)
	token := getToken(t, admin)

	// token works before logout
	req, rec := newAuthRequest(http.MethodGet, "/v1/users", token)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pre-logout request failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/users/logout", token)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// the revoked token is rejected until expiry
	req, rec = newAuthRequest(http.MethodGet, "/v1/users", token)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("post-logout request: code = %v; wantCode %v", rec.Code, http.StatusUnauthorized)
	}

	// a fresh token still works
	req, rec = newAuthRequest(http.MethodGet, "/v1/users", getToken(t, admin))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("fresh token request: code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
}

func Test_userApi_userRefreshToken(t *testing.T) {
	env := setup(t)

	usr := env.createUser(t, "Awe", "awe", "awe@test.cd", "LolC@t123", nil, true)

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, usr))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
}

func Test_userApi_userCreate(t *testing.T) {
	env := setup(t)

	admin := env.createUser(t, "Admin", "admin", "admin@test.cd", "LolC@t123", []string{user.RoleAdminOwner}, true)
	student := env.createUser(t, "Hero", "heroo1", "hero@test.cd", "LolC@t123", []string{user.RoleStudent}, true)

	body := func(uname, email string, roles ...string) []byte {
		return marchallObj(t, user.NewUser{
			Name:            uname,
			Username:        uname,
			Email:           email,
			Password:        "LolC@t123",
			PasswordConfirm: "LolC@t123",
			Roles:           roles,
		})
	}

	tests := []httpTest{
		{
			name: "auth required", body: body("kinaya", "kinaya@test.cd"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "admin required", body: body("kinaya", "kinaya@test.cd"), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "create ok", body: body("kinaya", "kinaya@test.cd", user.RoleTeacher), token: getToken(t, admin),
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate username", body: body("kinaya", "other@test.cd"), token: getToken(t, admin),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "a user with this username already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}
