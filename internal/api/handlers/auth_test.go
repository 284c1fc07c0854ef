package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username": "newuser",
				"name":     "New User",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.UserPayload
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "newuser", result.Username)
				assert.Equal(t, domain.RoleUser, result.Role)
				assert.NotEmpty(t, result.ID)
			},
		},
		{
			name: "missing username",
			request: map[string]string{
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			request: map[string]string{
				"username": "testuser",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username variant",
			request: map[string]string{
				"username": " EXISTINGUSER ",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/auth/register"), tt.request)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	t.Run("successful login returns token and profile", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"username": "loginuser",
			"password": "correctpassword",
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var result testutil.LoginPayload
		testutil.AssertJSONResponse(t, resp, &result)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "loginuser", result.User.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		wrongPass := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"username": "loginuser",
			"password": "wrongpassword",
		})
		defer wrongPass.Body.Close()

		unknownUser := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"username": "ghost",
			"password": "whatever",
		})
		defer unknownUser.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
		assert.Equal(t, testutil.ReadBody(t, wrongPass), testutil.ReadBody(t, unknownUser))
	})

	t.Run("missing username", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
			"password": "whatever",
		})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithUsername("me_user").
		WithPassword("password123").
		Build(t, ts.DB.DB)
	token := testutil.Login(t, ts, "me_user", password)

	t.Run("with valid token", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/auth/me"), token)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var result testutil.UserPayload
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "me_user", result.Username)
	})

	t.Run("without token", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/auth/me"), "")
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("with tampered token", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/auth/me"), token+"x")
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Invalid token")
	})
}

func TestAuthHandler_ListUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminPass := testutil.NewUserBuilder().
		WithUsername("admin").
		WithRole(domain.RoleAdmin).
		Build(t, ts.DB.DB)
	_, userPass := testutil.NewUserBuilder().
		WithUsername("plainuser").
		Build(t, ts.DB.DB)

	adminToken := testutil.Login(t, ts, "admin", adminPass)
	userToken := testutil.Login(t, ts, "plainuser", userPass)

	t.Run("admin sees all users ordered by username", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/users/"), adminToken)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var result []testutil.UserPayload
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result, 2)
		assert.Equal(t, "admin", result[0].Username)
		assert.Equal(t, "plainuser", result[1].Username)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/users/"), userToken)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		resp := getWithToken(t, ts.APIURL("/users/"), "")
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}
