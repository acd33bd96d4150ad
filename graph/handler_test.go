package graph

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postGraphQL(t *testing.T, handler *Handler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&decoded))
	return recorder, decoded
}

func TestHandlerExecutesQuery(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHandler(env.schema, env.users)

	body, err := json.Marshal(map[string]interface{}{
		"query": `mutation($input: UserCreateInput!) { createUser(input: $input) { id username } }`,
		"variables": map[string]interface{}{
			"input": map[string]interface{}{
				"username": "newcomer1",
				"email":    "newcomer@example.com",
				"password": "hunter2",
			},
		},
	})
	require.NoError(t, err)

	recorder, decoded := postGraphQL(t, handler, string(body))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	data := decoded["data"].(map[string]interface{})
	created := data["createUser"].(map[string]interface{})
	assert.Equal(t, "newcomer1", created["username"])
	_, hasErrors := decoded["errors"]
	assert.False(t, hasErrors)
}

func TestHandlerValidationEnvelopeCarriesFieldArray(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHandler(env.schema, env.users)

	body := `{"query":"mutation { createUser(input: { username: \"ab\", email: \"ok@example.com\", password: \"hunter2\" }) { id } }"}`
	recorder, decoded := postGraphQL(t, handler, body)

	assert.Equal(t, http.StatusOK, recorder.Code)

	errs := decoded["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})

	// message is the field-error array, not a string.
	message := first["message"].([]interface{})
	require.Len(t, message, 1)
	entry := message[0].(map[string]interface{})
	assert.Equal(t, "username", entry["fieldNameError"])
	assert.Equal(t, "O campo nome de usuário não atinge o tamanho mínimo de 6 caracteres.", entry["fieldMessageError"])

	extensions := first["extensions"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_FAILED", extensions["code"])
}

func TestHandlerAuthErrorEnvelope(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHandler(env.schema, env.users)

	_, decoded := postGraphQL(t, handler, `{"query":"{ currentUser { id } }"}`)

	errs := decoded["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "Unauthorized! Token not provided!", first["message"])

	extensions := first["extensions"].(map[string]interface{})
	assert.Equal(t, "UNAUTHENTICATED", extensions["code"])
}

func TestHandlerSyntaxErrorPassesThrough(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHandler(env.schema, env.users)

	recorder, decoded := postGraphQL(t, handler, `{"query":"{ currentUser "}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	errs := decoded["errors"].([]interface{})
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]interface{})
	message := first["message"].(string)
	assert.True(t, strings.Contains(message, "Syntax Error"))
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHandler(env.schema, env.users)

	recorder, decoded := postGraphQL(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	errs := decoded["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "invalid request body", first["message"])
}
