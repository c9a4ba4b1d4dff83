package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"freeform-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func getSnapshot(t *testing.T, env *testEnv, query string) (*http.Response, string) {
	t.Helper()
	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/snapshot"+query, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func withProfile(env *testEnv) *models.Profile {
	profile, _ := env.profiles.GetOrCreateProfile(uuid.New())
	return profile
}

func TestSnapshot_MissingAndUnknownTokenLookIdentical(t *testing.T) {
	env := setupApp(false)
	withProfile(env)

	missing, missingBody := getSnapshot(t, env, "")
	unknown, unknownBody := getSnapshot(t, env, "?token=fbt_well_formed_but_unknown")

	assert.Equal(t, fiber.StatusUnauthorized, missing.StatusCode)
	assert.Equal(t, missing.StatusCode, unknown.StatusCode)
	assert.Equal(t, missingBody, unknownBody)
	assert.JSONEq(t, `{"error":"Invalid token"}`, unknownBody)
}

func TestSnapshot_NoBoard(t *testing.T) {
	env := setupApp(false)
	profile := withProfile(env)

	resp, body := getSnapshot(t, env, "?token="+profile.APIToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"No snapshot available"}`, body)
}

func TestSnapshot_BoardWithoutImage(t *testing.T) {
	env := setupApp(false)
	profile := withProfile(env)
	require.NoError(t, env.boards.UpsertBoard(profile.ID, datatypes.JSON(`"S1"`), models.NewNullableString(nil)))

	resp, _ := getSnapshot(t, env, "?token="+profile.APIToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSnapshot_RedirectsToLatestImage(t *testing.T) {
	env := setupApp(false)
	profile := withProfile(env)
	url := "https://img.test/" + profile.ID.String() + "/board-snapshot.png"
	require.NoError(t, env.boards.UpsertBoard(profile.ID, datatypes.JSON(`"S2"`), models.NewNullableString(&url)))

	resp, _ := getSnapshot(t, env, "?token="+profile.APIToken)
	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, url, resp.Header.Get("Location"))
}

func TestSnapshot_IgnoresSessionAndOtherUsers(t *testing.T) {
	env := setupApp(false)
	owner := withProfile(env)
	other := withProfile(env)
	url := "https://img.test/other.png"
	require.NoError(t, env.boards.UpsertBoard(other.ID, datatypes.JSON(`"S"`), models.NewNullableString(&url)))

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot?token="+owner.APIToken, nil)
	req.Header.Set("Authorization", "Bearer "+env.token(other.ID))
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSnapshot_StorageError(t *testing.T) {
	env := setupApp(false)
	profile := withProfile(env)
	env.boards.fail = errStorage

	resp, body := getSnapshot(t, env, "?token="+profile.APIToken)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, errStorage.Error())
}
