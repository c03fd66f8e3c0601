package api_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocapets/vocapets/internal/api"
	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/pets"
	"github.com/vocapets/vocapets/internal/repository/sqlite"
	"github.com/vocapets/vocapets/internal/services"
	"github.com/vocapets/vocapets/internal/testutil"
)

// newTestServer wires the full stack over an in-memory database with a
// fixed clock (a Tuesday).
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	database := testutil.NewTestDB(t)
	clk := clock.Fixed{T: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	rng := rand.New(rand.NewSource(1))

	profileRepo := sqlite.NewProfileRepository(database.DB)
	masteryRepo := sqlite.NewMasteryRepository(database.DB)
	rewardRepo := sqlite.NewRewardRepository(database.DB)
	questRepo := sqlite.NewQuestRepository(database.DB)
	challengeRepo := sqlite.NewChallengeRepository(database.DB)
	petRepo := sqlite.NewPetRepository(database.DB)

	questSvc := services.NewQuestService(questRepo, challengeRepo, profileRepo, clk, rng)
	srv := &api.Server{
		RewardService: services.NewRewardService(
			rewardRepo, profileRepo, petRepo, questSvc,
			pets.DefaultCatalog(), pets.LookupTypes, pets.TypeBonus, pets.ComputeStatus,
			nil, clk, rng,
		),
		MasteryService: services.NewMasteryService(masteryRepo, profileRepo, clk),
		QuestService:   questSvc,
		ProfileService: services.NewProfileService(profileRepo, petRepo, questSvc, clk),
	}
	return srv.Routes()
}

func createTestProfile(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"name":"mia"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestWeeklyChallengeEndpoint_FlatResponse(t *testing.T) {
	h := newTestServer(t)
	id := createTestProfile(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/"+id+"/weekly-challenge", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Record fields and daysLeft sit at the top level.
	assert.Equal(t, "2026-W11", body["week_key"])
	assert.EqualValues(t, 6, body["daysLeft"])
	assert.NotContains(t, body, "challenge")
}

func TestUnknownProfileReturnsNotFoundJSON(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/ghost", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}
