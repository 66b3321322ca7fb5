package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	err error
}

func (f *fakeUsecase) check(value string) error {
	if value == "" {
		return fmt.Errorf("%w: name", entity.ErrMissingField)
	}
	return f.err
}

func (f *fakeUsecase) Prompt(_ context.Context, message string) (string, error) {
	return "reply to " + message, f.check(message)
}

func (f *fakeUsecase) CelebDetails(_ context.Context, name string) (string, error) {
	return "about " + name, f.check(name)
}

func (f *fakeUsecase) PlayerDetails(_ context.Context, name string) (*entity.Player, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	return &entity.Player{PlayerName: name, Achievements: []string{"Golden Boot"}}, nil
}

func (f *fakeUsecase) PlayerAchievements(_ context.Context, name string) ([]entity.Achievement, error) {
	if err := f.check(name); err != nil {
		return nil, err
	}
	return []entity.Achievement{{Title: "Golden Boot", Year: 1990, Description: "Top scorer"}}, nil
}

func serve(uc ChatUsecase, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestTextEndpoints(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/api/v1/chat?message=hi", "reply to hi"},
		{"/api/v1/chat/celeb?name=Madonna", "about Madonna"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(&fakeUsecase{}, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestPlayerDetails(t *testing.T) {
	rec := serve(&fakeUsecase{}, "/api/v1/chat/player?name=Stoichkov")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"playerName":"Stoichkov","achievements":["Golden Boot"]}`, rec.Body.String())
}

func TestPlayerAchievements(t *testing.T) {
	rec := serve(&fakeUsecase{}, "/api/v1/chat/achievements/player?name=Stoichkov")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"title":"Golden Boot","year":1990,"description":"Top scorer"}]`, rec.Body.String())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"missing message", "/api/v1/chat", nil, http.StatusBadRequest},
		{"missing celeb name", "/api/v1/chat/celeb", nil, http.StatusBadRequest},
		{"missing player name", "/api/v1/chat/player?name=", nil, http.StatusBadRequest},
		{"provider failure", "/api/v1/chat/achievements/player?name=x", entity.ErrGeneration, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUsecase{err: tt.err}, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body entity.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
		})
	}
}
