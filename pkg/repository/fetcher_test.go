package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_http "github.com/cperrin88/vpmsync/pkg/http/mocks"
	"github.com/cperrin88/vpmsync/pkg/model"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "https://example.com/vpm.json"},
		{raw: "http://localhost:8080/index.json?download"},
		{raw: "", wantErr: true},
		{raw: "not a url", wantErr: true},
		{raw: "example.com/vpm.json", wantErr: true},
		{raw: "https://", wantErr: true},
		{raw: "://missing-scheme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := ParseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrRepositoryURLInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, u.String())
		})
	}
}

func TestFetcher_FetchRaw_BadURLDoesNoNetworkIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_http.NewMockClient(ctrl)
	client.EXPECT().FetchRepository(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	f := NewFetcher(client)
	for _, raw := range []string{"", "not a url", "relative/path.json", "https://"} {
		outcome := f.FetchRaw(context.Background(), raw, nil, NewKnownSet())
		assert.Equal(t, model.OutcomeBadURL, outcome.Kind, "input %q", raw)
	}
}

func TestFetcher_Fetch_KnownURLDoesNoNetworkIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_http.NewMockClient(ctrl)
	client.EXPECT().FetchRepository(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	known := BuildKnownSet([]storedRepo{{id: "a.repo", url: "https://a/repo"}}, true, true)
	f := NewFetcher(client)

	for _, raw := range []string{"https://a/repo", CuratedURL, OfficialURL} {
		outcome := f.Fetch(context.Background(), mustURL(t, raw), nil, known)
		assert.Equal(t, model.OutcomeDuplicated, outcome.Kind, "url %q", raw)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	known := NewKnownSet()
	known.AddID("a.repo")
	known.AddURL("https://a/repo")

	tests := []struct {
		name       string
		url        string
		body       []byte
		fetchErr   error
		expectKind model.OutcomeKind
		expectRepo *model.ResolvedRepository
		expectMsg  string
	}{
		{
			name:       "id collision despite distinct url",
			url:        "https://b/repo",
			body:       testDocument(t, "a.repo", "", "A", "com.a.tool@1.0.0"),
			expectKind: model.OutcomeDuplicated,
		},
		{
			name:       "declared url collision",
			url:        "https://mirror/repo",
			body:       testDocument(t, "", "https://a/repo", "", "com.a.tool@1.0.0"),
			expectKind: model.OutcomeDuplicated,
		},
		{
			name:       "transport failure",
			url:        "https://c/repo",
			fetchErr:   errors.New("connection refused"),
			expectKind: model.OutcomeDownloadError,
			expectMsg:  "connection refused",
		},
		{
			name:       "parse failure",
			url:        "https://c/repo",
			body:       []byte("<html>"),
			expectKind: model.OutcomeDownloadError,
			expectMsg:  "invalid repository document",
		},
		{
			name: "success with preview packages",
			url:  "https://c/repo",
			body: testDocument(t, "c.repo", "", "C Repo",
				"com.c.tool@1.0.0", "com.c.tool@1.1.0", "com.c.tool@2.0.0!",
				"com.c.beta@0.1.0", "com.c.beta@0.2.0-beta.1",
				"com.c.gone@1.0.0!"),
			expectKind: model.OutcomeSuccess,
			expectRepo: &model.ResolvedRepository{
				ID:          "c.repo",
				URL:         "https://c/repo",
				DisplayName: "C Repo",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_http.NewMockClient(ctrl)
			u := mustURL(t, tt.url)
			headers := model.Headers{{Name: "X-Token", Value: "t"}}
			client.EXPECT().FetchRepository(gomock.Any(), u, headers).Return(tt.body, tt.fetchErr).Times(1)

			outcome := NewFetcher(client).Fetch(context.Background(), u, headers, known)
			require.Equal(t, tt.expectKind, outcome.Kind)
			if tt.expectMsg != "" {
				assert.Contains(t, outcome.Message, tt.expectMsg)
			}
			if tt.expectRepo == nil {
				assert.Nil(t, outcome.Repository)
				return
			}
			require.True(t, outcome.IsSuccess())
			assert.Equal(t, tt.expectRepo.ID, outcome.Repository.ID)
			assert.Equal(t, tt.expectRepo.URL, outcome.Repository.URL)
			assert.Equal(t, tt.expectRepo.DisplayName, outcome.Repository.DisplayName)

			var preview []string
			for _, p := range outcome.Repository.Packages {
				preview = append(preview, p.Name+"@"+p.Version)
			}
			assert.Equal(t, []string{"com.c.beta@0.2.0-beta.1", "com.c.tool@1.1.0"}, preview)
		})
	}
}
