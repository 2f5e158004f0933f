package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/gymprogress/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wireDoc = `{
  "peso": [
    {"id": 1, "valor": 80.5, "data": "2024-01-01"},
    {"id": 2, "valor": "81,2", "data": "2024-01-10T08:30:00Z", "observacao": "jejum"},
    {"id": 3, "valor": "abc", "data": "2024-01-11"},
    {"id": 4, "valor": 82, "data": "not a date"},
    "garbage"
  ],
  "altura": [
    {"id": 5, "valor": 180, "data": "01/01/2024", "observacao": "  "}
  ],
  "pescoco": [],
  "cintura": {"oops": true}
}`

func TestDecodeStore(t *testing.T) {
	store, err := DecodeStoreIn([]byte(wireDoc), time.UTC)
	require.NoError(t, err)

	weights := store[models.MetricWeight]
	require.Len(t, weights, 2)
	assert.Equal(t, int64(1), weights[0].ID)
	assert.Equal(t, 80.5, weights[0].Value)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), weights[0].RecordedAt)
	assert.Equal(t, 81.2, weights[1].Value)
	assert.Equal(t, "jejum", weights[1].NoteText())

	heights := store[models.MetricHeight]
	require.Len(t, heights, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), heights[0].RecordedAt)
	assert.Nil(t, heights[0].Note, "blank observacao is dropped")

	assert.True(t, store.Has("pescoco"))
	assert.Empty(t, store["pescoco"])
	assert.False(t, store.Has(models.MetricWaist), "non-array series is skipped")
}

func TestDecodeStore_NotAnObject(t *testing.T) {
	_, err := DecodeStore([]byte(`[1, 2]`))
	assert.Error(t, err)

	store, err := DecodeStore([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, store)

	store, err = DecodeStore([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, store)
}

func TestEncodeStoreRoundTrip(t *testing.T) {
	at := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)
	in := models.Store{
		models.MetricWeight: {models.NewSample(7, 79.4, at).WithNote("manhã")},
	}

	data, err := EncodeStore(in)
	require.NoError(t, err)

	out, err := DecodeStoreIn(data, time.UTC)
	require.NoError(t, err)
	require.Len(t, out[models.MetricWeight], 1)
	got := out[models.MetricWeight][0]
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, 79.4, got.Value)
	assert.True(t, at.Equal(got.RecordedAt))
	assert.Equal(t, "manhã", got.NoteText())
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{
		"2024-01-05",
		"2024-01-05T10:00:00Z",
		"2024-01-05T10:00:00.123-03:00",
		"2024-01-05T10:00:00",
		"2024-01-05 10:00:00",
		"2024-01-05 10:00",
		"05/01/2024",
	} {
		got, err := ParseDate(in, time.UTC)
		require.NoError(t, err, in)
		assert.Equal(t, 5, got.Day(), in)
		assert.Equal(t, time.January, got.Month(), in)
	}

	_, err := ParseDate("yesterday", time.UTC)
	assert.Error(t, err)
}

func TestREST_Fetch(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(wireDoc))
	}))
	defer srv.Close()

	c := NewREST(srv.URL+"/", "secret")
	c.Location = time.UTC

	store, err := c.Fetch(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "/alunos/42/medidas", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Len(t, store[models.MetricWeight], 2)

	_, err = c.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/alunos/me/medidas", gotPath)
}

func TestREST_FetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewREST(srv.URL, "").Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestREST_FetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewREST(srv.URL, "").Fetch(ctx, "1")
	assert.Error(t, err)
}

func TestFile_FetchJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "samples.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(wireDoc), 0600))

	yamlPath := filepath.Join(dir, "samples.yaml")
	yamlDoc := `
peso:
  - id: 1
    valor: 80
    data: "2024-01-01"
altura:
  - id: 2
    valor: "200"
    data: "2024-01-01"
    observacao: medido na academia
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0600))

	store, err := NewFile(jsonPath).Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, store[models.MetricWeight], 2)

	store, err = NewFile(yamlPath).Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, store[models.MetricHeight], 1)
	assert.Equal(t, 200.0, store[models.MetricHeight][0].Value)
	assert.Equal(t, "medido na academia", store[models.MetricHeight][0].NoteText())

	_, err = NewFile(filepath.Join(dir, "missing.json")).Fetch(context.Background(), "")
	assert.Error(t, err)
}

func TestStaticAndFunc(t *testing.T) {
	st := Static{models.MetricWeight: {models.NewSample(1, 80, time.Now())}}
	got, err := st.Fetch(context.Background(), "")
	require.NoError(t, err)
	got[models.MetricWeight][0].Value = 1
	assert.Equal(t, 80.0, st[models.MetricWeight][0].Value)

	var called string
	f := Func(func(_ context.Context, id string) (models.Store, error) {
		called = id
		return models.Store{}, nil
	})
	_, err = f.Fetch(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", called)
}
