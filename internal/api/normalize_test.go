package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeList_Envelope(t *testing.T) {
	raw := json.RawMessage(`{
		"results": [{"id": 1, "nombre": "1A"}, {"id": 2, "nombre": "1B"}],
		"count": 2,
		"next": null,
		"previous": null
	}`)

	page, err := NormalizeList[Course](raw)
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Equal(t, "1A", page.Items[0].Name)
}

func TestNormalizeList_EnvelopeWithNextPage(t *testing.T) {
	next := `{"results": [{"id": 1}], "count": 30, "next": "http://x/cursos/?page=2", "previous": null}`

	page, err := NormalizeList[Course](json.RawMessage(next))
	require.NoError(t, err)

	assert.Equal(t, 30, page.Total)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestNormalizeList_BareArray(t *testing.T) {
	raw := json.RawMessage(`[{"id": 1}, {"id": 2}, {"id": 3}]`)

	page, err := NormalizeList[Student](raw)
	require.NoError(t, err)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Total)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestNormalizeList_ObjectWithoutResults(t *testing.T) {
	page, err := NormalizeList[Student](json.RawMessage(`{"id": 1, "nombre_completo": "Ana"}`))
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items, "views iterate without a nil check")
	assert.Zero(t, page.Total)
}

func TestNormalizeList_NonListBody(t *testing.T) {
	page, err := NormalizeList[Student](json.RawMessage(`"unexpected"`))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestListEndpointsNormalizePerCallSite(t *testing.T) {
	// One endpoint paginated, one bare: callers see the same Page shape.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/maestros/":
			w.Write([]byte(`{"results": [{"id": 1, "first_name": "Juan"}], "count": 12, "next": "p2", "previous": null}`))
		case "/materias/":
			w.Write([]byte(`[{"id": 5, "nombre": "Matemática"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	teachers, err := client.ListTeachers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, teachers.Total)
	assert.True(t, teachers.HasNext)

	subjects, err := client.ListSubjects(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, subjects.Total)
	assert.False(t, subjects.HasNext)
	assert.Equal(t, "Matemática", subjects.Items[0].Name)
}
