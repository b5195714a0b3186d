package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentDashboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/padre/dashboard/", r.URL.Path)
		w.Write([]byte(`{
			"periodo_actual": "Trimestre 2",
			"hijos": [{
				"id": 3,
				"nombre_completo": "Ana Lopez",
				"curso_nombre": "5to A",
				"estado_academico": "excelente",
				"promedio_general": 92.5,
				"porcentaje_asistencia": 98.0,
				"alertas": [],
				"proximos_eventos": [{"titulo": "Examen de matemática"}]
			}],
			"resumen_general": {"total_hijos": 1, "promedio_general": 92.5},
			"alertas_importantes": []
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dashboard, err := client.ParentDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Trimestre 2", dashboard.CurrentPeriod)
	require.Len(t, dashboard.Children, 1)

	child := dashboard.Children[0]
	assert.Equal(t, "Ana Lopez", child.FullName)
	assert.Equal(t, "excelente", child.AcademicStatus)
	require.NotNil(t, child.AverageGrade)
	assert.InDelta(t, 92.5, *child.AverageGrade, 0.001)
	require.Len(t, child.UpcomingEvents, 1)
}

func TestParentDashboard_NullFigures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"periodo_actual": "Trimestre 1",
			"hijos": [{"id": 3, "nombre_completo": "Ana", "promedio_general": null, "porcentaje_asistencia": null}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dashboard, err := client.ParentDashboard(context.Background())
	require.NoError(t, err)

	child := dashboard.Children[0]
	assert.Nil(t, child.AverageGrade, "missing figures stay nil for N/A rendering")
	assert.Nil(t, child.AttendancePct)
}

func TestChildDetail_PeriodQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/padre/hijo/3/", r.URL.Path)
		assert.Equal(t, "Trimestre 1", r.URL.Query().Get("periodo"))
		w.Write([]byte(`{
			"id": 3,
			"nombre_completo": "Ana Lopez",
			"periodos_disponibles": ["Trimestre 1", "Trimestre 2"],
			"estadisticas": {"promedio_general": 88.0, "dias_presente": 40, "total_dias": 42},
			"materias": [{"id": 1, "nombre": "Matemática", "promedio": 90.0, "tendencia": "mejorando"}],
			"navegacion": {"es_hijo_unico": false, "hermanos": [{"id": 4, "user__first_name": "Luis", "user__last_name": "Lopez"}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	detail, err := client.ChildDetail(context.Background(), 3, "Trimestre 1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Trimestre 1", "Trimestre 2"}, detail.AvailablePeriods)
	require.NotNil(t, detail.Stats)
	assert.Equal(t, 40, detail.Stats.DaysPresent)
	require.Len(t, detail.Subjects, 1)
	assert.Equal(t, "mejorando", detail.Subjects[0].Trend)
	require.NotNil(t, detail.Navigation)
	assert.False(t, detail.Navigation.OnlyChild)
	assert.Equal(t, "Luis", detail.Navigation.Siblings[0].FirstName)
}

func TestChildDetail_NoPeriodOmitsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"id": 3}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ChildDetail(context.Background(), 3, "")
	require.NoError(t, err)
}
