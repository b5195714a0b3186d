package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ParentDashboard is the aggregate body from GET /padre/dashboard/.
// It arrives fully computed; the client only decides reachability and shape.
type ParentDashboard struct {
	CurrentPeriod   string          `json:"periodo_actual"`
	Children        []ChildOverview `json:"hijos"`
	GeneralSummary  *GeneralSummary `json:"resumen_general"`
	ImportantAlerts []Alert         `json:"alertas_importantes"`
}

// ChildOverview is one child's card on the parent dashboard.
type ChildOverview struct {
	ID             int      `json:"id"`
	FullName       string   `json:"nombre_completo"`
	CourseName     string   `json:"curso_nombre"`
	AcademicStatus string   `json:"estado_academico"`
	AverageGrade   *float64 `json:"promedio_general"`
	AttendancePct  *float64 `json:"porcentaje_asistencia"`
	Alerts         []Alert  `json:"alertas"`
	UpcomingEvents []Event  `json:"proximos_eventos"`
}

// GeneralSummary aggregates across all children of the parent.
type GeneralSummary struct {
	TotalChildren int      `json:"total_hijos"`
	AverageGrade  *float64 `json:"promedio_general"`
	AttendancePct *float64 `json:"porcentaje_asistencia"`
}

// Alert is a backend-raised notice about a child.
type Alert struct {
	Type    string `json:"tipo,omitempty"`
	Message string `json:"mensaje"`
	Emoji   string `json:"emoji,omitempty"`
}

// Event is an upcoming school event.
type Event struct {
	Title string `json:"titulo"`
	Date  string `json:"fecha,omitempty"`
}

// ChildDetail is the per-child body from GET /padre/hijo/{id}/.
type ChildDetail struct {
	ID               int             `json:"id"`
	FullName         string          `json:"nombre_completo"`
	CourseName       string          `json:"curso_nombre"`
	Level            string          `json:"nivel"`
	AvailablePeriods []string        `json:"periodos_disponibles"`
	Stats            *ChildStats     `json:"estadisticas"`
	Subjects         []SubjectDetail `json:"materias"`
	Prediction       *Prediction     `json:"prediccion"`
	Navigation       *Navigation     `json:"navegacion"`
}

// ChildStats are the backend-computed headline figures for one period.
type ChildStats struct {
	AverageGrade      *float64 `json:"promedio_general"`
	SubjectsWithGrade int      `json:"materias_con_notas"`
	TotalSubjects     int      `json:"total_materias"`
	AttendancePct     *float64 `json:"porcentaje_asistencia"`
	DaysPresent       int      `json:"dias_presente"`
	TotalDays         int      `json:"total_dias"`
	ParticipationAvg  *float64 `json:"promedio_participaciones"`
}

// SubjectDetail is one subject's breakdown inside a child detail.
type SubjectDetail struct {
	ID      int      `json:"id"`
	Name    string   `json:"nombre"`
	Average *float64 `json:"promedio"`
	Trend   string   `json:"tendencia"`
	Grades  []Grade  `json:"notas"`
}

// Navigation lists siblings for switching between children.
type Navigation struct {
	OnlyChild bool      `json:"es_hijo_unico"`
	Siblings  []Sibling `json:"hermanos"`
}

// Sibling is a minimal record for the sibling switcher.
type Sibling struct {
	ID        int    `json:"id"`
	FirstName string `json:"user__first_name"`
	LastName  string `json:"user__last_name"`
}

// ParentDashboard retrieves the aggregate dashboard for the logged-in parent.
// The body is not a list; it passes through without envelope normalization.
func (c *Client) ParentDashboard(ctx context.Context) (*ParentDashboard, error) {
	var d ParentDashboard
	if err := c.get(ctx, "/padre/dashboard/", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ParentDashboardRaw retrieves the dashboard body undecoded, for snapshotting.
func (c *Client) ParentDashboardRaw(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/padre/dashboard/", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ChildDetail retrieves one child's academic detail. An empty period means
// the backend picks its current one.
func (c *Client) ChildDetail(ctx context.Context, childID int, period string) (*ChildDetail, error) {
	var query url.Values
	if period != "" {
		query = url.Values{"periodo": {period}}
	}
	var d ChildDetail
	if err := c.get(ctx, fmt.Sprintf("/padre/hijo/%d/", childID), query, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
