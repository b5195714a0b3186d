package api

import (
	"context"
	"fmt"
	"net/url"
)

// Resource records are carried with the backend's own field names. The client
// reshapes outer list envelopes only; inner fields are never validated or
// rewritten, and views default anything missing to "N/A".

// Teacher is a staff record from /maestros/.
type Teacher struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Specialty string `json:"especialidad,omitempty"`
}

// Course is a course record from /cursos/.
type Course struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Level   string `json:"nivel,omitempty"`
	TutorID int    `json:"tutor,omitempty"`
}

// Subject is a subject record from /materias/.
type Subject struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	CourseID int    `json:"curso,omitempty"`
}

// Student is a student record from /alumnos/.
type Student struct {
	ID         int    `json:"id"`
	FullName   string `json:"nombre_completo,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	CourseName string `json:"curso_nombre,omitempty"`
	Level      string `json:"nivel,omitempty"`
}

// Grade is a grade record from /notas/.
type Grade struct {
	ID        int     `json:"id"`
	StudentID int     `json:"alumno"`
	SubjectID int     `json:"materia"`
	Period    string  `json:"periodo"`
	Value     float64 `json:"valor"`
}

// Attendance is an attendance record from /asistencia/.
type Attendance struct {
	ID        int    `json:"id"`
	StudentID int    `json:"alumno"`
	Date      string `json:"fecha"`
	Present   bool   `json:"presente"`
}

// Participation is a classroom participation record from /participaciones/.
type Participation struct {
	ID        int     `json:"id"`
	StudentID int     `json:"alumno"`
	SubjectID int     `json:"materia,omitempty"`
	Date      string  `json:"fecha"`
	Value     float64 `json:"valor"`
}

// Prediction is the model output from /prediccion/{student}/{period}/.
// The payload is backend-owned; everything beyond the headline fields rides
// along in Extra untouched.
type Prediction struct {
	StudentID       int      `json:"alumno,omitempty"`
	Period          string   `json:"periodo,omitempty"`
	PredictedGrade  *float64 `json:"nota_predicha,omitempty"`
	Trend           string   `json:"tendencia,omitempty"`
	Recommendations []string `json:"recomendaciones,omitempty"`
}

// Teachers

// ListTeachers retrieves teachers, paginated or not.
func (c *Client) ListTeachers(ctx context.Context, query url.Values) (Page[Teacher], error) {
	return fetchPage[Teacher](ctx, c, "/maestros/", query)
}

// GetTeacher retrieves one teacher by ID.
func (c *Client) GetTeacher(ctx context.Context, id int) (*Teacher, error) {
	var t Teacher
	if err := c.get(ctx, fmt.Sprintf("/maestros/%d/", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTeacher creates a teacher record.
func (c *Client) CreateTeacher(ctx context.Context, t *Teacher) (*Teacher, error) {
	var out Teacher
	if err := c.post(ctx, "/maestros/", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTeacher updates a teacher record.
func (c *Client) UpdateTeacher(ctx context.Context, id int, t *Teacher) (*Teacher, error) {
	var out Teacher
	if err := c.put(ctx, fmt.Sprintf("/maestros/%d/", id), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTeacher deletes a teacher record.
func (c *Client) DeleteTeacher(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/maestros/%d/", id))
}

// Courses

// ListCourses retrieves courses.
func (c *Client) ListCourses(ctx context.Context, query url.Values) (Page[Course], error) {
	return fetchPage[Course](ctx, c, "/cursos/", query)
}

// GetCourse retrieves one course by ID.
func (c *Client) GetCourse(ctx context.Context, id int) (*Course, error) {
	var course Course
	if err := c.get(ctx, fmt.Sprintf("/cursos/%d/", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a course record.
func (c *Client) CreateCourse(ctx context.Context, course *Course) (*Course, error) {
	var out Course
	if err := c.post(ctx, "/cursos/", course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse updates a course record.
func (c *Client) UpdateCourse(ctx context.Context, id int, course *Course) (*Course, error) {
	var out Course
	if err := c.put(ctx, fmt.Sprintf("/cursos/%d/", id), course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse deletes a course record.
func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/cursos/%d/", id))
}

// Subjects

// ListSubjects retrieves subjects, optionally filtered by course.
func (c *Client) ListSubjects(ctx context.Context, courseID int, query url.Values) (Page[Subject], error) {
	if courseID > 0 {
		if query == nil {
			query = url.Values{}
		}
		query.Set("curso", fmt.Sprint(courseID))
	}
	return fetchPage[Subject](ctx, c, "/materias/", query)
}

// GetSubject retrieves one subject by ID.
func (c *Client) GetSubject(ctx context.Context, id int) (*Subject, error) {
	var s Subject
	if err := c.get(ctx, fmt.Sprintf("/materias/%d/", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSubject creates a subject record.
func (c *Client) CreateSubject(ctx context.Context, s *Subject) (*Subject, error) {
	var out Subject
	if err := c.post(ctx, "/materias/", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSubject updates a subject record.
func (c *Client) UpdateSubject(ctx context.Context, id int, s *Subject) (*Subject, error) {
	var out Subject
	if err := c.put(ctx, fmt.Sprintf("/materias/%d/", id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubject deletes a subject record.
func (c *Client) DeleteSubject(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/materias/%d/", id))
}

// Students

// ListStudents retrieves the students visible to the current session.
func (c *Client) ListStudents(ctx context.Context, query url.Values) (Page[Student], error) {
	return fetchPage[Student](ctx, c, "/alumnos/", query)
}

// GetStudent retrieves one student by ID.
func (c *Client) GetStudent(ctx context.Context, id int) (*Student, error) {
	var s Student
	if err := c.get(ctx, fmt.Sprintf("/alumnos/%d/", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Grades

// ListGrades retrieves grade records matching the filters.
func (c *Client) ListGrades(ctx context.Context, query url.Values) (Page[Grade], error) {
	return fetchPage[Grade](ctx, c, "/notas/", query)
}

// ListGradesByStudent retrieves every grade record for one student.
func (c *Client) ListGradesByStudent(ctx context.Context, studentID int) (Page[Grade], error) {
	return c.ListGrades(ctx, url.Values{"alumno": {fmt.Sprint(studentID)}})
}

// CreateGrade creates a grade record.
func (c *Client) CreateGrade(ctx context.Context, g *Grade) (*Grade, error) {
	var out Grade
	if err := c.post(ctx, "/notas/", g, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGrade updates a grade record.
func (c *Client) UpdateGrade(ctx context.Context, id int, g *Grade) (*Grade, error) {
	var out Grade
	if err := c.put(ctx, fmt.Sprintf("/notas/%d/", id), g, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGrade deletes a grade record.
func (c *Client) DeleteGrade(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/notas/%d/", id))
}

// Attendance

// ListAttendance retrieves attendance records matching the filters.
func (c *Client) ListAttendance(ctx context.Context, query url.Values) (Page[Attendance], error) {
	return fetchPage[Attendance](ctx, c, "/asistencia/", query)
}

// ListAttendanceByStudent retrieves attendance records for one student.
func (c *Client) ListAttendanceByStudent(ctx context.Context, studentID int) (Page[Attendance], error) {
	return c.ListAttendance(ctx, url.Values{"alumno": {fmt.Sprint(studentID)}})
}

// Participations

// ListParticipations retrieves participation records matching the filters.
func (c *Client) ListParticipations(ctx context.Context, query url.Values) (Page[Participation], error) {
	return fetchPage[Participation](ctx, c, "/participaciones/", query)
}

// ListParticipationsByStudent retrieves participation records for one student.
func (c *Client) ListParticipationsByStudent(ctx context.Context, studentID int) (Page[Participation], error) {
	return c.ListParticipations(ctx, url.Values{"alumno": {fmt.Sprint(studentID)}})
}

// Predictions

// GetPrediction retrieves the academic prediction for a student and period.
func (c *Client) GetPrediction(ctx context.Context, studentID int, period string) (*Prediction, error) {
	var p Prediction
	path := fmt.Sprintf("/prediccion/%d/%s/", studentID, url.PathEscape(period))
	if err := c.get(ctx, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
