package api

import (
	"context"
	"sync"
)

// StudentSummary is a client-side aggregate of one student's records, derived
// from three list endpoints fetched concurrently.
type StudentSummary struct {
	Grades         []Grade
	Attendance     []Attendance
	Participations []Participation
	Stats          SummaryStats
}

// SummaryStats are the figures derived from the fetched records.
type SummaryStats struct {
	AverageGrade        float64
	AttendancePct       float64
	ParticipationAvg    float64
	TotalGrades         int
	TotalAttendance     int
	TotalParticipations int
}

// StudentSummary fans out to grades, attendance and participation for one
// student and joins all-or-nothing: if any fetch fails the whole operation
// fails and partial results are discarded. There is no retry.
func (c *Client) StudentSummary(ctx context.Context, studentID int) (*StudentSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		grades         Page[Grade]
		attendance     Page[Attendance]
		participations Page[Participation]
	)

	var wg sync.WaitGroup
	errCh := make(chan error, 3)

	fetch := func(f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				errCh <- err
				cancel()
			}
		}()
	}

	fetch(func() (err error) {
		grades, err = c.ListGradesByStudent(ctx, studentID)
		return
	})
	fetch(func() (err error) {
		attendance, err = c.ListAttendanceByStudent(ctx, studentID)
		return
	})
	fetch(func() (err error) {
		participations, err = c.ListParticipationsByStudent(ctx, studentID)
		return
	})

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	return &StudentSummary{
		Grades:         grades.Items,
		Attendance:     attendance.Items,
		Participations: participations.Items,
		Stats:          deriveStats(grades.Items, attendance.Items, participations.Items),
	}, nil
}

// deriveStats computes the headline figures. A student with no attendance
// records counts as fully present, matching what the dashboard has always
// shown for brand-new students.
func deriveStats(grades []Grade, attendance []Attendance, participations []Participation) SummaryStats {
	stats := SummaryStats{
		TotalGrades:         len(grades),
		TotalAttendance:     len(attendance),
		TotalParticipations: len(participations),
		AttendancePct:       100,
	}

	if len(grades) > 0 {
		var sum float64
		for _, g := range grades {
			sum += g.Value
		}
		stats.AverageGrade = sum / float64(len(grades))
	}

	if len(attendance) > 0 {
		present := 0
		for _, a := range attendance {
			if a.Present {
				present++
			}
		}
		stats.AttendancePct = float64(present) / float64(len(attendance)) * 100
	}

	if len(participations) > 0 {
		var sum float64
		for _, p := range participations {
			sum += p.Value
		}
		stats.ParticipationAvg = sum / float64(len(participations))
	}

	return stats
}
