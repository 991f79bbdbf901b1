package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/pkg/cache"
)

func TestDashboardStats(t *testing.T) {
	colleges, programs, students := newTestStores()
	svc := newTestDashboard(colleges, programs, students)

	colleges.colleges["CCS"] = &models.College{Code: "CCS", Name: "College of Computer Studies"}
	programs.programs["BSCS"] = &models.Program{Code: "BSCS", Name: "BS Computer Science", College: ptr("CCS")}
	programs.programs["BSIT"] = &models.Program{Code: "BSIT", Name: "BS Information Technology", College: ptr("CCS")}
	students.students["2024-0001"] = &models.Student{ID: "2024-0001", FirstName: "Maria", LastName: "Santos", Course: ptr("BSCS"), Year: 1, Gender: "Female"}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(2), stats.TotalPrograms)
	assert.Equal(t, int64(1), stats.TotalColleges)
}

func TestDashboardStatsEmpty(t *testing.T) {
	colleges, programs, students := newTestStores()
	svc := newTestDashboard(colleges, programs, students)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalStudents)
	assert.Zero(t, stats.TotalPrograms)
	assert.Zero(t, stats.TotalColleges)

	charts, err := svc.GetCharts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, charts.StudentsByProgram)
	assert.Empty(t, charts.StudentsByCollege)
}

func TestDashboardCharts(t *testing.T) {
	colleges, programs, students := newTestStores()
	svc := newTestDashboard(colleges, programs, students)

	colleges.colleges["CCS"] = &models.College{Code: "CCS", Name: "College of Computer Studies"}
	colleges.colleges["COE"] = &models.College{Code: "COE", Name: "College of Engineering"}
	programs.programs["BSCS"] = &models.Program{Code: "BSCS", Name: "BS Computer Science", College: ptr("CCS")}
	programs.programs["BSIT"] = &models.Program{Code: "BSIT", Name: "BS Information Technology", College: ptr("CCS")}
	students.students["2024-0001"] = &models.Student{ID: "2024-0001", FirstName: "Maria", LastName: "Santos", Course: ptr("BSCS"), Year: 1, Gender: "Female"}
	students.students["2024-0002"] = &models.Student{ID: "2024-0002", FirstName: "Juan", LastName: "Reyes", Course: ptr("BSCS"), Year: 2, Gender: "Male"}

	charts, err := svc.GetCharts(context.Background())
	require.NoError(t, err)

	require.Len(t, charts.StudentsByProgram, 2)
	assert.Equal(t, "BSCS", charts.StudentsByProgram[0].ProgramCode)
	assert.Equal(t, int64(2), charts.StudentsByProgram[0].StudentCount)
	// Programs without students keep a zero bar
	assert.Equal(t, int64(0), charts.StudentsByProgram[1].StudentCount)

	require.Len(t, charts.StudentsByCollege, 2)
	assert.Equal(t, "CCS", charts.StudentsByCollege[0].CollegeCode)
	assert.Equal(t, int64(2), charts.StudentsByCollege[0].StudentCount)
	assert.Equal(t, int64(0), charts.StudentsByCollege[1].StudentCount)
}

func TestDashboardCachingAndInvalidate(t *testing.T) {
	colleges, programs, students := newTestStores()
	svc := NewDashboardService(colleges, programs, students, cache.NewTTLCache(time.Hour))

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalColleges)

	// A direct store write is invisible until the cache is invalidated
	colleges.colleges["CCS"] = &models.College{Code: "CCS", Name: "College of Computer Studies"}

	stats, err = svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalColleges)

	svc.Invalidate()

	stats, err = svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalColleges)
}
