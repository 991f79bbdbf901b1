package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/cache"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// In-memory fakes implementing the store interfaces. A fake (not a mock
// framework) keeps test setup explicit: the map is the database.

func ptr(s string) *string { return &s }

// --- fakeCollegeStore ---

type fakeCollegeStore struct {
	colleges map[string]*models.College

	// nil unless cross-entity semantics matter to the test
	programs *fakeProgramStore

	// set to simulate a backing store failure
	err error
}

func newFakeCollegeStore() *fakeCollegeStore {
	return &fakeCollegeStore{colleges: make(map[string]*models.College)}
}

func (f *fakeCollegeStore) sortedCodes() []string {
	codes := make([]string, 0, len(f.colleges))
	for c := range f.colleges {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func (f *fakeCollegeStore) GetByCode(ctx context.Context, code string) (*models.College, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.colleges[strings.ToUpper(code)]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCollegeStore) List(ctx context.Context, params helpers.ListParams) ([]*models.College, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []*models.College
	for _, code := range f.sortedCodes() {
		c := f.colleges[code]
		if params.Search != "" {
			s := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(c.Code), s) && !strings.Contains(strings.ToLower(c.Name), s) {
				continue
			}
		}
		matched = append(matched, c)
	}
	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeCollegeStore) Exists(ctx context.Context, code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.colleges[strings.ToUpper(code)]
	return ok, nil
}

func (f *fakeCollegeStore) GetCodes(ctx context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	codes := f.sortedCodes()
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes, nil
}

func (f *fakeCollegeStore) Create(ctx context.Context, college *models.College) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.colleges[college.Code]; ok {
		return apperrors.ErrCollegeAlreadyExists
	}
	copied := *college
	f.colleges[college.Code] = &copied
	return nil
}

func (f *fakeCollegeStore) Update(ctx context.Context, code string, name string) error {
	if f.err != nil {
		return f.err
	}
	c, ok := f.colleges[strings.ToUpper(code)]
	if !ok {
		return apperrors.ErrCollegeNotFound
	}
	c.Name = name
	return nil
}

var _ CollegeStore = (*fakeCollegeStore)(nil)

// Delete removes the college and detaches its programs (SET NULL)
func (f *fakeCollegeStore) Delete(ctx context.Context, code string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	code = strings.ToUpper(code)
	if _, ok := f.colleges[code]; !ok {
		return 0, apperrors.ErrCollegeNotFound
	}
	var detached int64
	if f.programs != nil {
		for _, p := range f.programs.programs {
			if p.College != nil && *p.College == code {
				p.College = nil
				detached++
			}
		}
	}
	delete(f.colleges, code)
	return detached, nil
}

func (f *fakeCollegeStore) Count(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.colleges)), nil
}

func (f *fakeCollegeStore) GetStats(ctx context.Context) ([]*models.CollegeStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	var stats []*models.CollegeStats
	for _, code := range f.sortedCodes() {
		c := f.colleges[code]
		entry := &models.CollegeStats{Code: c.Code, Name: c.Name}
		if f.programs != nil {
			for _, p := range f.programs.programs {
				if p.College != nil && *p.College == c.Code {
					entry.ProgramCount++
					count, _ := f.programs.GetStudentCount(ctx, p.Code)
					entry.StudentCount += count
				}
			}
		}
		stats = append(stats, entry)
	}
	return stats, nil
}

func (f *fakeCollegeStore) GetTotalStudents(ctx context.Context, code string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var total int64
	if f.programs != nil {
		for _, p := range f.programs.programs {
			if p.College != nil && strings.EqualFold(*p.College, code) {
				count, _ := f.programs.GetStudentCount(ctx, p.Code)
				total += count
			}
		}
	}
	return total, nil
}

// --- fakeProgramStore ---

type fakeProgramStore struct {
	programs map[string]*models.Program
	students *fakeStudentStore // nil unless cascade semantics matter

	err       error
	renameErr error
}

func newFakeProgramStore() *fakeProgramStore {
	return &fakeProgramStore{programs: make(map[string]*models.Program)}
}

var _ ProgramStore = (*fakeProgramStore)(nil)

func (f *fakeProgramStore) sortedCodes() []string {
	codes := make([]string, 0, len(f.programs))
	for c := range f.programs {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func (f *fakeProgramStore) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.programs[strings.ToUpper(code)]
	if !ok {
		return nil, apperrors.ErrProgramNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProgramStore) List(ctx context.Context, params helpers.ListParams, college string) ([]*models.Program, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []*models.Program
	for _, code := range f.sortedCodes() {
		p := f.programs[code]
		if college != "" {
			if p.College == nil || !strings.EqualFold(*p.College, college) {
				continue
			}
		}
		if params.Search != "" {
			s := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(p.Code), s) && !strings.Contains(strings.ToLower(p.Name), s) {
				continue
			}
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProgramStore) Exists(ctx context.Context, code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.programs[strings.ToUpper(code)]
	return ok, nil
}

func (f *fakeProgramStore) GetCodes(ctx context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	codes := f.sortedCodes()
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes, nil
}

func (f *fakeProgramStore) Create(ctx context.Context, program *models.Program) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.programs[program.Code]; ok {
		return apperrors.ErrProgramAlreadyExists
	}
	copied := *program
	f.programs[program.Code] = &copied
	return nil
}

func (f *fakeProgramStore) Update(ctx context.Context, code string, name string, college *string) error {
	if f.err != nil {
		return f.err
	}
	p, ok := f.programs[strings.ToUpper(code)]
	if !ok {
		return apperrors.ErrProgramNotFound
	}
	p.Name = name
	p.College = college
	return nil
}

// Rename mirrors the transactional rename: the program row moves to the
// new code and enrolled students follow, all or nothing.
func (f *fakeProgramStore) Rename(ctx context.Context, oldCode, newCode, name string, college *string) (int64, error) {
	if f.renameErr != nil {
		return 0, f.renameErr
	}
	if f.err != nil {
		return 0, f.err
	}
	oldCode = strings.ToUpper(oldCode)
	newCode = strings.ToUpper(newCode)
	p, ok := f.programs[oldCode]
	if !ok {
		return 0, apperrors.ErrProgramNotFound
	}
	if _, taken := f.programs[newCode]; taken {
		return 0, apperrors.ErrProgramAlreadyExists
	}

	var affected int64
	if f.students != nil {
		for _, s := range f.students.students {
			if s.Course != nil && *s.Course == oldCode {
				s.Course = ptr(newCode)
				affected++
			}
		}
	}

	delete(f.programs, oldCode)
	p.Code = newCode
	p.Name = name
	p.College = college
	f.programs[newCode] = p
	return affected, nil
}

func (f *fakeProgramStore) Delete(ctx context.Context, code string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	code = strings.ToUpper(code)
	if _, ok := f.programs[code]; !ok {
		return 0, apperrors.ErrProgramNotFound
	}
	var detached int64
	if f.students != nil {
		for _, s := range f.students.students {
			if s.Course != nil && *s.Course == code {
				s.Course = nil
				detached++
			}
		}
	}
	delete(f.programs, code)
	return detached, nil
}

func (f *fakeProgramStore) Count(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.programs)), nil
}

func (f *fakeProgramStore) GetYearDistribution(ctx context.Context, code string) ([]models.YearCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[int]int64)
	if f.students != nil {
		for _, s := range f.students.students {
			if s.Course != nil && strings.EqualFold(*s.Course, code) {
				counts[s.Year]++
			}
		}
	}
	var years []int
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	var out []models.YearCount
	for _, y := range years {
		out = append(out, models.YearCount{Year: y, Count: counts[y]})
	}
	return out, nil
}

func (f *fakeProgramStore) GetEnrollmentStats(ctx context.Context) ([]*models.ProgramEnrollment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.ProgramEnrollment
	for _, code := range f.sortedCodes() {
		p := f.programs[code]
		count, _ := f.GetStudentCount(ctx, p.Code)
		out = append(out, &models.ProgramEnrollment{Code: p.Code, Name: p.Name, Enrollment: count})
	}
	return out, nil
}

func (f *fakeProgramStore) GetCountsByCollege(ctx context.Context) ([]*models.ProgramCollegeCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[string]int64)
	for _, p := range f.programs {
		if p.College != nil {
			counts[*p.College]++
		}
	}
	var colleges []string
	for c := range counts {
		colleges = append(colleges, c)
	}
	sort.Strings(colleges)
	var out []*models.ProgramCollegeCount
	for _, c := range colleges {
		out = append(out, &models.ProgramCollegeCount{College: c, Count: counts[c]})
	}
	return out, nil
}

func (f *fakeProgramStore) GetStudentCount(ctx context.Context, code string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	if f.students != nil {
		for _, s := range f.students.students {
			if s.Course != nil && strings.EqualFold(*s.Course, code) {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeProgramStore) GetByCollege(ctx context.Context, college string) ([]*models.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Program
	for _, code := range f.sortedCodes() {
		p := f.programs[code]
		if p.College != nil && strings.EqualFold(*p.College, college) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

// --- fakeStudentStore ---

type fakeStudentStore struct {
	students map[string]*models.Student

	err error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]*models.Student)}
}

var _ StudentStore = (*fakeStudentStore)(nil)

func (f *fakeStudentStore) sortedIDs() []string {
	ids := make([]string, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.students[strings.ToUpper(id)]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) List(ctx context.Context, params helpers.ListParams, course string) ([]*models.Student, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []*models.Student
	for _, id := range f.sortedIDs() {
		s := f.students[id]
		if course != "" {
			if s.Course == nil || !strings.EqualFold(*s.Course, course) {
				continue
			}
		}
		if params.Search != "" {
			q := strings.ToLower(params.Search)
			hay := strings.ToLower(s.ID + " " + s.FirstName + " " + s.LastName)
			if s.Course != nil {
				hay += " " + strings.ToLower(*s.Course)
			}
			if !strings.Contains(hay, q) {
				continue
			}
		}
		matched = append(matched, s)
	}
	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeStudentStore) Exists(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.students[strings.ToUpper(id)]
	return ok, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.students[student.ID]; ok {
		return apperrors.ErrStudentAlreadyExists
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) UpdatePhoto(ctx context.Context, id string, photoURL, filename *string) error {
	if f.err != nil {
		return f.err
	}
	s, ok := f.students[strings.ToUpper(id)]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.ProfilePhotoURL = photoURL
	s.ProfilePhotoFilename = filename
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	id = strings.ToUpper(id)
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) Count(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.students)), nil
}

func (f *fakeStudentStore) CountByYear(ctx context.Context) ([]models.YearCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[int]int64)
	for _, s := range f.students {
		counts[s.Year]++
	}
	var years []int
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	var out []models.YearCount
	for _, y := range years {
		out = append(out, models.YearCount{Year: y, Count: counts[y]})
	}
	return out, nil
}

func (f *fakeStudentStore) CountByCourse(ctx context.Context) ([]*models.CourseCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[string]int64)
	var unassigned int64
	for _, s := range f.students {
		if s.Course == nil {
			unassigned++
			continue
		}
		counts[*s.Course]++
	}
	var courses []string
	for c := range counts {
		courses = append(courses, c)
	}
	sort.Strings(courses)
	var out []*models.CourseCount
	for _, c := range courses {
		out = append(out, &models.CourseCount{Course: ptr(c), Count: counts[c]})
	}
	if unassigned > 0 {
		out = append(out, &models.CourseCount{Course: nil, Count: unassigned})
	}
	return out, nil
}

// --- fakeUserStore ---

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64

	err error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

var _ UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameExists
		}
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

// --- shared wiring helpers ---

// newTestStores returns a consistent set of fakes where program deletes and
// renames touch the student store the way the real schema does.
func newTestStores() (*fakeCollegeStore, *fakeProgramStore, *fakeStudentStore) {
	colleges := newFakeCollegeStore()
	students := newFakeStudentStore()
	programs := newFakeProgramStore()
	programs.students = students
	colleges.programs = programs
	return colleges, programs, students
}

func newTestDashboard(colleges CollegeStore, programs ProgramStore, students StudentStore) *DashboardService {
	return NewDashboardService(colleges, programs, students, cache.NewTTLCache(time.Minute))
}
