package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/dberrors"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// studentSortColumns whitelists ORDER BY targets for the list query
var studentSortColumns = map[string]string{
	"id":        "id",
	"firstname": "firstname",
	"lastname":  "lastname",
	"course":    "course",
	"year":      "year",
	"gender":    "gender",
}

const studentColumns = `id, firstname, lastname, course, year, gender, profile_photo_url, profile_photo_filename`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Course,
		&student.Year,
		&student.Gender,
		&student.ProfilePhotoURL,
		&student.ProfilePhotoFilename,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByID retrieves a student by ID (case-insensitive)
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM student WHERE UPPER(id) = UPPER($1)`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}

	return student, nil
}

// List retrieves students matching the search/filter parameters along with
// the total count before pagination. course narrows to one program code.
func (r *StudentRepository) List(ctx context.Context, params helpers.ListParams, course string) ([]*models.Student, int64, error) {
	where, args := studentSearchClause(params, course)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM student"+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	sortCol := studentSortColumns[params.Sort]
	if sortCol == "" {
		sortCol = "id"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM student%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		studentColumns, where, sortCol, params.Order, len(args)+1, len(args)+2,
	)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0, params.PerPage)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, apperrors.NewStorageError(err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	return students, total, nil
}

// studentSearchClause builds the WHERE clause for the list query. A filter
// of "all" ORs the substring match over id, firstname, lastname and course.
func studentSearchClause(params helpers.ListParams, course string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		args = append(args, pattern)
		n := len(args)
		switch params.Filter {
		case "id":
			conds = append(conds, fmt.Sprintf("id ILIKE $%d", n))
		case "firstname":
			conds = append(conds, fmt.Sprintf("firstname ILIKE $%d", n))
		case "lastname":
			conds = append(conds, fmt.Sprintf("lastname ILIKE $%d", n))
		case "course":
			conds = append(conds, fmt.Sprintf("course ILIKE $%d", n))
		default:
			conds = append(conds, fmt.Sprintf(
				"(id ILIKE $%d OR firstname ILIKE $%d OR lastname ILIKE $%d OR course ILIKE $%d)",
				n, n, n, n))
		}
	}

	if course != "" {
		args = append(args, course)
		conds = append(conds, fmt.Sprintf("UPPER(course) = UPPER($%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// Exists checks whether a student ID is taken (case-insensitive)
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM student WHERE UPPER(id) = UPPER($1))`,
		id).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err)
	}
	return exists, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO student (id, firstname, lastname, course, year, gender)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		student.ID, student.FirstName, student.LastName,
		student.Course, student.Year, student.Gender)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewReferentialIntegrityError("program does not exist")
		}
		return apperrors.NewStorageError(err)
	}

	return nil
}

// Update updates a student's mutable fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE student
		SET firstname = $1, lastname = $2, course = $3, year = $4, gender = $5
		WHERE UPPER(id) = UPPER($6)
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Course,
		student.Year, student.Gender, student.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewReferentialIntegrityError("program does not exist")
		}
		return apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdatePhoto sets or clears the profile photo reference
func (r *StudentRepository) UpdatePhoto(ctx context.Context, id string, photoURL, filename *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE student SET profile_photo_url = $1, profile_photo_filename = $2 WHERE UPPER(id) = UPPER($3)`,
		photoURL, filename, id)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM student WHERE UPPER(id) = UPPER($1)`, id)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// CountByYear returns student counts grouped by year level
func (r *StudentRepository) CountByYear(ctx context.Context) ([]models.YearCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT year, COUNT(id)
		FROM student
		GROUP BY year
		ORDER BY year`)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	counts := make([]models.YearCount, 0)
	for rows.Next() {
		var yc models.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}

// CountByCourse returns student counts grouped by program code. Detached
// students (course IS NULL) appear as a group with a nil course.
func (r *StudentRepository) CountByCourse(ctx context.Context) ([]*models.CourseCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course, COUNT(id)
		FROM student
		GROUP BY course
		ORDER BY course`)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var counts []*models.CourseCount
	for rows.Next() {
		var cc models.CourseCount
		if err := rows.Scan(&cc.Course, &cc.Count); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		counts = append(counts, &cc)
	}
	return counts, rows.Err()
}
