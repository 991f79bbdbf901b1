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

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// collegeSortColumns whitelists ORDER BY targets for the list query
var collegeSortColumns = map[string]string{
	"code": "code",
	"name": "name",
}

// GetByCode retrieves a college by its code (case-insensitive)
func (r *CollegeRepository) GetByCode(ctx context.Context, code string) (*models.College, error) {
	query := `
		SELECT code, name
		FROM college
		WHERE UPPER(code) = UPPER($1)
	`

	var college models.College
	err := r.db.QueryRow(ctx, query, code).Scan(&college.Code, &college.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}

	return &college, nil
}

// List retrieves colleges matching the search/filter parameters along with
// the total count before pagination.
func (r *CollegeRepository) List(ctx context.Context, params helpers.ListParams) ([]*models.College, int64, error) {
	where, args := collegeSearchClause(params)

	var total int64
	countQuery := "SELECT COUNT(*) FROM college" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	sortCol := collegeSortColumns[params.Sort]
	if sortCol == "" {
		sortCol = "code"
	}

	query := fmt.Sprintf(
		"SELECT code, name FROM college%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		where, sortCol, params.Order, len(args)+1, len(args)+2,
	)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	colleges := make([]*models.College, 0, params.PerPage)
	for rows.Next() {
		var college models.College
		if err := rows.Scan(&college.Code, &college.Name); err != nil {
			return nil, 0, apperrors.NewStorageError(err)
		}
		colleges = append(colleges, &college)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	return colleges, total, nil
}

// collegeSearchClause builds the WHERE clause for the list query. A filter
// of "all" searches every text column with OR semantics.
func collegeSearchClause(params helpers.ListParams) (string, []interface{}) {
	if params.Search == "" {
		return "", nil
	}

	pattern := "%" + params.Search + "%"
	switch params.Filter {
	case "code":
		return " WHERE code ILIKE $1", []interface{}{pattern}
	case "name":
		return " WHERE name ILIKE $1", []interface{}{pattern}
	default:
		return " WHERE (code ILIKE $1 OR name ILIKE $1)", []interface{}{pattern}
	}
}

// Exists checks whether a college code is taken (case-insensitive)
func (r *CollegeRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM college WHERE UPPER(code) = UPPER($1))`,
		code).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err)
	}
	return exists, nil
}

// GetCodes returns up to limit college codes, ordered, for validation
// hints. A limit of zero or less returns every code.
func (r *CollegeRepository) GetCodes(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT code FROM college ORDER BY code`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Create inserts a new college
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO college (code, name)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, college.Code, college.Name)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCollegeAlreadyExists
		}
		return apperrors.NewStorageError(err)
	}

	return nil
}

// Update updates a college's name; the code itself is immutable here
func (r *CollegeRepository) Update(ctx context.Context, code string, name string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE college SET name = $1 WHERE UPPER(code) = UPPER($2)`,
		name, code)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// Delete removes a college. Programs referencing it are detached by the
// ON DELETE SET NULL action; the count of detached programs is returned.
func (r *CollegeRepository) Delete(ctx context.Context, code string) (int64, error) {
	var detached int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM program WHERE UPPER(college) = UPPER($1)`,
		code).Scan(&detached)
	if err != nil {
		return 0, apperrors.NewStorageError(err)
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM college WHERE UPPER(code) = UPPER($1)`, code)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewReferentialIntegrityError("college has associated programs and cannot be deleted")
		}
		return 0, apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrCollegeNotFound
	}

	return detached, nil
}

// Count returns the total number of colleges
func (r *CollegeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM college`).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// GetStats returns per-college program and student counts with outer-join
// semantics: colleges without children appear with zero counts.
func (r *CollegeRepository) GetStats(ctx context.Context) ([]*models.CollegeStats, error) {
	query := `
		SELECT c.code, c.name,
			COUNT(DISTINCT p.code) AS program_count,
			COUNT(s.id) AS student_count
		FROM college c
		LEFT JOIN program p ON p.college = c.code
		LEFT JOIN student s ON s.course = p.code
		GROUP BY c.code, c.name
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var stats []*models.CollegeStats
	for rows.Next() {
		var s models.CollegeStats
		if err := rows.Scan(&s.Code, &s.Name, &s.ProgramCount, &s.StudentCount); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// GetTotalStudents returns the number of students enrolled in any program
// of the given college.
func (r *CollegeRepository) GetTotalStudents(ctx context.Context, code string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(s.id)
		FROM student s
		JOIN program p ON s.course = p.code
		WHERE UPPER(p.college) = UPPER($1)`,
		code).Scan(&total)
	if err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return total, nil
}
