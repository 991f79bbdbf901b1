package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/db"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/dberrors"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
	"github.com/ekurt/campusreg/internal/pkg/logger"
)

// ProgramRepository handles database operations for programs. It holds the
// PostgresDB wrapper rather than the bare pool because the code rename
// needs an explicit transaction.
type ProgramRepository struct {
	db *db.PostgresDB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(database *db.PostgresDB) *ProgramRepository {
	return &ProgramRepository{db: database}
}

// programSortColumns whitelists ORDER BY targets for the list query.
// Sorting by "college" orders by the joined college name.
var programSortColumns = map[string]string{
	"code":    "p.code",
	"name":    "p.name",
	"college": "c.name",
}

// GetByCode retrieves a program by its code (case-insensitive)
func (r *ProgramRepository) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	query := `
		SELECT p.code, p.name, p.college, COALESCE(c.name, '')
		FROM program p
		LEFT JOIN college c ON c.code = p.college
		WHERE UPPER(p.code) = UPPER($1)
	`

	var program models.Program
	err := r.db.Pool.QueryRow(ctx, query, code).Scan(
		&program.Code,
		&program.Name,
		&program.College,
		&program.CollegeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}

	return &program, nil
}

// List retrieves programs matching the search/filter parameters along with
// the total count before pagination. college narrows to one college code.
func (r *ProgramRepository) List(ctx context.Context, params helpers.ListParams, college string) ([]*models.Program, int64, error) {
	where, args := programSearchClause(params, college)

	base := `
		FROM program p
		LEFT JOIN college c ON c.code = p.college
	`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) "+base+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	sortCol := programSortColumns[params.Sort]
	if sortCol == "" {
		sortCol = "p.code"
	}

	query := fmt.Sprintf(
		"SELECT p.code, p.name, p.college, COALESCE(c.name, '') %s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		base, where, sortCol, params.Order, len(args)+1, len(args)+2,
	)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	programs := make([]*models.Program, 0, params.PerPage)
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(&program.Code, &program.Name, &program.College, &program.CollegeName); err != nil {
			return nil, 0, apperrors.NewStorageError(err)
		}
		programs = append(programs, &program)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}

	return programs, total, nil
}

func programSearchClause(params helpers.ListParams, college string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		args = append(args, pattern)
		n := len(args)
		switch params.Filter {
		case "code":
			conds = append(conds, fmt.Sprintf("p.code ILIKE $%d", n))
		case "name":
			conds = append(conds, fmt.Sprintf("p.name ILIKE $%d", n))
		case "college":
			conds = append(conds, fmt.Sprintf("c.name ILIKE $%d", n))
		default:
			conds = append(conds, fmt.Sprintf("(p.code ILIKE $%d OR p.name ILIKE $%d OR c.name ILIKE $%d)", n, n, n))
		}
	}

	if college != "" {
		args = append(args, college)
		conds = append(conds, fmt.Sprintf("UPPER(p.college) = UPPER($%d)", len(args)))
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

// Exists checks whether a program code is taken (case-insensitive)
func (r *ProgramRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM program WHERE UPPER(code) = UPPER($1))`,
		code).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err)
	}
	return exists, nil
}

// GetCodes returns up to limit program codes, ordered, for validation hints
// and the program-code cache.
func (r *ProgramRepository) GetCodes(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT code FROM program ORDER BY code`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
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

// Create inserts a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO program (code, name, college)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Pool.Exec(ctx, query, program.Code, program.Name, program.College)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewReferentialIntegrityError("college does not exist")
		}
		return apperrors.NewStorageError(err)
	}

	return nil
}

// Update updates a program's name and college without touching the code
func (r *ProgramRepository) Update(ctx context.Context, code string, name string, college *string) error {
	cmdTag, err := r.db.Pool.Exec(ctx,
		`UPDATE program SET name = $1, college = $2 WHERE UPPER(code) = UPPER($3)`,
		name, college, code)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewReferentialIntegrityError("college does not exist")
		}
		return apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// Rename changes a program's code inside one transaction. The FK on
// student.course is declared ON UPDATE CASCADE, so the database carries
// dependent rows along; the cascade is verified by recounting students on
// the new code, and any mismatch rolls back the whole operation.
func (r *ProgramRepository) Rename(ctx context.Context, oldCode, newCode, name string, college *string) (int64, error) {
	var affected int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM program WHERE UPPER(code) = UPPER($1) AND UPPER(code) != UPPER($2))`,
			newCode, oldCode).Scan(&exists)
		if err != nil {
			return apperrors.NewStorageError(err)
		}
		if exists {
			return apperrors.ErrProgramAlreadyExists
		}

		var before int64
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM student WHERE UPPER(course) = UPPER($1)`,
			oldCode).Scan(&before)
		if err != nil {
			return apperrors.NewStorageError(err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE program SET code = $1, name = $2, college = $3 WHERE UPPER(code) = UPPER($4)`,
			newCode, name, college, oldCode)
		if err != nil {
			return apperrors.NewStorageError(err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrProgramNotFound
		}

		var after int64
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM student WHERE course = $1`,
			newCode).Scan(&after)
		if err != nil {
			return apperrors.NewStorageError(err)
		}

		if after != before {
			logger.Error().
				Str("oldCode", oldCode).
				Str("newCode", newCode).
				Int64("expected", before).
				Int64("actual", after).
				Msg("Program code cascade mismatch, rolling back")
			return apperrors.ErrCascadeFailed
		}

		affected = after
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// Delete removes a program. Enrolled students are detached by the
// ON DELETE SET NULL action; the count of detached students is returned.
func (r *ProgramRepository) Delete(ctx context.Context, code string) (int64, error) {
	var detached int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student WHERE UPPER(course) = UPPER($1)`,
		code).Scan(&detached)
	if err != nil {
		return 0, apperrors.NewStorageError(err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM program WHERE UPPER(code) = UPPER($1)`, code)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewReferentialIntegrityError("program has enrolled students and cannot be deleted")
		}
		return 0, apperrors.NewStorageError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrProgramNotFound
	}

	return detached, nil
}

// Count returns the total number of programs
func (r *ProgramRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM program`).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// GetYearDistribution returns student counts per year level for a program
func (r *ProgramRepository) GetYearDistribution(ctx context.Context, code string) ([]models.YearCount, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT year, COUNT(id)
		FROM student
		WHERE UPPER(course) = UPPER($1)
		GROUP BY year
		ORDER BY year`,
		code)
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

// GetEnrollmentStats returns student counts per program with outer-join
// semantics: programs with no students appear with zero enrollment.
func (r *ProgramRepository) GetEnrollmentStats(ctx context.Context) ([]*models.ProgramEnrollment, error) {
	query := `
		SELECT p.code, p.name, COUNT(s.id) AS enrollment
		FROM program p
		LEFT JOIN student s ON s.course = p.code
		GROUP BY p.code, p.name
		ORDER BY p.code
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var stats []*models.ProgramEnrollment
	for rows.Next() {
		var e models.ProgramEnrollment
		if err := rows.Scan(&e.Code, &e.Name, &e.Enrollment); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		stats = append(stats, &e)
	}
	return stats, rows.Err()
}

// GetCountsByCollege returns the number of programs grouped by college
func (r *ProgramRepository) GetCountsByCollege(ctx context.Context) ([]*models.ProgramCollegeCount, error) {
	query := `
		SELECT p.college, c.name, COUNT(p.code)
		FROM program p
		JOIN college c ON c.code = p.college
		GROUP BY p.college, c.name
		ORDER BY p.college
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var stats []*models.ProgramCollegeCount
	for rows.Next() {
		var pc models.ProgramCollegeCount
		if err := rows.Scan(&pc.College, &pc.CollegeName, &pc.Count); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		stats = append(stats, &pc)
	}
	return stats, rows.Err()
}

// GetStudentCount returns the number of students enrolled in one program
func (r *ProgramRepository) GetStudentCount(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student WHERE UPPER(course) = UPPER($1)`,
		code).Scan(&count)
	if err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// GetByCollege returns all programs belonging to one college
func (r *ProgramRepository) GetByCollege(ctx context.Context, college string) ([]*models.Program, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT code, name, college
		FROM program
		WHERE UPPER(college) = UPPER($1)
		ORDER BY code`,
		college)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(&program.Code, &program.Name, &program.College); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		programs = append(programs, &program)
	}
	return programs, rows.Err()
}
