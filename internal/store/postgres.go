package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentmatch/go-match-engine/internal/errors"
	"github.com/talentmatch/go-match-engine/model"
)

// PostgresStore reads candidate and job snapshots plus application history
// from Postgres. It implements services.SnapshotProvider and
// services.ApplicationHistoryProvider.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// NewPostgresStore returns a store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const candidateColumns = `
	c.id,
	COALESCE(array_agg(cs.skill) FILTER (WHERE cs.skill IS NOT NULL), '{}'),
	c.experience_level, c.experience_years,
	COALESCE(c.location, ''), COALESCE(c.preferred_locations, '{}'),
	COALESCE(c.salary_min, 0), COALESCE(c.salary_max, 0),
	COALESCE(c.bio, ''), COALESCE(c.current_title, ''),
	COALESCE(c.work_history_text, ''), c.visibility, c.updated_at`

const candidateFrom = `
	FROM candidates c
	LEFT JOIN candidate_skills cs ON cs.candidate_id = c.id`

// GetCandidate assembles a snapshot for one candidate.
func (s *PostgresStore) GetCandidate(ctx context.Context, candidateID string) (*model.CandidateSnapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT`+candidateColumns+candidateFrom+`
		 WHERE c.id = $1
		 GROUP BY c.id`,
		candidateID)

	candidate, err := scanCandidate(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewCandidateNotFoundError(candidateID)
		}
		return nil, fmt.Errorf("getCandidate: %w", err)
	}
	return candidate, nil
}

// ListVisibleCandidates returns candidates whose visibility allows them to
// appear in company-side recommendations, in stable ID order.
func (s *PostgresStore) ListVisibleCandidates(ctx context.Context) ([]model.CandidateSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT`+candidateColumns+candidateFrom+`
		 WHERE c.visibility IN ('public', 'companies_only')
		 GROUP BY c.id
		 ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("listVisibleCandidates query: %w", err)
	}
	defer rows.Close()

	return collectCandidates(rows)
}

// CandidatesAtLevel returns candidates with the given experience level,
// excluding excludeID.
func (s *PostgresStore) CandidatesAtLevel(ctx context.Context, level model.ExperienceLevel, excludeID string) ([]model.CandidateSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT`+candidateColumns+candidateFrom+`
		 WHERE c.experience_level = $1 AND c.id <> $2
		 GROUP BY c.id
		 ORDER BY c.id`,
		string(level), excludeID)
	if err != nil {
		return nil, fmt.Errorf("candidatesAtLevel query: %w", err)
	}
	defer rows.Close()

	return collectCandidates(rows)
}

// RecentlyUpdatedCandidateIDs lists candidates whose profile changed at or
// after the given instant.
func (s *PostgresStore) RecentlyUpdatedCandidateIDs(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM candidates WHERE updated_at >= $1 ORDER BY id`, since)
	if err != nil {
		return nil, fmt.Errorf("recentlyUpdatedCandidateIDs query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("recentlyUpdatedCandidateIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const jobColumns = `
	j.id, j.company_id,
	COALESCE(array_agg(js.skill) FILTER (WHERE js.skill IS NOT NULL), '{}'),
	j.experience_level,
	COALESCE(j.location, ''), COALESCE(j.remote_type, ''),
	COALESCE(j.salary_min, 0), COALESCE(j.salary_max, 0),
	COALESCE(j.title, ''), COALESCE(j.description, ''),
	COALESCE(j.requirements, ''), COALESCE(j.responsibilities, ''),
	j.status, j.expires_at, j.posted_at`

const jobFrom = `
	FROM jobs j
	LEFT JOIN job_skills js ON js.job_id = j.id`

// GetJob assembles a snapshot for one job posting.
func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*model.JobSnapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT`+jobColumns+jobFrom+`
		 WHERE j.id = $1
		 GROUP BY j.id`,
		jobID)

	job, err := scanJob(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewJobNotFoundError(jobID)
		}
		return nil, fmt.Errorf("getJob: %w", err)
	}
	return job, nil
}

// ListActiveJobs returns postings eligible for scoring, newest first.
func (s *PostgresStore) ListActiveJobs(ctx context.Context) ([]model.JobSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT`+jobColumns+jobFrom+`
		 WHERE j.status = 'active' AND (j.expires_at IS NULL OR j.expires_at > now())
		 GROUP BY j.id
		 ORDER BY j.posted_at DESC, j.id`)
	if err != nil {
		return nil, fmt.Errorf("listActiveJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.JobSnapshot, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listActiveJobs scan: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// PeerApplicationsAtCompany returns the given candidates' applications to
// postings of one company, joined with the job snapshots.
func (s *PostgresStore) PeerApplicationsAtCompany(ctx context.Context, candidateIDs []string, companyID string) ([]model.PeerApplication, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT a.candidate_id, a.status, a.applied_at,`+jobColumns+`
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN job_skills js ON js.job_id = j.id
		 WHERE a.candidate_id = ANY($1) AND j.company_id = $2
		 GROUP BY a.candidate_id, a.job_id, a.status, a.applied_at, j.id
		 ORDER BY a.applied_at DESC`,
		candidateIDs, companyID)
	if err != nil {
		return nil, fmt.Errorf("peerApplicationsAtCompany query: %w", err)
	}
	defer rows.Close()

	apps := make([]model.PeerApplication, 0)
	for rows.Next() {
		var (
			app       model.PeerApplication
			status    string
			job       model.JobSnapshot
			remote    string
			expiresAt *time.Time
		)
		if err := rows.Scan(
			&app.CandidateID, &status, &app.AppliedAt,
			&job.JobID, &job.CompanyID, &job.RequiredSkills, &job.ExperienceLevel,
			&job.Location, &remote, &job.SalaryMin, &job.SalaryMax,
			&job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
			&job.Status, &expiresAt, &job.PostedAt,
		); err != nil {
			return nil, fmt.Errorf("peerApplicationsAtCompany scan: %w", err)
		}
		job.RemoteType = model.RemoteType(remote)
		job.ExpiresAt = expiresAt
		app.Status = model.ApplicationStatus(status)
		app.Job = job
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// AppliedJobIDs returns the set of job IDs the candidate applied to at or
// after the given instant.
func (s *PostgresStore) AppliedJobIDs(ctx context.Context, candidateID string, since time.Time) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT job_id FROM applications WHERE candidate_id = $1 AND applied_at >= $2`,
		candidateID, since)
	if err != nil {
		return nil, fmt.Errorf("appliedJobIDs query: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("appliedJobIDs scan: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// HasApplied reports whether the candidate ever applied to the job.
func (s *PostgresStore) HasApplied(ctx context.Context, candidateID, jobID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("hasApplied query: %w", err)
	}
	return exists, nil
}

func scanCandidate(row pgx.Row) (*model.CandidateSnapshot, error) {
	var (
		c     model.CandidateSnapshot
		level string
		vis   string
	)
	if err := row.Scan(
		&c.CandidateID, &c.Skills, &level, &c.ExperienceYears,
		&c.Location, &c.PreferredLocations, &c.SalaryMin, &c.SalaryMax,
		&c.Bio, &c.CurrentTitle, &c.WorkHistoryText, &vis, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.ExperienceLevel = model.ExperienceLevel(level)
	c.Visibility = model.Visibility(vis)
	return &c, nil
}

func collectCandidates(rows pgx.Rows) ([]model.CandidateSnapshot, error) {
	candidates := make([]model.CandidateSnapshot, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("candidate scan: %w", err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, rows.Err()
}

func scanJob(row pgx.Row) (*model.JobSnapshot, error) {
	var (
		j         model.JobSnapshot
		level     string
		remote    string
		status    string
		expiresAt *time.Time
	)
	if err := row.Scan(
		&j.JobID, &j.CompanyID, &j.RequiredSkills, &level,
		&j.Location, &remote, &j.SalaryMin, &j.SalaryMax,
		&j.Title, &j.Description, &j.Requirements, &j.Responsibilities,
		&status, &expiresAt, &j.PostedAt,
	); err != nil {
		return nil, err
	}
	j.ExperienceLevel = model.ExperienceLevel(level)
	j.RemoteType = model.RemoteType(remote)
	j.Status = model.JobStatus(status)
	j.ExpiresAt = expiresAt
	return &j, nil
}
