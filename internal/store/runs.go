package store

import (
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// 运行状态
const (
	RunStatusProcessing = "processing"
	RunStatusSuccess    = "success"
	RunStatusFailed     = "failed"
)

// Run 一次构建运行记录
type Run struct {
	ID            string     `json:"id"`
	RawFile       string     `json:"rawFile"`
	CanonFile     string     `json:"canonFile"`
	OutputPath    string     `json:"outputPath"`
	ReferenceDate int        `json:"referenceDate"`
	DateLabel     string     `json:"dateLabel"`
	RawRows       int        `json:"rawRows"`
	ActiveRows    int        `json:"activeRows"`
	CanonEntries  int        `json:"canonEntries"`
	Matched       int        `json:"matched"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// RunResult 构建完成时回写的统计
type RunResult struct {
	ReferenceDate int
	DateLabel     string
	RawRows       int
	ActiveRows    int
	CanonEntries  int
	Matched       int
	Unmatched     []UnmatchedPosition
}

// UnmatchedPosition 未匹配的基准职位
type UnmatchedPosition struct {
	Category  string `json:"category"`
	Position  string `json:"position"`
	BestScore int    `json:"bestScore"`
}

// CreateRun 创建运行记录，返回 run id
func (s *Store) CreateRun(rawFile, canonFile, outputPath string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO build_runs (id, raw_file, canon_file, output_path, status)
		VALUES (?, ?, ?, ?, ?)
	`, id, rawFile, canonFile, outputPath, RunStatusProcessing)
	if err != nil {
		return "", errors.Wrap(err, "create build run")
	}
	return id, nil
}

// CompleteRun 写入成功结果与未匹配职位
func (s *Store) CompleteRun(id string, res RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		UPDATE build_runs SET
			reference_date = ?,
			date_label = ?,
			raw_rows = ?,
			active_rows = ?,
			canon_entries = ?,
			matched = ?,
			status = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, res.ReferenceDate, res.DateLabel, res.RawRows, res.ActiveRows, res.CanonEntries, res.Matched, RunStatusSuccess, id)
	if err != nil {
		return errors.Wrap(err, "update build run")
	}

	for i, u := range res.Unmatched {
		if _, err := tx.Exec(`
			INSERT INTO unmatched_positions (run_id, seq, category, position, best_score)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, u.Category, u.Position, u.BestScore); err != nil {
			return errors.Wrap(err, "insert unmatched position")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit build run")
	}
	return nil
}

// FailRun 标记运行失败
func (s *Store) FailRun(id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := s.db.Exec(`
		UPDATE build_runs SET status = ?, error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, RunStatusFailed, msg, id)
	if err != nil {
		return errors.Wrap(err, "fail build run")
	}
	return nil
}

// ListRuns 按开始时间倒序列出最近的运行记录
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, raw_file, canon_file, output_path, reference_date, date_label,
			raw_rows, active_rows, canon_entries, matched, status, error_message,
			started_at, completed_at
		FROM build_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query build runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r         Run
			completed sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.RawFile, &r.CanonFile, &r.OutputPath, &r.ReferenceDate, &r.DateLabel,
			&r.RawRows, &r.ActiveRows, &r.CanonEntries, &r.Matched, &r.Status, &r.ErrorMessage,
			&r.StartedAt, &completed); err != nil {
			return nil, errors.Wrap(err, "scan build run")
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate build runs")
	}
	return out, nil
}

// ListUnmatched 列出某次运行的未匹配职位（按基准表顺序）
func (s *Store) ListUnmatched(runID string) ([]UnmatchedPosition, error) {
	rows, err := s.db.Query(`
		SELECT category, position, best_score
		FROM unmatched_positions
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query unmatched positions")
	}
	defer rows.Close()

	var out []UnmatchedPosition
	for rows.Next() {
		var u UnmatchedPosition
		if err := rows.Scan(&u.Category, &u.Position, &u.BestScore); err != nil {
			return nil, errors.Wrap(err, "scan unmatched position")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate unmatched positions")
	}
	return out, nil
}
