// Package logging persists episode transcripts and LLM completions to a
// local SQLite database so past sessions can be reviewed.
package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"zorkagent/internal/zork"
)

type StepRecord struct {
	ID          int       `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	Step        int       `json:"step"`
	Action      string    `json:"action"`
	Observation string    `json:"observation"`
	Location    string    `json:"location"`
	Score       int       `json:"score"`
	Moves       int       `json:"moves"`
	Done        bool      `json:"done"`
}

type CompletionMetadata struct {
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	ResponseTime time.Duration `json:"response_time_ms"`
	Error        *string       `json:"error,omitempty"`
}

// TranscriptLogger writes steps and completions to SQLite. A single database
// holds every session; rows are keyed by session id.
type TranscriptLogger struct {
	db *sql.DB
}

func NewTranscriptLogger(path string) (*TranscriptLogger, error) {
	if path == "" {
		path = "./transcripts.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &TranscriptLogger{db: db}
	if err := logger.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (tl *TranscriptLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		action TEXT NOT NULL,
		observation TEXT NOT NULL,
		location TEXT NOT NULL,
		score INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		done INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_steps_session ON steps(session_id, step);

	CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		user_input TEXT NOT NULL,
		system_prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		metadata TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completions_session ON completions(session_id);
	`

	_, err := tl.db.Exec(schema)
	return err
}

// LogStep records one turn of an episode.
func (tl *TranscriptLogger) LogStep(sessionID string, step int, action string, st zork.State) error {
	done := 0
	if st.Done {
		done = 1
	}
	_, err := tl.db.Exec(`
		INSERT INTO steps (session_id, step, action, observation, location, score, moves, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, step, action, st.Observation, st.Location, st.Score, st.Moves, done)
	return err
}

// LogCompletion records one LLM call made on behalf of a session.
func (tl *TranscriptLogger) LogCompletion(sessionID, userInput, systemPrompt, response string, metadata CompletionMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = tl.db.Exec(`
		INSERT INTO completions (session_id, user_input, system_prompt, response, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, userInput, systemPrompt, response, string(metadataJSON))
	return err
}

// RecentSteps returns the last n steps across all sessions, newest first.
func (tl *TranscriptLogger) RecentSteps(n int) ([]StepRecord, error) {
	rows, err := tl.db.Query(`
		SELECT id, timestamp, session_id, step, action, observation, location, score, moves, done
		FROM steps ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	return scanSteps(rows)
}

// SessionSteps returns every step of one session in play order.
func (tl *TranscriptLogger) SessionSteps(sessionID string) ([]StepRecord, error) {
	rows, err := tl.db.Query(`
		SELECT id, timestamp, session_id, step, action, observation, location, score, moves, done
		FROM steps WHERE session_id = ? ORDER BY step ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}
	defer rows.Close()

	return scanSteps(rows)
}

func scanSteps(rows *sql.Rows) ([]StepRecord, error) {
	var records []StepRecord
	for rows.Next() {
		var r StepRecord
		var done int
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.SessionID, &r.Step, &r.Action,
			&r.Observation, &r.Location, &r.Score, &r.Moves, &done); err != nil {
			return nil, fmt.Errorf("failed to scan step row: %w", err)
		}
		r.Done = done != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

func (tl *TranscriptLogger) Close() error {
	return tl.db.Close()
}
