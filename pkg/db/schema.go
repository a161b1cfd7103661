package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per command invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    command TEXT NOT NULL,        -- repeats, suffixes, wordcloud, choropleth
    input_path TEXT NOT NULL,
    output_path TEXT,
    entry_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Ranked results of a run: substrings, suffixes per category, words or region values
CREATE TABLE IF NOT EXISTS run_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    rank INTEGER NOT NULL,
    key TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    count REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_entries_run ON run_entries(run_id, rank);
`
