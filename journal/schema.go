package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	symbol TEXT NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	bars INTEGER NOT NULL,
	initial_capital REAL NOT NULL,
	final_value REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	annualized_return_pct REAL NOT NULL,
	volatility_pct REAL NOT NULL,
	sharpe REAL NOT NULL,
	sortino REAL NOT NULL,
	max_dd_pct REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	win_rate_pct REAL,
	profit_factor REAL,
	skipped_entries INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	entry_date DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_date DATETIME NOT NULL,
	exit_price REAL NOT NULL,
	shares INTEGER NOT NULL,
	pnl REAL NOT NULL,
	pnl_pct REAL NOT NULL,
	holding_days INTEGER NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	cash REAL NOT NULL,
	position_value REAL NOT NULL,
	total_value REAL NOT NULL,
	drawdown REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, date);
`
