package domain

import "time"

// BackupParams são os parâmetros do relatório agregado gravado junto ao backup.
// StartHour/EndHour filtram o horário local de cada bucket em [StartHour, EndHour).
type BackupParams struct {
	BucketMinutes int
	Start         *time.Time
	End           *time.Time
	StartHour     int
	EndHour       int
}

// BackupResult contém os caminhos dos dois arquivos gravados
type BackupResult struct {
	RunID      string    `json:"run_id"`
	RecentPath string    `json:"recent_path"`
	ReportPath string    `json:"report_path"`
	Rows       int       `json:"rows"`
	WrittenAt  time.Time `json:"written_at"`
}

// RestoreResult resume a mesclagem de um backup no livro-caixa
type RestoreResult struct {
	Source   string `json:"source"`
	Restored int    `json:"restored"`
	Skipped  int    `json:"skipped"`
	Rejected int    `json:"rejected"`
}
