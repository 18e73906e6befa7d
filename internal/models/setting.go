package models

// Setting is a configuration value addressed by (category, key). Settings
// carry no timestamps; they are plain key/value rows.
type Setting struct {
	ID          string `db:"id" json:"id"`
	Category    string `db:"category" json:"category"`
	Key         string `db:"key" json:"key"`
	Value       string `db:"value" json:"value"`
	Description string `db:"description" json:"description"`
}
