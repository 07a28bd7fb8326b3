package version

import "fmt"

// Значения заполняются при сборке через -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// String возвращает строку с информацией о сборке.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}

// Version возвращает версию сборки.
func Version() string {
	return version
}
